// Package route implements the first pipeline stage: classifying a user
// query into exactly one support agent via a single external call.
package route

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

const promptFormat = `Based on the following query, which agent should be selected? Query: %q`

// actionAgents maps committed action names to agents. Names outside this
// table fall back to the general agent.
var actionAgents = map[string]domain.Agent{
	"selectBillingAgent":        domain.AgentBilling,
	"selectSafetyAgent":         domain.AgentSafety,
	"selectLostAndFoundAgent":   domain.AgentLostFound,
	"selectGeneralInquiryAgent": domain.AgentGeneral,
}

// Actions returns the fixed four-entry menu offered to the classification
// capability, one action per support agent.
func Actions() []domain.Action {
	return []domain.Action{
		{Name: "selectBillingAgent", Description: "Selects the agent for billing issues, refunds, payments, and charges."},
		{Name: "selectSafetyAgent", Description: "Selects the agent for safety concerns, accidents, or driver conduct."},
		{Name: "selectLostAndFoundAgent", Description: "Selects the agent for items left behind in a vehicle."},
		{Name: "selectGeneralInquiryAgent", Description: "Selects the agent for general questions or issues not covered by others."},
	}
}

// Service routes queries to support agents.
type Service struct {
	classifier Classifier
	logger     *zap.Logger
}

// New creates a routing service.
func New(classifier Classifier, logger *zap.Logger) *Service {
	return &Service{classifier: classifier, logger: logger}
}

// Route delegates one classification call and maps the committed action to
// an agent. No action, or an unrecognized one, falls back to the general
// agent so every query stays answerable. A hard failure of the call itself
// is returned as an error and aborts the pipeline.
func (s *Service) Route(ctx context.Context, query string) (domain.Agent, error) {
	prompt := fmt.Sprintf(promptFormat, query)

	name, err := s.classifier.SelectAction(ctx, prompt, Actions())
	if err != nil {
		return "", fmt.Errorf("select action: %w", err)
	}

	agent, ok := actionAgents[name]
	if !ok {
		s.logger.Debug("no recognized action, falling back to general agent",
			zap.String("action", name),
		)
		return domain.AgentGeneral, nil
	}
	return agent, nil
}
