// Package respond implements the final pipeline stage: generating the reply
// from the routed agent's persona, the retrieved context, and the raw query.
package respond

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/knowledge"
)

// Service generates agent replies.
type Service struct {
	generator Generator
}

// New creates a responder service.
func New(generator Generator) *Service {
	return &Service{generator: generator}
}

// Respond issues one generation call with the agent's persona instruction
// and an augmented prompt. The generated text is returned verbatim, without
// post-processing or truncation. Failures are not retried here.
func (s *Service) Respond(ctx context.Context, agent domain.Agent, query string, sources []string) (string, error) {
	text, err := s.generator.Generate(ctx, buildPrompt(query, sources), knowledge.Persona(agent))
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return text, nil
}

// buildPrompt joins the retrieved snippets, each verbatim, ahead of the raw
// user query. With no sources the context section is omitted entirely.
func buildPrompt(query string, sources []string) string {
	if len(sources) == 0 {
		return "USER QUERY: " + query
	}
	return "CONTEXT:\n- " + strings.Join(sources, "\n- ") + "\n\nUSER QUERY: " + query
}
