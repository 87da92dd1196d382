// Package chat implements the pipeline orchestrator: route → retrieve →
// generate in strict sequence, with end-to-end latency accounting.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/metrics"
)

// Default retrieval policy. Tunable via WithRetrieval.
const (
	DefaultTopK      = 3
	DefaultThreshold = 0.2
)

// Service sequences the three pipeline stages for one request. Stateless
// across requests apart from the read-only retriever, so any number of
// requests may run concurrently.
type Service struct {
	router    Router
	retriever Retriever
	responder Responder
	logger    *zap.Logger

	topK      int
	threshold float64
}

// New creates the orchestrator with the default retrieval policy.
func New(router Router, retriever Retriever, responder Responder, logger *zap.Logger) *Service {
	return &Service{
		router:    router,
		retriever: retriever,
		responder: responder,
		logger:    logger,
		topK:      DefaultTopK,
		threshold: DefaultThreshold,
	}
}

// WithRetrieval overrides the top-K and similarity threshold policy.
// Non-positive topK falls back to the default.
func (s *Service) WithRetrieval(topK int, threshold float64) *Service {
	if topK > 0 {
		s.topK = topK
	}
	s.threshold = threshold
	return s
}

// Handle runs one query through the pipeline and assembles the reply.
// Stages execute strictly in sequence: retrieval depends on the routed
// agent, generation on both the agent and the retrieved context. No stage
// is retried, cached, or executed speculatively.
func (s *Service) Handle(ctx context.Context, query string) (domain.Reply, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Reply{}, domain.ErrEmptyQuery
	}

	start := time.Now()

	routeStart := time.Now()
	agent, err := s.router.Route(ctx, query)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("route query: %w", err)
	}
	metrics.PipelineStageDuration.WithLabelValues("route").Observe(time.Since(routeStart).Seconds())

	retrieveStart := time.Now()
	sources := s.retriever.Query(agent, query, s.topK, s.threshold)
	metrics.PipelineStageDuration.WithLabelValues("retrieve").Observe(time.Since(retrieveStart).Seconds())

	generateStart := time.Now()
	text, err := s.responder.Respond(ctx, agent, query, sources)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("respond as %s: %w", agent, err)
	}
	metrics.PipelineStageDuration.WithLabelValues("generate").Observe(time.Since(generateStart).Seconds())

	latency := time.Since(start).Milliseconds()

	s.logger.Debug("pipeline complete",
		zap.String("agent", string(agent)),
		zap.Int("sources", len(sources)),
		zap.Int64("latency_ms", latency),
	)

	return domain.Reply{
		Text:      text,
		Sources:   sources,
		Agent:     agent,
		LatencyMS: latency,
	}, nil
}
