package chat

import (
	"context"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

// Router classifies a query into a support agent (may call out to the
// external classification capability).
type Router interface {
	Route(ctx context.Context, query string) (domain.Agent, error)
}

// Retriever answers top-K similarity lookups against the static knowledge
// base. Pure local computation; never fails and never blocks on I/O.
type Retriever interface {
	Query(agent domain.Agent, queryText string, k int, threshold float64) []string
}

// Responder generates the final reply text (calls out to the external
// generation capability).
type Responder interface {
	Respond(ctx context.Context, agent domain.Agent, query string, sources []string) (string, error)
}
