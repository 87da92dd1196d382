package route

import (
	"context"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

// Classifier is the external classification capability: given a prompt and a
// fixed menu of named actions, it commits to at most one action name.
// An empty name means no action was selected.
type Classifier interface {
	SelectAction(ctx context.Context, prompt string, actions []domain.Action) (string, error)
}
