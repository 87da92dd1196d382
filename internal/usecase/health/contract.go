package health

import "context"

// ModelChecker checks model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexReporter reports the number of indexed snippets.
type IndexReporter interface {
	Len() int
}
