package domain

import "errors"

var (
	// ErrEmptyQuery signals a missing or blank user query. No pipeline
	// stage runs when this is returned.
	ErrEmptyQuery = errors.New("query is required")
	// ErrModelProviderError signals a failed call to the external model
	// provider (transport error, bad response, timeout).
	ErrModelProviderError = errors.New("model provider error")
	// ErrModelUnavailable signals that the circuit breaker is open and
	// calls to the model provider are being rejected without dialing.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrRateLimited signals a client exceeding the request rate limit.
	ErrRateLimited = errors.New("rate limited")
)
