package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrEmptyQuery means the server rejected the query as blank.
	ErrEmptyQuery = errors.New("query is required")
	// ErrRateLimited means the client sent requests faster than the server
	// allows.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer means the pipeline failed on the server side.
	ErrServer = errors.New("server failed to process the request")
)

// APIError carries the HTTP status and server message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses to sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrEmptyQuery
	case 429:
		return ErrRateLimited
	case 500:
		return ErrServer
	default:
		return nil
	}
}
