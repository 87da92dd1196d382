package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

// ModelClient is the capability surface the breaker wraps.
type ModelClient interface {
	SelectAction(ctx context.Context, prompt string, actions []domain.Action) (string, error)
	Generate(ctx context.Context, prompt, instruction string) (string, error)
	HealthCheck(ctx context.Context) error
}

// BreakerConfig holds circuit breaker settings. The breaker only fails
// fast; no call is ever retried.
type BreakerConfig struct {
	MaxHalfOpenCalls uint32
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
}

func (c BreakerConfig) normalize() BreakerConfig {
	if c.MaxHalfOpenCalls == 0 {
		c.MaxHalfOpenCalls = 1
	}
	if c.MinRequests == 0 {
		c.MinRequests = 5
	}
	if c.FailureRatio <= 0 || c.FailureRatio > 1 {
		c.FailureRatio = 0.6
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 30 * time.Second
	}
	return c
}

// Breaker wraps a model client with per-operation circuit breakers. When a
// breaker is open the call is rejected immediately with
// domain.ErrModelUnavailable instead of dialing a provider that keeps
// failing.
type Breaker struct {
	client   ModelClient
	classify *gobreaker.CircuitBreaker[string]
	generate *gobreaker.CircuitBreaker[string]
}

// NewBreaker wraps client with circuit breakers for both operations.
func NewBreaker(client ModelClient, cfg BreakerConfig, logger *zap.Logger) *Breaker {
	cfg = cfg.normalize()
	return &Breaker{
		client:   client,
		classify: newCircuitBreaker("classify", cfg, logger),
		generate: newCircuitBreaker("generate", cfg, logger),
	}
}

func newCircuitBreaker(name string, cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxHalfOpenCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// A caller-canceled context is not a provider failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("operation", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// SelectAction implements route.Classifier.
func (b *Breaker) SelectAction(ctx context.Context, prompt string, actions []domain.Action) (string, error) {
	name, err := b.classify.Execute(func() (string, error) {
		return b.client.SelectAction(ctx, prompt, actions)
	})
	return name, mapBreakerErr(err)
}

// Generate implements respond.Generator.
func (b *Breaker) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	text, err := b.generate.Execute(func() (string, error) {
		return b.client.Generate(ctx, prompt, instruction)
	})
	return text, mapBreakerErr(err)
}

// HealthCheck passes through to the wrapped client.
func (b *Breaker) HealthCheck(ctx context.Context) error {
	return b.client.HealthCheck(ctx)
}

func mapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("circuit breaker open: %w", domain.ErrModelUnavailable)
	}
	return err
}
