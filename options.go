package copilot

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	apiKey      string
	baseURL     string
	modelName   string
	callTimeout time.Duration
	breaker     bool

	model Model

	topK      int
	threshold float64
	logger    *zap.Logger
}

// WithOpenAI uses an OpenAI-compatible provider with the given key and model.
func WithOpenAI(apiKey, model string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
		c.modelName = model
	}
}

// WithBaseURL points the provider client at a non-default endpoint.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithCallTimeout bounds each model provider call.
func WithCallTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.callTimeout = d
	}
}

// WithBreaker wraps provider calls in a circuit breaker that fails fast
// while the provider keeps erroring.
func WithBreaker() Option {
	return func(c *clientConfig) {
		c.breaker = true
	}
}

// WithModel plugs in a caller-supplied model implementation. Takes
// precedence over WithOpenAI.
func WithModel(m Model) Option {
	return func(c *clientConfig) {
		c.model = m
	}
}

// WithTopK caps the number of retrieved knowledge snippets.
func WithTopK(k int) Option {
	return func(c *clientConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithThreshold sets the minimum similarity a snippet must exceed to be
// retrieved.
func WithThreshold(t float64) Option {
	return func(c *clientConfig) {
		c.threshold = t
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
