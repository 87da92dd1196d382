// Package genai adapts an OpenAI-compatible chat-completion API to the two
// external capabilities the pipeline consumes: action classification
// (tool-call menu) and persona-instructed text generation.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/metrics"
)

const defaultCallTimeout = 30 * time.Second

// Config holds the model provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	CallTimeout time.Duration
	Logger      *zap.Logger
}

// Client is a model provider using an OpenAI-compatible API.
type Client struct {
	client      *openai.Client
	model       string
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewClient creates an OpenAI-compatible model client. Every outbound call
// carries a bounded timeout so a stalled provider surfaces as a failure
// instead of a hang.
func NewClient(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		callTimeout: timeout,
		logger:      cfg.Logger,
	}
}

// SelectAction issues one chat completion constrained to the action menu and
// returns the name of the tool call the model committed to. An empty name
// (no tool call) is not an error; the router treats it as "no decision".
func (c *Client) SelectAction(ctx context.Context, prompt string, actions []domain.Action) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	tools := make([]openai.Tool, len(actions))
	for i, a := range actions {
		tools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        a.Name,
				Description: a.Description,
			},
		}
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Tools: tools,
	}

	resp, err := c.complete(ctx, "classify", req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	for _, tc := range resp.Choices[0].Message.ToolCalls {
		if tc.Type == openai.ToolTypeFunction {
			return tc.Function.Name, nil
		}
	}
	return "", nil
}

// Generate issues one chat completion with the persona as system message and
// returns the generated text verbatim.
func (c *Client) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if instruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: instruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: prompt,
	})

	resp, err := c.complete(ctx, "generate", openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		metrics.ModelRequestsTotal.WithLabelValues("generate", c.model, "empty").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrModelProviderError)
	}
	return resp.Choices[0].Message.Content, nil
}

// complete runs one chat completion with transport-level metrics.
func (c *Client) complete(
	ctx context.Context, operation string, req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(operation, c.model, "error").Inc()
		c.logger.Warn("model call failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return openai.ChatCompletionResponse{}, parseAPIError(operation, err)
	}

	metrics.ModelRequestsTotal.WithLabelValues(operation, c.model, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(operation, c.model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.ModelTokensTotal.WithLabelValues(operation, c.model, "prompt").
			Add(float64(resp.Usage.PromptTokens))
		metrics.ModelTokensTotal.WithLabelValues(operation, c.model, "completion").
			Add(float64(resp.Usage.CompletionTokens))
		metrics.ModelTokensTotal.WithLabelValues(operation, c.model, "total").
			Add(float64(resp.Usage.TotalTokens))
	}

	return resp, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// Everything is wrapped with domain.ErrModelProviderError so transport
// failures map to a single pipeline-failure response.
func parseAPIError(operation string, err error) error {
	wrap := domain.ErrModelProviderError

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s call timed out: %w", operation, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("%s API error %d: %s: %w",
			operation, reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s API error %d: %s: %w",
			operation, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("%s request failed: %w", operation, wrap)
}

// extractDetail pulls the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
