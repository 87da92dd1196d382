// Package copilot embeds the support chat pipeline in a Go program without
// the HTTP surface: route a query to an agent, retrieve knowledge snippets,
// and generate a persona-grounded reply.
package copilot

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/index"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/knowledge"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/transport/genai"
	chatuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/chat"
	responduc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/respond"
	routeuc "github.com/Rafath-b/Customer-Care-Copilot/internal/usecase/route"
)

// ErrEmptyQuery is returned by Chat for a blank query.
var ErrEmptyQuery = domain.ErrEmptyQuery

// Action is one entry of the classification menu offered to the model.
type Action struct {
	Name        string
	Description string
}

// Model is the external capability the pipeline consumes. Implement it to
// plug in a provider the SDK does not ship with.
type Model interface {
	// SelectAction returns the name of the chosen action, or "" for no
	// decision.
	SelectAction(ctx context.Context, prompt string, actions []Action) (string, error)
	// Generate returns the reply text for a prompt under a persona
	// instruction.
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

// Reply is the assembled pipeline output.
type Reply struct {
	Text    string
	Sources []string
	Agent   string
	Latency int64
}

// Client is the copilot SDK entry point.
type Client struct {
	pipeline *chatuc.Service
}

// New creates a copilot Client. A model is required: either WithOpenAI or
// WithModel.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		topK:      chatuc.DefaultTopK,
		threshold: chatuc.DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	model, err := buildModel(cfg)
	if err != nil {
		return nil, err
	}

	idx := index.Build(knowledge.All())

	pipeline := chatuc.New(
		routeuc.New(model, cfg.logger),
		idx,
		responduc.New(model),
		cfg.logger,
	).WithRetrieval(cfg.topK, cfg.threshold)

	return &Client{pipeline: pipeline}, nil
}

// Chat runs one query through the pipeline.
func (c *Client) Chat(ctx context.Context, query string) (Reply, error) {
	reply, err := c.pipeline.Handle(ctx, query)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text:    reply.Text,
		Sources: reply.Sources,
		Agent:   string(reply.Agent),
		Latency: reply.LatencyMS,
	}, nil
}

// modelCapability is what the use cases need from a model.
type modelCapability interface {
	SelectAction(ctx context.Context, prompt string, actions []domain.Action) (string, error)
	Generate(ctx context.Context, prompt, instruction string) (string, error)
}

func buildModel(cfg *clientConfig) (modelCapability, error) {
	if cfg.model != nil {
		return &modelAdapter{model: cfg.model}, nil
	}
	if cfg.apiKey == "" || cfg.modelName == "" {
		return nil, errors.New("copilot: model required (use WithOpenAI or WithModel)")
	}

	client := genai.NewClient(&genai.Config{
		APIKey:      cfg.apiKey,
		BaseURL:     cfg.baseURL,
		Model:       cfg.modelName,
		CallTimeout: cfg.callTimeout,
		Logger:      cfg.logger,
	})
	if cfg.breaker {
		return genai.NewBreaker(client, genai.BreakerConfig{}, cfg.logger), nil
	}
	return client, nil
}

// modelAdapter bridges a caller-supplied Model to the pipeline contracts.
type modelAdapter struct {
	model Model
}

func (a *modelAdapter) SelectAction(
	ctx context.Context, prompt string, actions []domain.Action,
) (string, error) {
	menu := make([]Action, len(actions))
	for i, act := range actions {
		menu[i] = Action{Name: act.Name, Description: act.Description}
	}
	return a.model.SelectAction(ctx, prompt, menu)
}

func (a *modelAdapter) Generate(ctx context.Context, prompt, instruction string) (string, error) {
	return a.model.Generate(ctx, prompt, instruction)
}
