package chat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

type mockRouter struct {
	agent  domain.Agent
	err    error
	called bool
}

func (m *mockRouter) Route(_ context.Context, _ string) (domain.Agent, error) {
	m.called = true
	return m.agent, m.err
}

type mockRetriever struct {
	sources       []string
	called        bool
	lastAgent     domain.Agent
	lastK         int
	lastThreshold float64
}

func (m *mockRetriever) Query(agent domain.Agent, _ string, k int, threshold float64) []string {
	m.called = true
	m.lastAgent = agent
	m.lastK = k
	m.lastThreshold = threshold
	return m.sources
}

type mockResponder struct {
	text       string
	err        error
	called     bool
	lastAgent  domain.Agent
	lastSource []string
}

func (m *mockResponder) Respond(_ context.Context, agent domain.Agent, _ string, sources []string) (string, error) {
	m.called = true
	m.lastAgent = agent
	m.lastSource = sources
	return m.text, m.err
}

func newService(router *mockRouter, retriever *mockRetriever, responder *mockResponder) *Service {
	return New(router, retriever, responder, zap.NewNop())
}

func TestHandleAssemblesReply(t *testing.T) {
	router := &mockRouter{agent: domain.AgentBilling}
	retriever := &mockRetriever{sources: []string{"snippet"}}
	responder := &mockResponder{text: "here is your refund info"}

	reply, err := newService(router, retriever, responder).Handle(context.Background(), "I was overcharged")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Text != "here is your refund info" {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.Agent != domain.AgentBilling {
		t.Errorf("agent = %s, want BILLING", reply.Agent)
	}
	if len(reply.Sources) != 1 || reply.Sources[0] != "snippet" {
		t.Errorf("sources = %v", reply.Sources)
	}
	if reply.LatencyMS < 0 {
		t.Errorf("latency = %d, want >= 0", reply.LatencyMS)
	}
}

func TestHandleRejectsEmptyQueryBeforeAnyStage(t *testing.T) {
	for _, query := range []string{"", "   ", "\n\t"} {
		router := &mockRouter{agent: domain.AgentGeneral}
		retriever := &mockRetriever{}
		responder := &mockResponder{}

		_, err := newService(router, retriever, responder).Handle(context.Background(), query)
		if !errors.Is(err, domain.ErrEmptyQuery) {
			t.Fatalf("query %q: expected ErrEmptyQuery, got %v", query, err)
		}
		if router.called || retriever.called || responder.called {
			t.Errorf("query %q: a pipeline stage ran despite empty input", query)
		}
	}
}

func TestHandleThreadsRoutedAgentThroughStages(t *testing.T) {
	router := &mockRouter{agent: domain.AgentLostFound}
	retriever := &mockRetriever{sources: []string{"a", "b"}}
	responder := &mockResponder{text: "ok"}

	if _, err := newService(router, retriever, responder).Handle(context.Background(), "left my phone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.lastAgent != domain.AgentLostFound {
		t.Errorf("retriever saw agent %s, want LOST_FOUND", retriever.lastAgent)
	}
	if responder.lastAgent != domain.AgentLostFound {
		t.Errorf("responder saw agent %s, want LOST_FOUND", responder.lastAgent)
	}
	if len(responder.lastSource) != 2 {
		t.Errorf("responder saw %d sources, want the 2 retrieved", len(responder.lastSource))
	}
}

func TestHandleUsesDefaultRetrievalPolicy(t *testing.T) {
	router := &mockRouter{agent: domain.AgentGeneral}
	retriever := &mockRetriever{}
	responder := &mockResponder{text: "ok"}

	if _, err := newService(router, retriever, responder).Handle(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.lastK != DefaultTopK {
		t.Errorf("k = %d, want %d", retriever.lastK, DefaultTopK)
	}
	if retriever.lastThreshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", retriever.lastThreshold, DefaultThreshold)
	}
}

func TestHandleWithRetrievalOverride(t *testing.T) {
	router := &mockRouter{agent: domain.AgentGeneral}
	retriever := &mockRetriever{}
	responder := &mockResponder{text: "ok"}

	svc := newService(router, retriever, responder).WithRetrieval(5, 0.5)
	if _, err := svc.Handle(context.Background(), "hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if retriever.lastK != 5 || retriever.lastThreshold != 0.5 {
		t.Errorf("retrieval policy = (%d, %v), want (5, 0.5)", retriever.lastK, retriever.lastThreshold)
	}
}

func TestHandleAbortsOnRoutingFailure(t *testing.T) {
	boom := errors.New("classifier down")
	router := &mockRouter{err: boom}
	retriever := &mockRetriever{}
	responder := &mockResponder{}

	_, err := newService(router, retriever, responder).Handle(context.Background(), "hi")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped routing error, got %v", err)
	}
	if retriever.called || responder.called {
		t.Error("later stages ran after routing failed")
	}
}

func TestHandleAbortsOnGenerationFailure(t *testing.T) {
	boom := errors.New("model down")
	router := &mockRouter{agent: domain.AgentSafety}
	retriever := &mockRetriever{sources: []string{"s"}}
	responder := &mockResponder{err: boom}

	reply, err := newService(router, retriever, responder).Handle(context.Background(), "hi")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped generation error, got %v", err)
	}
	if reply.Text != "" || reply.Sources != nil || reply.Agent != "" {
		t.Errorf("expected zero reply on failure, got %+v", reply)
	}
}
