package copilot

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeModel struct {
	action      string
	text        string
	lastPrompt  string
	lastPersona string
	menuSize    int
}

func (f *fakeModel) SelectAction(_ context.Context, _ string, actions []Action) (string, error) {
	f.menuSize = len(actions)
	return f.action, nil
}

func (f *fakeModel) Generate(_ context.Context, prompt, instruction string) (string, error) {
	f.lastPrompt = prompt
	f.lastPersona = instruction
	return f.text, nil
}

func TestNew_RequiresModel(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no model is configured")
	}
}

func TestChat_EndToEnd(t *testing.T) {
	model := &fakeModel{action: "selectBillingAgent", text: "We are sorry about the overcharge."}
	client, err := New(WithModel(model))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reply, err := client.Chat(context.Background(), "I was overcharged for my last ride")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if reply.Agent != "BILLING" {
		t.Errorf("agent = %q, want BILLING", reply.Agent)
	}
	if reply.Text != "We are sorry about the overcharge." {
		t.Errorf("text = %q", reply.Text)
	}
	if reply.Latency < 0 {
		t.Errorf("latency = %d", reply.Latency)
	}
	if model.menuSize != 4 {
		t.Errorf("classification menu had %d actions, want 4", model.menuSize)
	}
	if !strings.Contains(model.lastPersona, "billing") {
		t.Errorf("persona = %q, want the billing persona", model.lastPersona)
	}
	if !strings.Contains(model.lastPrompt, "USER QUERY: I was overcharged for my last ride") {
		t.Errorf("prompt = %q", model.lastPrompt)
	}
}

func TestChat_UnknownActionFallsBackToGeneral(t *testing.T) {
	model := &fakeModel{action: "somethingElse", text: "Happy to help."}
	client, err := New(WithModel(model))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reply, err := client.Chat(context.Background(), "tell me about your service")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply.Agent != "GENERAL" {
		t.Errorf("agent = %q, want GENERAL", reply.Agent)
	}
}

func TestChat_EmptyQuery(t *testing.T) {
	client, err := New(WithModel(&fakeModel{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := client.Chat(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestChat_ThresholdControlsRetrieval(t *testing.T) {
	model := &fakeModel{action: "selectBillingAgent", text: "ok"}
	client, err := New(WithModel(model), WithThreshold(0.99))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	reply, err := client.Chat(context.Background(), "I was overcharged for my last ride")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(reply.Sources) != 0 {
		t.Errorf("expected no sources above threshold 0.99, got %v", reply.Sources)
	}
	if strings.Contains(model.lastPrompt, "CONTEXT:") {
		t.Errorf("prompt must omit the context block when nothing was retrieved: %q", model.lastPrompt)
	}
}
