package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
)

type fakeModelClient struct {
	selectErr   error
	generateErr error
	calls       int
}

func (f *fakeModelClient) SelectAction(_ context.Context, _ string, _ []domain.Action) (string, error) {
	f.calls++
	if f.selectErr != nil {
		return "", f.selectErr
	}
	return "selectGeneralInquiryAgent", nil
}

func (f *fakeModelClient) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "reply", nil
}

func (f *fakeModelClient) HealthCheck(_ context.Context) error { return nil }

func TestBreakerPassesThroughSuccess(t *testing.T) {
	fake := &fakeModelClient{}
	b := NewBreaker(fake, BreakerConfig{}, zap.NewNop())

	name, err := b.SelectAction(context.Background(), "prompt", nil)
	if err != nil {
		t.Fatalf("SelectAction failed: %v", err)
	}
	if name != "selectGeneralInquiryAgent" {
		t.Errorf("action = %q", name)
	}

	text, err := b.Generate(context.Background(), "prompt", "persona")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "reply" {
		t.Errorf("text = %q", text)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	provider := errors.New("provider down")
	fake := &fakeModelClient{generateErr: provider}
	b := NewBreaker(fake, BreakerConfig{
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	}, zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := b.Generate(context.Background(), "prompt", ""); !errors.Is(err, provider) {
			t.Fatalf("call %d: expected provider error, got %v", i, err)
		}
	}

	callsBefore := fake.calls
	_, err := b.Generate(context.Background(), "prompt", "")
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable once open, got %v", err)
	}
	if fake.calls != callsBefore {
		t.Error("open breaker still dialed the provider")
	}
}

func TestBreakerOperationsAreIndependent(t *testing.T) {
	provider := errors.New("provider down")
	fake := &fakeModelClient{generateErr: provider}
	b := NewBreaker(fake, BreakerConfig{
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, _ = b.Generate(context.Background(), "prompt", "")
	}

	// The classify breaker is untouched by generate failures.
	if _, err := b.SelectAction(context.Background(), "prompt", nil); err != nil {
		t.Fatalf("SelectAction should still pass, got %v", err)
	}
}

func TestBreakerIgnoresCanceledContext(t *testing.T) {
	fake := &fakeModelClient{generateErr: context.Canceled}
	b := NewBreaker(fake, BreakerConfig{
		MinRequests:  2,
		FailureRatio: 0.5,
		OpenTimeout:  time.Minute,
	}, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = b.Generate(context.Background(), "prompt", "")
	}

	// Cancellations never trip the breaker, so the provider is still dialed.
	fake.generateErr = nil
	if _, err := b.Generate(context.Background(), "prompt", ""); err != nil {
		t.Fatalf("expected closed breaker, got %v", err)
	}
}
