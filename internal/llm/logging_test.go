package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/abhisek/careerpath/internal/store"
)

type recorderFunc func(ctx context.Context, data store.LLMRequestEventData) error

func (f recorderFunc) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return f(ctx, data)
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	var got []store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		got = append(got, d)
		return nil
	})

	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(outcomeJSON),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, "anthropic", rec, zaptest.NewLogger(t))

	ctx := WithPurpose(context.Background(), "scoring")
	_, err := p.Generate(ctx, Request{
		System: "grade it",
		Prompt: "answers",
		Schema: testOutcomeSchema,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(got))
	}
	d := got[0]
	if d.Provider != "anthropic" || d.Purpose != "scoring" || !d.Success {
		t.Errorf("unexpected event: %+v", d)
	}
	if d.InputTokens != 12 || d.OutputTokens != 4 {
		t.Errorf("tokens = %d/%d, want 12/4", d.InputTokens, d.OutputTokens)
	}
	if d.ResponseBody != outcomeJSON {
		t.Errorf("response body = %q", d.ResponseBody)
	}
	for _, want := range []string{"[system]\ngrade it", "[user]\nanswers", "[schema: assessment-outcome]"} {
		if !strings.Contains(d.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, d.RequestBody)
		}
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	var got store.LLMRequestEventData
	rec := recorderFunc(func(_ context.Context, d store.LLMRequestEventData) error {
		got = d
		return nil
	})

	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, "openai", rec, zaptest.NewLogger(t))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if got.Success || got.ErrorMessage != "boom" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", got.Purpose)
	}
}

func TestLoggingProvider_RecorderErrorIgnored(t *testing.T) {
	rec := recorderFunc(func(context.Context, store.LLMRequestEventData) error {
		return errors.New("disk full")
	})
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", rec, zaptest.NewLogger(t))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("recorder failure leaked: %v", err)
	}
}

func TestLoggingProvider_NilRecorder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
