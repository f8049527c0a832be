package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiReply(text, finishReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": finishReason,
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     30,
				"candidatesTokenCount": 20,
				"totalTokenCount":      50,
			},
		})
	}
}

func TestGeminiProvider_GradesAttempt(t *testing.T) {
	bodies := make(chan string, 1)
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- string(b)
		geminiReply(outcomeJSON, "STOP")(w, r)
	})

	resp, err := p.Generate(context.Background(), gradeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != outcomeJSON {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 50 {
		t.Errorf("total tokens = %d, want 50", resp.Usage.TotalTokens)
	}

	body := <-bodies
	for _, want := range []string{`"responseMimeType":"application/json"`, `"responseSchema"`, "Assessment: Go Concurrency"} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %s:\n%s", want, body)
		}
	}
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(`{"id":"go`, "MAX_TOKENS"))

	_, err := p.Generate(context.Background(), generateRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := p.Generate(context.Background(), gradeRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema_Outcome(t *testing.T) {
	s := geminiSchema(testOutcomeSchema.Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", s.Type)
	}
	want := []string{"score", "correct_answers", "proficiency", "recommendations"}
	if !slices.Equal(s.PropertyOrdering, want) {
		t.Errorf("PropertyOrdering = %v, want %v", s.PropertyOrdering, want)
	}
	if !slices.Equal(s.Required, want) {
		t.Errorf("Required = %v, want %v", s.Required, want)
	}

	score := s.Properties["score"]
	if score.Type != genai.TypeInteger {
		t.Errorf("score type = %s", score.Type)
	}
	if score.Minimum == nil || *score.Minimum != 0 || score.Maximum == nil || *score.Maximum != 100 {
		t.Errorf("score range = %v..%v, want 0..100", score.Minimum, score.Maximum)
	}

	if got := s.Properties["proficiency"].Enum; len(got) != 4 || got[0] != "beginner" {
		t.Errorf("proficiency enum = %v", got)
	}

	recs := s.Properties["recommendations"]
	if recs.Type != genai.TypeArray || recs.Items.Type != genai.TypeString {
		t.Errorf("recommendations = %s of %s", recs.Type, recs.Items.Type)
	}
	if recs.MinItems == nil || *recs.MinItems != 1 || recs.MaxItems == nil || *recs.MaxItems != 5 {
		t.Errorf("recommendations items = %v..%v, want 1..5", recs.MinItems, recs.MaxItems)
	}
}

func TestGeminiSchema_AssessmentQuestions(t *testing.T) {
	s := geminiSchema(testAssessmentSchema.Definition)

	limit := s.Properties["time_limit_minutes"]
	if limit.Minimum == nil || *limit.Minimum != 1 || limit.Maximum == nil || *limit.Maximum != 60 {
		t.Errorf("time limit range = %v..%v, want 1..60", limit.Minimum, limit.Maximum)
	}

	q := s.Properties["questions"].Items
	if q == nil || q.Type != genai.TypeObject {
		t.Fatalf("questions items = %+v", q)
	}
	if got := q.Properties["type"].Enum; !slices.Contains(got, "scenario") {
		t.Errorf("question type enum = %v", got)
	}
	if !slices.Equal(q.PropertyOrdering, []string{"id", "type", "question", "points"}) {
		t.Errorf("question ordering = %v", q.PropertyOrdering)
	}
}
