package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/llm"
)

// LLMScorer grades attempts with an LLM.
type LLMScorer struct {
	provider llm.Provider
	config   Config
}

// NewLLMScorer creates an LLMScorer.
func NewLLMScorer(provider llm.Provider, cfg Config) *LLMScorer {
	return &LLMScorer{provider: provider, config: cfg}
}

// outcomeOutput is the raw LLM response before normalization.
type outcomeOutput struct {
	Score           int      `json:"score"`
	CorrectAnswers  int      `json:"correct_answers"`
	Proficiency     string   `json:"proficiency"`
	Recommendations []string `json:"recommendations"`
}

func (s *LLMScorer) Score(ctx context.Context, req Request) (*Outcome, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeScoring)
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(req),
		Schema:      OutcomeSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM scoring failed: %w", err)
	}

	var raw outcomeOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	recs := make([]string, 0, len(raw.Recommendations))
	for _, r := range raw.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no recommendations")}
	}

	total := req.Assessment.QuestionCount()
	score := clamp(raw.Score, 0, 100)
	level, ok := catalog.ParseLevel(raw.Proficiency)
	if !ok {
		level = ProficiencyFor(score)
	}

	return &Outcome{
		Score:           score,
		CorrectAnswers:  clamp(raw.CorrectAnswers, 0, total),
		TotalQuestions:  total,
		Proficiency:     level,
		Recommendations: recs,
	}, nil
}
