package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/llm"
)

func testAssessment() catalog.Assessment {
	return catalog.Assessment{
		ID:           "t",
		SkillID:      "testing",
		Name:         "Testing",
		Category:     "Quality",
		Difficulty:   catalog.LevelBeginner,
		TimeLimit:    time.Minute,
		PassingScore: 70,
		Questions: []catalog.Question{
			{ID: "mc", Prompt: "Pick", Points: 1, Explanation: "mc explained",
				Body: catalog.MultipleChoice{Options: []string{"A", "B", "C"}, Correct: []string{"A", "C"}}},
			{ID: "tf", Prompt: "True?", Points: 1, Body: catalog.TrueFalse{Correct: true}},
			{ID: "code", Prompt: "Write", Points: 2, Body: catalog.Coding{Language: "go", Reference: "return  x"}},
			{ID: "sc", Prompt: "Handle it", Points: 1, Body: catalog.Scenario{Context: "ctx", Rubric: "escalate"}},
		},
	}
}

func TestFallback(t *testing.T) {
	tests := []struct {
		total   int
		correct int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{4, 3},
		{5, 4},
		{10, 8},
	}
	for _, tt := range tests {
		o := Fallback(tt.total, 70)
		assert.Equal(t, FallbackScore, o.Score)
		assert.Equal(t, tt.total, o.TotalQuestions)
		assert.Equal(t, tt.correct, o.CorrectAnswers, "total=%d", tt.total)
		assert.Equal(t, catalog.LevelIntermediate, o.Proficiency)
		assert.Len(t, o.Recommendations, 3)
	}

	a := Fallback(1, 0)
	a.Recommendations[0] = "mutated"
	assert.NotEqual(t, "mutated", Fallback(1, 0).Recommendations[0])
}

func TestFallbackMeetsPassingScore(t *testing.T) {
	tests := []struct {
		passing int
		score   int
		correct int
	}{
		{0, FallbackScore, 8},
		{75, 75, 8},
		{90, 90, 9},
		{100, 100, 10},
		{120, 100, 10},
	}
	for _, tt := range tests {
		o := Fallback(10, tt.passing)
		assert.Equal(t, tt.score, o.Score, "passing=%d", tt.passing)
		assert.Equal(t, tt.correct, o.CorrectAnswers, "passing=%d", tt.passing)
		assert.GreaterOrEqual(t, o.Score, min(tt.passing, 100))
	}
}

func TestProficiencyFor(t *testing.T) {
	cases := map[int]catalog.Level{
		0:   catalog.LevelBeginner,
		39:  catalog.LevelBeginner,
		40:  catalog.LevelIntermediate,
		69:  catalog.LevelIntermediate,
		70:  catalog.LevelAdvanced,
		89:  catalog.LevelAdvanced,
		90:  catalog.LevelExpert,
		100: catalog.LevelExpert,
	}
	for score, want := range cases {
		assert.Equal(t, want, ProficiencyFor(score), "score %d", score)
	}
}

func TestKeyScorerAllCorrect(t *testing.T) {
	o, err := NewKeyScorer().Score(context.Background(), Request{
		Assessment: testAssessment(),
		Answers: map[string]string{
			"mc":   "c|a",
			"tf":   " TRUE ",
			"code": "return x",
			"sc":   "Escalate",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, o.Score)
	assert.Equal(t, 4, o.CorrectAnswers)
	assert.Equal(t, 4, o.TotalQuestions)
	assert.Equal(t, catalog.LevelExpert, o.Proficiency)
	require.Len(t, o.Recommendations, 1)
	assert.Contains(t, o.Recommendations[0], "harder")
}

func TestKeyScorerPointsWeighted(t *testing.T) {
	o, err := NewKeyScorer().Score(context.Background(), Request{
		Assessment: testAssessment(),
		Answers: map[string]string{
			"mc":   "A",
			"code": "return x",
		},
	})
	require.NoError(t, err)
	// code is worth 2 of 5 points.
	assert.Equal(t, 40, o.Score)
	assert.Equal(t, 1, o.CorrectAnswers)
	assert.Equal(t, catalog.LevelIntermediate, o.Proficiency)
	assert.Equal(t, "Review: mc explained", o.Recommendations[0])
	assert.Equal(t, "Review: True?", o.Recommendations[1])
	assert.Contains(t, o.Recommendations[len(o.Recommendations)-1], "scenarios")
}

func TestKeyScorerNoAnswers(t *testing.T) {
	o, err := NewKeyScorer().Score(context.Background(), Request{Assessment: testAssessment()})
	require.NoError(t, err)
	assert.Equal(t, 0, o.Score)
	assert.Equal(t, 4, o.TotalQuestions)
	assert.Equal(t, catalog.LevelBeginner, o.Proficiency)
	assert.NotEmpty(t, o.Recommendations)
}

func TestKeyScorerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKeyScorer().Score(ctx, Request{Assessment: testAssessment()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLLMScorer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"score": 130,
		"correct_answers": 9,
		"proficiency": "Advanced",
		"recommendations": ["Study table-driven tests", "  "]
	}`)})
	s := NewLLMScorer(mock, DefaultConfig())

	o, err := s.Score(context.Background(), Request{
		Assessment: testAssessment(),
		Answers:    map[string]string{"mc": "A|C"},
		Elapsed:    30 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, o.Score)
	assert.Equal(t, 4, o.CorrectAnswers)
	assert.Equal(t, 4, o.TotalQuestions)
	assert.Equal(t, catalog.LevelAdvanced, o.Proficiency)
	assert.Equal(t, []string{"Study table-driven tests"}, o.Recommendations)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Requests()[0]
	assert.Same(t, OutcomeSchema, req.Schema)
	msg := req.Prompt
	assert.Contains(t, msg, "Answer:\nA / C")
	assert.Contains(t, msg, "Answer: (no answer)")
	assert.Contains(t, msg, "Rubric: escalate")
	assert.True(t, strings.HasPrefix(msg, "Assessment: Testing"))
}

func TestLLMScorerUnknownProficiencyUsesBand(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"score": 35, "correct_answers": 1, "proficiency": "novice", "recommendations": ["x"]}`)})
	o, err := NewLLMScorer(mock, Config{}).Score(context.Background(), Request{Assessment: testAssessment()})
	require.NoError(t, err)
	assert.Equal(t, catalog.LevelBeginner, o.Proficiency)
}

func TestLLMScorerErrors(t *testing.T) {
	t.Run("provider", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
		_, err := NewLLMScorer(mock, DefaultConfig()).Score(context.Background(), Request{Assessment: testAssessment()})
		var rl *llm.ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("no recommendations", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
			`{"score": 50, "correct_answers": 2, "proficiency": "intermediate", "recommendations": []}`)})
		_, err := NewLLMScorer(mock, DefaultConfig()).Score(context.Background(), Request{Assessment: testAssessment()})
		var inv *llm.ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("bad json", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"nope"`)})
		_, err := NewLLMScorer(mock, DefaultConfig()).Score(context.Background(), Request{Assessment: testAssessment()})
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	assert.IsType(t, &KeyScorer{}, New(nil, DefaultConfig()))
	assert.IsType(t, &LLMScorer{}, New(llm.NewMockProvider(), DefaultConfig()))
}
