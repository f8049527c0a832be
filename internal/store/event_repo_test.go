package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(attempt, assessment string, score int, passed bool) ResultEventData {
	return ResultEventData{
		AttemptID:       attempt,
		AssessmentID:    assessment,
		AssessmentName:  "Name " + assessment,
		SkillID:         "skill-" + assessment,
		Score:           score,
		PassingScore:    70,
		TotalQuestions:  4,
		CorrectAnswers:  score * 4 / 100,
		Elapsed:         95 * time.Second,
		Proficiency:     "intermediate",
		Recommendations: []string{"Review channels", "Practice"},
		Passed:          passed,
		Trigger:         "manual",
	}
}

func TestResultEvents_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	want := sampleResult("a1", "go", 80, true)
	want.Fallback = true
	want.Trigger = "expired"
	require.NoError(t, repo.AppendResultEvent(ctx, want))

	got, err := repo.QueryResults(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, int64(1), rec.Sequence)
	assert.False(t, rec.Timestamp.IsZero())
	assert.Equal(t, want, rec.ResultEventData)
}

func TestResultEvents_NilRecommendations(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := sampleResult("a1", "go", 10, false)
	data.Recommendations = nil
	require.NoError(t, repo.AppendResultEvent(ctx, data))

	got, err := repo.QueryResults(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Recommendations)
}

func TestQueryResults_NewestFirstWithFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assessment := "go"
		if i%2 == 1 {
			assessment = "sql"
		}
		require.NoError(t, repo.AppendResultEvent(ctx, sampleResult(fmt.Sprintf("a%d", i), assessment, 50+i*10, i > 1)))
	}

	all, err := repo.QueryResults(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "a4", all[0].AttemptID)
	assert.Equal(t, "a0", all[4].AttemptID)

	limited, err := repo.QueryResults(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "a3", limited[1].AttemptID)

	sqlOnly, err := repo.QueryResults(ctx, QueryOpts{AssessmentID: "sql"})
	require.NoError(t, err)
	require.Len(t, sqlOnly, 2)
	for _, r := range sqlOnly {
		assert.Equal(t, "sql", r.AssessmentID)
	}

	after, err := repo.QueryResults(ctx, QueryOpts{After: 3})
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestResultStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendResultEvent(ctx, sampleResult("a1", "go", 40, false)))
	require.NoError(t, repo.AppendResultEvent(ctx, sampleResult("a2", "go", 80, true)))
	require.NoError(t, repo.AppendResultEvent(ctx, sampleResult("a3", "sql", 90, true)))

	stats, err := repo.ResultStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Most recently taken first.
	assert.Equal(t, "sql", stats[0].AssessmentID)
	assert.Equal(t, 1, stats[0].Attempts)

	goStats := stats[1]
	assert.Equal(t, "go", goStats.AssessmentID)
	assert.Equal(t, 2, goStats.Attempts)
	assert.Equal(t, 1, goStats.Passed)
	assert.Equal(t, 80, goStats.BestScore)
	assert.InDelta(t, 60.0, goStats.AvgScore, 0.001)
}

func TestAnswersForAttempt_LatestWins(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{AttemptID: "a1", AssessmentID: "go", QuestionID: "q1", Value: "A"},
		{AttemptID: "a1", AssessmentID: "go", QuestionID: "q2", Value: "true"},
		{AttemptID: "a2", AssessmentID: "go", QuestionID: "q1", Value: "C"},
		{AttemptID: "a1", AssessmentID: "go", QuestionID: "q1", Value: "B|D"},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswerEvent(ctx, a))
	}

	got, err := repo.AnswersForAttempt(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].QuestionID)
	assert.Equal(t, "B|D", got[0].Value)
	assert.Equal(t, int64(4), got[0].Sequence)
	assert.Equal(t, "q2", got[1].QuestionID)

	none, err := repo.AnswersForAttempt(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "scoring", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: `{"a":1}`, ResponseBody: `{"b":2}`},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "scoring", InputTokens: 300, OutputTokens: 70, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "catalog-gen", InputTokens: 10, LatencyMs: 50, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "catalog-gen", list[0].Purpose)
	assert.False(t, list[0].Success)
	assert.Equal(t, "rate limited", list[0].ErrorMessage)

	scoring, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "scoring", Limit: 1})
	require.NoError(t, err)
	require.Len(t, scoring, 1)
	assert.Equal(t, 300, scoring[0].InputTokens)

	first, err := repo.GetLLMEvent(ctx, list[2].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, `{"a":1}`, first.RequestBody)
	assert.Equal(t, `{"b":2}`, first.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "scoring", Calls: 2, InputTokens: 400, OutputTokens: 120, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-sonnet-4-20250514", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttemptEvent(ctx, AttemptEventData{AttemptID: "a1", AssessmentID: "go", QuestionCount: 3, TimeLimit: time.Minute}))
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a1", AssessmentID: "go", QuestionID: "q1", Value: "A"}))
	require.NoError(t, repo.AppendResultEvent(ctx, sampleResult("a1", "go", 70, true)))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "scoring", Success: true}))

	require.NoError(t, repo.Reset(ctx))

	results, err := repo.QueryResults(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, results)

	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, llm)

	// Sequence restarts.
	require.NoError(t, repo.AppendResultEvent(ctx, sampleResult("a2", "go", 70, true)))
	results, err = repo.QueryResults(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].Sequence)
}
