package assessment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/store"
)

func TestEventLogPersistsAttempt(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	e := newEngine(t, nil, WithSink(NewEventLog(repo)), WithIDGenerator(func() string { return "attempt-7" }))
	require.True(t, e.Start(twoQuestionAssessment()))
	e.Answer("q1", "b")
	e.Answer("q1", "a")
	e.Answer("q2", "d")
	res := e.Submit(context.Background())
	require.NotNil(t, res)

	ctx := context.Background()
	results, err := repo.QueryResults(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "attempt-7", got.AttemptID)
	assert.Equal(t, "pair", got.AssessmentID)
	assert.Equal(t, res.Score, got.Score)
	assert.Equal(t, 2, got.TotalQuestions)
	assert.Equal(t, string(res.Proficiency), got.Proficiency)
	assert.Equal(t, "manual", got.Trigger)
	assert.Equal(t, res.Passed, got.Passed)

	answers, err := repo.AnswersForAttempt(ctx, "attempt-7")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "a", answers[0].Value)
	assert.Equal(t, "d", answers[1].Value)

	var started int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM "+store.TableAttemptEvents).Scan(&started))
	assert.Equal(t, 1, started)
}
