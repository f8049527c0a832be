package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/assessment"
	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/scoring"
)

func TestParseTextAnswer(t *testing.T) {
	mc := catalog.Question{ID: "q", Body: catalog.MultipleChoice{
		Options: []string{"a", "b", "c"},
		Correct: []string{"a", "c"},
	}}
	tf := catalog.Question{ID: "q", Body: catalog.TrueFalse{Correct: true}}
	code := catalog.Question{ID: "q", Body: catalog.Coding{Starter: "func f() {}"}}
	scenario := catalog.Question{ID: "q", Body: catalog.Scenario{}}

	tests := []struct {
		name string
		q    catalog.Question
		line string
		want string
	}{
		{"choice numbers", mc, "1, 3", catalog.JoinChoices([]string{"a", "c"})},
		{"choice text", mc, "b", "b"},
		{"choice out of range kept", mc, "7", "7"},
		{"true short", tf, "T", "true"},
		{"false word", tf, " no ", "false"},
		{"coding empty keeps starter", code, "", "func f() {}"},
		{"coding text", code, "return 1", "return 1"},
		{"scenario", scenario, " profile it ", "profile it"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTextAnswer(tt.q, tt.line))
		})
	}
}

func TestTakeCommandScoresAndRecords(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "2\nt\n1,3,5\n", "--db", db, "take", "go-fundamentals")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Fundamentals: 5 questions")
	assert.Contains(t, out, "Go Fundamentals: 44% NOT PASSED")
	assert.Contains(t, out, "Correct: 3/5")

	out, err = execute(t, "", "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "44%")
	assert.Contains(t, out, "manual")
}

func TestTakeUnknownAssessment(t *testing.T) {
	db := isolate(t)
	_, err := execute(t, "", "--db", db, "take", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "go-fundamentals")
}

func TestTakeAttemptExpires(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetIn(pr)
	c.SetOut(&out)
	c.SetContext(context.Background())

	e := assessment.New(scoring.NewKeyScorer())
	defer e.Close()
	a := catalog.Assessment{
		ID:        "quick",
		Name:      "Quick",
		TimeLimit: time.Second,
		Questions: []catalog.Question{
			{ID: "q1", Prompt: "Yes?", Points: 1, Body: catalog.TrueFalse{Correct: true}},
		},
	}

	res, err := takeAttempt(c, e, a, 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, assessment.TriggerExpired, res.Trigger)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 1, res.TotalQuestions)
	assert.Contains(t, out.String(), "Time is up.")
}
