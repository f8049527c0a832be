package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTimerExpiresAttempt(t *testing.T) {
	scorer := &countingScorer{inner: failingScorer()}
	e := newEngine(t, scorer)
	a := twoQuestionAssessment()
	a.TimeLimit = 3 * time.Second
	require.True(t, e.Start(a))

	done := make(chan struct{})
	go func() {
		RunTimer(context.Background(), e, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not stop after expiry")
	}

	assert.Equal(t, StateCompleted, e.State())
	assert.Equal(t, TriggerExpired, e.Result().Trigger)
	assert.Equal(t, int32(1), scorer.calls.Load())
}

func TestRunTimerStopsOnManualSubmit(t *testing.T) {
	e := newEngine(t, nil)
	require.True(t, e.Start(twoQuestionAssessment()))

	done := make(chan struct{})
	go func() {
		RunTimer(context.Background(), e, time.Hour)
		close(done)
	}()

	require.NotNil(t, e.Submit(context.Background()))
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer kept running after submit")
	}
}

func TestRunTimerStopsOnContextCancel(t *testing.T) {
	e := newEngine(t, nil)
	require.True(t, e.Start(twoQuestionAssessment()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunTimer(ctx, e, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer ignored cancellation")
	}
	assert.Equal(t, StateInProgress, e.State())
}

func TestRunTimerWithoutAttemptReturns(t *testing.T) {
	e := newEngine(t, nil)
	RunTimer(context.Background(), e, time.Millisecond)
	assert.Equal(t, StateIdle, e.State())
}
