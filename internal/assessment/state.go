// Package assessment runs a single timed attempt at a catalog assessment:
// starting it, recording answers, counting down, and turning the submission
// into a scored Result.
package assessment

import (
	"fmt"
	"time"

	"github.com/abhisek/careerpath/internal/catalog"
)

// State is the engine's lifecycle phase.
type State int

const (
	StateIdle       State = iota // No attempt, no result
	StateInProgress              // Attempt active, timer running
	StateSubmitting              // Scoring in flight
	StateCompleted               // Result available
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Trigger records why an attempt was submitted.
type Trigger string

const (
	TriggerManual  Trigger = "manual"
	TriggerExpired Trigger = "expired"
)

// Attempt is the mutable record of one run through an assessment. It is
// owned by the engine and discarded at submission.
type Attempt struct {
	ID           string
	Assessment   catalog.Assessment
	CurrentIndex int
	Answers      map[string]string
	Remaining    time.Duration
	Active       bool
	StartedAt    time.Time

	stop chan struct{}
}

// Result is the immutable outcome of a submitted attempt.
type Result struct {
	AttemptID       string
	AssessmentID    string
	AssessmentName  string
	SkillID         string
	Score           int
	PassingScore    int
	TotalQuestions  int
	CorrectAnswers  int
	Elapsed         time.Duration
	CompletedAt     time.Time
	Proficiency     catalog.Level
	Recommendations []string
	Answers         map[string]string
	Passed          bool
	Trigger         Trigger

	// Fallback is true when the fixed fallback outcome was used. It is kept
	// for logging and history only.
	Fallback bool
}

// View is a read-only copy of the engine state for rendering.
type View struct {
	State            State
	AttemptID        string
	Assessment       *catalog.Assessment
	CurrentIndex     int
	Answers          map[string]string
	RemainingSeconds int
	Result           *Result
}

// Progress returns the "i of n" position of the current question, or an
// empty string when no assessment is loaded.
func (v View) Progress() string {
	if v.Assessment == nil || v.Assessment.QuestionCount() == 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d", v.CurrentIndex+1, v.Assessment.QuestionCount())
}

// Clock returns the remaining time as mm:ss.
func (v View) Clock() string {
	return FormatClock(v.RemainingSeconds)
}

// CurrentQuestion returns the question at CurrentIndex.
func (v View) CurrentQuestion() (catalog.Question, bool) {
	if v.Assessment == nil || v.CurrentIndex < 0 || v.CurrentIndex >= len(v.Assessment.Questions) {
		return catalog.Question{}, false
	}
	return v.Assessment.Questions[v.CurrentIndex], true
}

// Answered returns the number of questions with a non-empty answer.
func (v View) Answered() int {
	n := 0
	for _, a := range v.Answers {
		if a != "" {
			n++
		}
	}
	return n
}

// FormatClock renders seconds as zero-padded mm:ss. Negative values render
// as 00:00.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
