package assessment

import (
	"context"
	"errors"
	"time"
)

// StartedEvent is emitted when an attempt begins.
type StartedEvent struct {
	AttemptID     string
	AssessmentID  string
	SkillID       string
	QuestionCount int
	TimeLimit     time.Duration
	At            time.Time
}

// AnswerEvent is emitted for every accepted answer.
type AnswerEvent struct {
	AttemptID    string
	AssessmentID string
	QuestionID   string
	Value        string
	At           time.Time
}

// EventSink observes the attempt lifecycle. Errors are logged by the engine
// and never change its behavior.
type EventSink interface {
	AttemptStarted(ctx context.Context, ev StartedEvent) error
	AnswerRecorded(ctx context.Context, ev AnswerEvent) error
	AttemptCompleted(ctx context.Context, r Result) error
}

// MultiSink fans events out to every sink in order.
type MultiSink []EventSink

func (m MultiSink) AttemptStarted(ctx context.Context, ev StartedEvent) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.AttemptStarted(ctx, ev))
	}
	return errors.Join(errs...)
}

func (m MultiSink) AnswerRecorded(ctx context.Context, ev AnswerEvent) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.AnswerRecorded(ctx, ev))
	}
	return errors.Join(errs...)
}

func (m MultiSink) AttemptCompleted(ctx context.Context, r Result) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.AttemptCompleted(ctx, r))
	}
	return errors.Join(errs...)
}

type nopSink struct{}

func (nopSink) AttemptStarted(context.Context, StartedEvent) error { return nil }
func (nopSink) AnswerRecorded(context.Context, AnswerEvent) error  { return nil }
func (nopSink) AttemptCompleted(context.Context, Result) error     { return nil }
