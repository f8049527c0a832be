package assessment

import (
	"context"

	"github.com/abhisek/careerpath/internal/store"
)

// eventLog persists the attempt lifecycle to the event store.
type eventLog struct {
	repo store.EventRepo
}

// NewEventLog returns an EventSink that appends attempt, answer and result
// events to repo.
func NewEventLog(repo store.EventRepo) EventSink {
	return &eventLog{repo: repo}
}

func (l *eventLog) AttemptStarted(ctx context.Context, ev StartedEvent) error {
	return l.repo.AppendAttemptEvent(ctx, store.AttemptEventData{
		AttemptID:     ev.AttemptID,
		AssessmentID:  ev.AssessmentID,
		SkillID:       ev.SkillID,
		QuestionCount: ev.QuestionCount,
		TimeLimit:     ev.TimeLimit,
	})
}

func (l *eventLog) AnswerRecorded(ctx context.Context, ev AnswerEvent) error {
	return l.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		AttemptID:    ev.AttemptID,
		AssessmentID: ev.AssessmentID,
		QuestionID:   ev.QuestionID,
		Value:        ev.Value,
	})
}

func (l *eventLog) AttemptCompleted(ctx context.Context, r Result) error {
	return l.repo.AppendResultEvent(ctx, store.ResultEventData{
		AttemptID:       r.AttemptID,
		AssessmentID:    r.AssessmentID,
		AssessmentName:  r.AssessmentName,
		SkillID:         r.SkillID,
		Score:           r.Score,
		PassingScore:    r.PassingScore,
		TotalQuestions:  r.TotalQuestions,
		CorrectAnswers:  r.CorrectAnswers,
		Elapsed:         r.Elapsed,
		Proficiency:     string(r.Proficiency),
		Recommendations: r.Recommendations,
		Passed:          r.Passed,
		Trigger:         string(r.Trigger),
		Fallback:        r.Fallback,
	})
}
