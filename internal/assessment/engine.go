package assessment

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/fallback"
	"github.com/abhisek/careerpath/internal/scoring"
)

var errNilOutcome = errors.New("scorer returned no outcome")

// Engine owns one Attempt/Result lifecycle at a time. Intents that arrive
// in the wrong state are ignored. All methods are safe for concurrent use;
// the lock is released while the scorer runs.
type Engine struct {
	mu      sync.Mutex
	state   State
	attempt *Attempt
	result  *Result
	closed  bool

	scorer scoring.Scorer
	sink   EventSink
	log    *zap.Logger
	now    func() time.Time
	newID  func() string

	// lifetime is cancelled by Close and bounds every scoring call.
	lifetime context.Context
	cancel   context.CancelFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the event sink.
func WithSink(s EventSink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides attempt id generation.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New creates an idle engine. A nil scorer grades with the answer key.
func New(scorer scoring.Scorer, opts ...Option) *Engine {
	if scorer == nil {
		scorer = scoring.NewKeyScorer()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		scorer:   scorer,
		sink:     nopSink{},
		log:      zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
		lifetime: ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins an attempt at a. It only applies in StateIdle and reports
// whether the attempt started.
func (e *Engine) Start(a catalog.Assessment) bool {
	e.mu.Lock()
	if e.closed || e.state != StateIdle || len(a.Questions) == 0 {
		e.mu.Unlock()
		return false
	}

	at := &Attempt{
		ID:         e.newID(),
		Assessment: a,
		Answers:    make(map[string]string),
		Remaining:  a.TimeLimit.Truncate(time.Second),
		Active:     true,
		StartedAt:  e.now(),
		stop:       make(chan struct{}),
	}
	e.attempt = at
	e.result = nil
	e.state = StateInProgress
	e.mu.Unlock()

	e.log.Info("attempt started",
		zap.String("attempt_id", at.ID),
		zap.String("assessment_id", a.ID),
		zap.Duration("time_limit", a.TimeLimit),
	)
	e.emit("attempt_started", func(ctx context.Context) error {
		return e.sink.AttemptStarted(ctx, StartedEvent{
			AttemptID:     at.ID,
			AssessmentID:  a.ID,
			SkillID:       a.SkillID,
			QuestionCount: len(a.Questions),
			TimeLimit:     a.TimeLimit,
			At:            at.StartedAt,
		})
	})
	return true
}

// Tick advances the clock by one second. When the remaining time reaches
// zero the attempt is submitted with TriggerExpired before Tick returns.
// It reports whether the tick applied.
func (e *Engine) Tick(ctx context.Context) bool {
	e.mu.Lock()
	if !e.acceptingLocked() {
		e.mu.Unlock()
		return false
	}

	at := e.attempt
	at.Remaining = max(at.Remaining-time.Second, 0)
	if at.Remaining > 0 {
		e.mu.Unlock()
		return true
	}

	job := e.beginSubmitLocked(ctx, TriggerExpired)
	e.mu.Unlock()

	e.finishSubmit(job)
	return true
}

// Answer records value for questionID, replacing any previous answer.
// Unknown question ids are ignored.
func (e *Engine) Answer(questionID, value string) {
	e.mu.Lock()
	if !e.acceptingLocked() {
		e.mu.Unlock()
		return
	}
	at := e.attempt
	if _, ok := at.Assessment.Question(questionID); !ok {
		e.mu.Unlock()
		return
	}
	at.Answers[questionID] = value
	ev := AnswerEvent{
		AttemptID:    at.ID,
		AssessmentID: at.Assessment.ID,
		QuestionID:   questionID,
		Value:        value,
		At:           e.now(),
	}
	e.mu.Unlock()

	e.emit("answer_recorded", func(ctx context.Context) error {
		return e.sink.AnswerRecorded(ctx, ev)
	})
}

// Next moves to the following question. It does nothing at the last one.
func (e *Engine) Next() {
	e.move(1)
}

// Previous moves to the preceding question. It does nothing at the first.
func (e *Engine) Previous() {
	e.move(-1)
}

func (e *Engine) move(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.acceptingLocked() {
		return
	}
	at := e.attempt
	at.CurrentIndex = max(0, min(at.CurrentIndex+delta, len(at.Assessment.Questions)-1))
}

// Submit grades the attempt and completes it. Scorer failures are replaced
// by the fixed fallback outcome, so a Result is always produced unless the
// call was ignored (wrong state) or the engine was closed while scoring, in
// which case Submit returns nil.
func (e *Engine) Submit(ctx context.Context) *Result {
	e.mu.Lock()
	if !e.acceptingLocked() {
		e.mu.Unlock()
		return nil
	}
	job := e.beginSubmitLocked(ctx, TriggerManual)
	e.mu.Unlock()

	return e.finishSubmit(job)
}

// Reset discards the result and returns to StateIdle. It only applies in
// StateCompleted.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.state != StateCompleted {
		return
	}
	e.result = nil
	e.attempt = nil
	e.state = StateIdle
}

// Close disposes of the engine. A scoring call in flight is cancelled and
// its outcome discarded. Every later intent is ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.attempt != nil && e.attempt.Active {
		e.attempt.Active = false
		close(e.attempt.stop)
	}
	e.mu.Unlock()
	e.cancel()
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Result returns the completed result, or nil.
func (e *Engine) Result() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// Snapshot returns a copy of the state for rendering.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{State: e.state, Result: e.result}
	if at := e.attempt; at != nil {
		a := at.Assessment
		v.AttemptID = at.ID
		v.Assessment = &a
		v.CurrentIndex = at.CurrentIndex
		v.Answers = maps.Clone(at.Answers)
		v.RemainingSeconds = int(at.Remaining / time.Second)
	}
	return v
}

// TimerStopped returns a channel that is closed once the current attempt
// stops accepting ticks. Outside StateInProgress it is already closed.
func (e *Engine) TimerStopped() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.acceptingLocked() {
		return e.attempt.stop
	}
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (e *Engine) acceptingLocked() bool {
	return !e.closed && e.state == StateInProgress && e.attempt != nil && e.attempt.Active
}

type submitJob struct {
	ctx     context.Context
	trigger Trigger
	attempt *Attempt
	req     scoring.Request
}

// beginSubmitLocked moves the engine to StateSubmitting. Callers hold e.mu
// and have checked acceptingLocked.
func (e *Engine) beginSubmitLocked(ctx context.Context, trigger Trigger) submitJob {
	at := e.attempt
	at.Active = false
	close(at.stop)
	e.state = StateSubmitting

	return submitJob{
		ctx:     ctx,
		trigger: trigger,
		attempt: at,
		req: scoring.Request{
			Assessment: at.Assessment,
			Answers:    maps.Clone(at.Answers),
			Elapsed:    at.Assessment.TimeLimit.Truncate(time.Second) - at.Remaining,
		},
	}
}

func (e *Engine) finishSubmit(job submitJob) *Result {
	ctx, cancel := context.WithCancel(job.ctx)
	defer cancel()
	stop := context.AfterFunc(e.lifetime, cancel)
	defer stop()

	a := job.req.Assessment
	total := a.QuestionCount()
	outcome, usedFallback := fallback.Do(ctx, e.log, "scoring", func(ctx context.Context) (scoring.Outcome, error) {
		o, err := e.scorer.Score(ctx, job.req)
		if err != nil {
			return scoring.Outcome{}, err
		}
		if o == nil {
			return scoring.Outcome{}, errNilOutcome
		}
		return *o, nil
	}, func() scoring.Outcome {
		return scoring.Fallback(total, a.PassingScore)
	})

	score := max(0, min(outcome.Score, 100))
	level, ok := catalog.ParseLevel(string(outcome.Proficiency))
	if !ok {
		level = scoring.ProficiencyFor(score)
	}
	res := &Result{
		AttemptID:       job.attempt.ID,
		AssessmentID:    a.ID,
		AssessmentName:  a.Name,
		SkillID:         a.SkillID,
		Score:           score,
		PassingScore:    a.PassingScore,
		TotalQuestions:  total,
		CorrectAnswers:  max(0, min(outcome.CorrectAnswers, total)),
		Elapsed:         job.req.Elapsed,
		CompletedAt:     e.now(),
		Proficiency:     level,
		Recommendations: slices.Clone(outcome.Recommendations),
		Answers:         job.req.Answers,
		Passed:          score >= a.PassingScore,
		Trigger:         job.trigger,
		Fallback:        usedFallback,
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.log.Info("discarding result of closed engine", zap.String("attempt_id", res.AttemptID))
		return nil
	}
	e.result = res
	e.attempt = nil
	e.state = StateCompleted
	e.mu.Unlock()

	e.log.Info("attempt completed",
		zap.String("attempt_id", res.AttemptID),
		zap.String("assessment_id", res.AssessmentID),
		zap.Int("score", res.Score),
		zap.String("trigger", string(res.Trigger)),
		zap.Bool("fallback", res.Fallback),
	)
	e.emit("attempt_completed", func(ctx context.Context) error {
		return e.sink.AttemptCompleted(ctx, *res)
	})
	return res
}

func (e *Engine) emit(name string, f func(context.Context) error) {
	if err := f(context.WithoutCancel(e.lifetime)); err != nil {
		e.log.Warn("event sink failed", zap.String("event", name), zap.Error(err))
	}
}
