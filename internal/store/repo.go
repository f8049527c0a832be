package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit        int       // max results (0 = unlimited)
	After        int64     // sequence > After
	Before       int64     // sequence < Before
	From         time.Time // timestamp >= From
	To           time.Time // timestamp <= To
	AssessmentID string    // result queries only
	Purpose      string    // LLM queries only
}

// AttemptEventData captures the start of an attempt.
type AttemptEventData struct {
	AttemptID     string
	AssessmentID  string
	SkillID       string
	QuestionCount int
	TimeLimit     time.Duration
}

// AnswerEventData captures one accepted answer.
type AnswerEventData struct {
	AttemptID    string
	AssessmentID string
	QuestionID   string
	Value        string
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence   int64
	Timestamp  time.Time
	QuestionID string
	Value      string
}

// ResultEventData captures the scored outcome of an attempt.
type ResultEventData struct {
	AttemptID       string
	AssessmentID    string
	AssessmentName  string
	SkillID         string
	Score           int
	PassingScore    int
	TotalQuestions  int
	CorrectAnswers  int
	Elapsed         time.Duration
	Proficiency     string
	Recommendations []string
	Passed          bool
	Trigger         string
	Fallback        bool
}

// ResultRecord is a stored result event.
type ResultRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ResultEventData
}

// ResultStats aggregates results for one assessment.
type ResultStats struct {
	AssessmentID string
	Attempts     int
	Passed       int
	BestScore    int
	AvgScore     float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls by purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM token usage by model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAttemptEvent records the start of an attempt.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// AppendAnswerEvent records an accepted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendResultEvent records a completed attempt.
	AppendResultEvent(ctx context.Context, data ResultEventData) error

	// QueryResults returns results newest first.
	QueryResults(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// ResultStats aggregates results per assessment, most recently taken first.
	ResultStats(ctx context.Context) ([]ResultStats, error)

	// AnswersForAttempt returns the final answer per question, in the order
	// the questions were first answered.
	AnswersForAttempt(ctx context.Context, attemptID string) ([]AnswerRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates LLM token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// Reset deletes every event and restarts the sequence.
	Reset(ctx context.Context) error
}
