package catalog

import (
	"strings"
	"time"
)

// Kind identifies which answer affordance a question needs.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindTrueFalse      Kind = "true-false"
	KindCoding         Kind = "coding"
	KindScenario       Kind = "scenario"
)

// Assessment is an immutable catalog entry. Questions are served in slice
// order.
type Assessment struct {
	ID           string
	SkillID      string
	Name         string
	Category     string
	Questions    []Question
	TimeLimit    time.Duration
	PassingScore int
	Difficulty   Level
}

// QuestionCount returns the number of questions in the assessment.
func (a Assessment) QuestionCount() int {
	return len(a.Questions)
}

// Question returns the question with the given id.
func (a Assessment) Question(id string) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// TotalPoints sums the point values of all questions.
func (a Assessment) TotalPoints() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Points
	}
	return total
}

// Question is a single prompt within an assessment. Kind-specific data
// lives in Body.
type Question struct {
	ID          string
	Prompt      string
	Explanation string
	Points      int
	Body        Body
}

// Kind returns the question kind, derived from its body.
func (q Question) Kind() Kind {
	if q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// Key returns the accepted answer values for the question.
func (q Question) Key() []string {
	if q.Body == nil {
		return nil
	}
	return q.Body.Key()
}

// Body is the kind-specific part of a question. The set of implementations
// is closed: MultipleChoice, TrueFalse, Coding and Scenario.
type Body interface {
	Kind() Kind
	Key() []string
	isBody()
}

// MultipleChoice offers a fixed list of options, one or more of which are
// correct.
type MultipleChoice struct {
	Options []string
	Correct []string
}

func (MultipleChoice) Kind() Kind      { return KindMultipleChoice }
func (m MultipleChoice) Key() []string { return m.Correct }
func (MultipleChoice) isBody()         {}

// MultiSelect reports whether more than one option must be chosen.
func (m MultipleChoice) MultiSelect() bool { return len(m.Correct) > 1 }

// TrueFalse is a binary statement.
type TrueFalse struct {
	Correct bool
}

func (TrueFalse) Kind() Kind { return KindTrueFalse }
func (t TrueFalse) Key() []string {
	if t.Correct {
		return []string{"true"}
	}
	return []string{"false"}
}
func (TrueFalse) isBody() {}

// Coding asks for a code answer. Reference is a model solution used by
// scorers.
type Coding struct {
	Language  string
	Starter   string
	Reference string
}

func (Coding) Kind() Kind      { return KindCoding }
func (c Coding) Key() []string { return []string{c.Reference} }
func (Coding) isBody()         {}

// Scenario presents a situation and expects a free-text response judged
// against Rubric.
type Scenario struct {
	Context string
	Rubric  string
}

func (Scenario) Kind() Kind      { return KindScenario }
func (s Scenario) Key() []string { return []string{s.Rubric} }
func (Scenario) isBody()         {}

// choiceSep joins multiple selected options into one answer value.
const choiceSep = "|"

// JoinChoices encodes a set of selected options as a single answer value.
func JoinChoices(choices []string) string {
	return strings.Join(choices, choiceSep)
}

// SplitChoices decodes an answer value produced by JoinChoices.
func SplitChoices(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, choiceSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
