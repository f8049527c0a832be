package catalog

import (
	"fmt"
	"strings"
)

// Problem describes one structural issue in a catalog.
type Problem struct {
	AssessmentID string
	QuestionID   string // empty for assessment-level problems
	Message      string
}

func (p Problem) String() string {
	if p.QuestionID == "" {
		return fmt.Sprintf("%s: %s", p.AssessmentID, p.Message)
	}
	return fmt.Sprintf("%s/%s: %s", p.AssessmentID, p.QuestionID, p.Message)
}

// ValidationError aggregates every problem found by Validate.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid catalog: " + e.Problems[0].String()
	}
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return fmt.Sprintf("invalid catalog (%d problems): %s", len(e.Problems), strings.Join(parts, "; "))
}

// Validate checks assessments for structural issues the engine relies on
// being absent. It returns a *ValidationError listing all problems, or nil.
func Validate(assessments []Assessment) error {
	var problems []Problem
	seen := make(map[string]bool, len(assessments))

	for i, a := range assessments {
		id := a.ID
		add := func(qid, format string, args ...any) {
			problems = append(problems, Problem{AssessmentID: id, QuestionID: qid, Message: fmt.Sprintf(format, args...)})
		}

		if strings.TrimSpace(a.ID) == "" {
			id = fmt.Sprintf("#%d", i)
			add("", "empty id")
		} else if seen[a.ID] {
			add("", "duplicate assessment id")
		}
		seen[a.ID] = true

		if strings.TrimSpace(a.Name) == "" {
			add("", "empty name")
		}
		if a.PassingScore < 0 || a.PassingScore > 100 {
			add("", "passing score %d outside 0-100", a.PassingScore)
		}
		if a.TimeLimit <= 0 {
			add("", "time limit must be positive")
		}
		if _, ok := ParseLevel(string(a.Difficulty)); !ok {
			add("", "unknown difficulty %q", a.Difficulty)
		}
		if len(a.Questions) == 0 {
			add("", "no questions")
		}

		qseen := make(map[string]bool, len(a.Questions))
		for j, q := range a.Questions {
			qid := q.ID
			if strings.TrimSpace(qid) == "" {
				qid = fmt.Sprintf("#%d", j)
				add(qid, "empty question id")
			} else if qseen[q.ID] {
				add(qid, "duplicate question id")
			}
			qseen[q.ID] = true

			if strings.TrimSpace(q.Prompt) == "" {
				add(qid, "empty prompt")
			}
			if q.Points < 1 {
				add(qid, "points must be at least 1")
			}
			for _, msg := range validateBody(q.Body) {
				add(qid, "%s", msg)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func validateBody(b Body) []string {
	switch body := b.(type) {
	case nil:
		return []string{"missing body"}
	case MultipleChoice:
		return validateMultipleChoice(body)
	case Coding:
		if strings.TrimSpace(body.Reference) == "" {
			return []string{"coding question needs a reference solution"}
		}
	case Scenario:
		if strings.TrimSpace(body.Rubric) == "" {
			return []string{"scenario question needs a rubric"}
		}
	}
	return nil
}

func validateMultipleChoice(m MultipleChoice) []string {
	var msgs []string
	if len(m.Options) < 2 {
		msgs = append(msgs, fmt.Sprintf("multiple-choice needs at least 2 options, got %d", len(m.Options)))
	}
	opts := make(map[string]bool, len(m.Options))
	for _, o := range m.Options {
		if strings.Contains(o, choiceSep) {
			msgs = append(msgs, fmt.Sprintf("option %q contains reserved %q", o, choiceSep))
		}
		if opts[o] {
			msgs = append(msgs, fmt.Sprintf("duplicate option %q", o))
		}
		opts[o] = true
	}
	if len(m.Correct) == 0 {
		msgs = append(msgs, "multiple-choice needs at least one correct option")
	}
	for _, c := range m.Correct {
		if !opts[c] {
			msgs = append(msgs, fmt.Sprintf("correct value %q is not an option", c))
		}
	}
	return msgs
}
