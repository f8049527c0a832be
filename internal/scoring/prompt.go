package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/catalog"
)

const systemPrompt = `You grade timed skill assessments taken by software professionals.

Rules:
- Grade each answer against the reference. Multiple-choice and true-false answers are right only on an exact match of the selected options.
- Coding answers are right when they solve the task, even if they differ from the reference in style.
- Scenario answers are right when they cover the essential points of the rubric.
- Unanswered questions are wrong.
- The score is the points-weighted percentage of correct answers.
- Proficiency: below 40 beginner, below 70 intermediate, below 90 advanced, otherwise expert.
- Recommendations are short, specific next steps based on what was missed. Never mention the score.`

func buildUserMessage(req Request) string {
	a := req.Assessment

	var b strings.Builder
	fmt.Fprintf(&b, "Assessment: %s (%s)\n", a.Name, a.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", a.Difficulty)
	fmt.Fprintf(&b, "Time used: %s of %s\n", req.Elapsed.Round(time.Second), a.TimeLimit)

	for i, q := range a.Questions {
		fmt.Fprintf(&b, "\n## Question %d [%s, %d points]\n", i+1, q.Kind(), q.Points)
		b.WriteString(q.Prompt)
		b.WriteByte('\n')

		switch body := q.Body.(type) {
		case catalog.MultipleChoice:
			fmt.Fprintf(&b, "Options: %s\n", strings.Join(body.Options, " / "))
			fmt.Fprintf(&b, "Correct: %s\n", strings.Join(body.Correct, " / "))
		case catalog.TrueFalse:
			fmt.Fprintf(&b, "Correct: %s\n", q.Key()[0])
		case catalog.Coding:
			fmt.Fprintf(&b, "Language: %s\nReference solution:\n%s\n", body.Language, body.Reference)
		case catalog.Scenario:
			fmt.Fprintf(&b, "Context: %s\nRubric: %s\n", body.Context, body.Rubric)
		}

		answer, ok := req.Answers[q.ID]
		if !ok || strings.TrimSpace(answer) == "" {
			b.WriteString("Answer: (no answer)\n")
			continue
		}
		if _, mc := q.Body.(catalog.MultipleChoice); mc {
			answer = strings.Join(catalog.SplitChoices(answer), " / ")
		}
		fmt.Fprintf(&b, "Answer:\n%s\n", answer)
	}
	return b.String()
}
