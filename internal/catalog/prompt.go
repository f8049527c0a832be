package catalog

import (
	"fmt"
	"strings"
)

const generatorSystemPrompt = `You write timed skill assessments for software professionals tracking their career development.

Rules:
- Produce one assessment for the requested skill at the requested difficulty.
- Mix question kinds: multiple-choice, true-false, coding and scenario.
- Multiple-choice questions have 3 to 5 options. Every value in "correct" must be copied exactly from "options". Options must not contain the "|" character.
- True-false questions have empty options and a single "true" or "false" in "correct".
- Coding questions give a short starter and a reference solution.
- Scenario questions describe a realistic workplace situation in "context" and what a strong answer covers in "rubric".
- Leave fields that do not apply to a question's kind empty.
- Question ids are unique within the assessment.
- Explanations are one or two sentences, shown after the assessment.`

func buildGeneratorMessage(skill string, cfg GeneratorConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Skill: %s\n", skill)
	fmt.Fprintf(&b, "Difficulty: %s\n", cfg.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", cfg.Questions)
	fmt.Fprintf(&b, "Time limit: %d minutes\n", cfg.TimeLimitMinutes)
	fmt.Fprintf(&b, "Passing score: %d\n", cfg.PassingScore)
	if len(cfg.Avoid) > 0 {
		b.WriteString("\nDo not reuse these assessment ids:\n")
		for _, id := range cfg.Avoid {
			fmt.Fprintf(&b, "- %s\n", id)
		}
	}
	return b.String()
}
