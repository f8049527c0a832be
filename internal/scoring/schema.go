package scoring

import "github.com/abhisek/careerpath/internal/llm"

// OutcomeSchema defines the JSON schema for LLM scoring responses.
var OutcomeSchema = &llm.Schema{
	Name:        "assessment-outcome",
	Description: "Grading of a completed skill assessment with follow-on recommendations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Points-weighted percentage score",
			},
			"correct_answers": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"description": "Number of questions answered correctly",
			},
			"proficiency": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced", "expert"},
			},
			"recommendations": map[string]any{
				"type":        "array",
				"minItems":    1,
				"maxItems":    5,
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps for the learner, most important first",
			},
		},
		"required":             []any{"score", "correct_answers", "proficiency", "recommendations"},
		"additionalProperties": false,
	},
}
