package catalog

import "github.com/abhisek/careerpath/internal/llm"

// AssessmentSchema defines the JSON schema for LLM-generated assessments.
// The shape matches AssessmentDoc so responses decode without translation.
var AssessmentSchema = &llm.Schema{
	Name:        "skill-assessment",
	Description: "A timed skill assessment with ordered questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Kebab-case identifier, e.g. kubernetes-basics",
			},
			"skill_id": map[string]any{"type": "string"},
			"name":     map[string]any{"type": "string"},
			"category": map[string]any{"type": "string"},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"beginner", "intermediate", "advanced", "expert"},
			},
			"time_limit_minutes": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 60,
			},
			"passing_score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    questionSchema,
			},
		},
		"required":             []any{"id", "skill_id", "name", "category", "difficulty", "time_limit_minutes", "passing_score", "questions"},
		"additionalProperties": false,
	},
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{"type": "string"},
		"kind": map[string]any{
			"type": "string",
			"enum": []any{"multiple-choice", "true-false", "coding", "scenario"},
		},
		"prompt":      map[string]any{"type": "string"},
		"explanation": map[string]any{"type": "string"},
		"points": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": 5,
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Answer options for multiple-choice. Empty for other kinds.",
		},
		"correct": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Correct options for multiple-choice, or a single \"true\"/\"false\" for true-false. Empty otherwise.",
		},
		"language":  map[string]any{"type": "string"},
		"starter":   map[string]any{"type": "string"},
		"reference": map[string]any{"type": "string", "description": "Model solution for coding questions"},
		"context":   map[string]any{"type": "string", "description": "Situation description for scenario questions"},
		"rubric":    map[string]any{"type": "string", "description": "What a good scenario answer covers"},
	},
	"required":             []any{"id", "kind", "prompt", "explanation", "points", "options", "correct", "language", "starter", "reference", "context", "rubric"},
	"additionalProperties": false,
}
