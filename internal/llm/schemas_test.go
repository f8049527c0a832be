package llm

import (
	"encoding/json"
	"net/http"
	"testing"
)

// The two shapes the application requests. Mirrors of scoring.OutcomeSchema
// and a reduced catalog.AssessmentSchema; this package cannot import either.
var (
	testOutcomeSchema = &Schema{
		Name:        "assessment-outcome",
		Description: "Grading of a completed skill assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":           map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"correct_answers": map[string]any{"type": "integer", "minimum": 0},
				"proficiency": map[string]any{
					"type": "string",
					"enum": []any{"beginner", "intermediate", "advanced", "expert"},
				},
				"recommendations": map[string]any{
					"type":     "array",
					"minItems": 1,
					"maxItems": 5,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required":             []any{"score", "correct_answers", "proficiency", "recommendations"},
			"additionalProperties": false,
		},
	}

	testAssessmentSchema = &Schema{
		Name:        "skill-assessment",
		Description: "A timed skill assessment with ordered questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":                 map[string]any{"type": "string"},
				"name":               map[string]any{"type": "string"},
				"time_limit_minutes": map[string]any{"type": "integer", "minimum": 1, "maximum": 60},
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": map[string]any{"type": "string"},
							"type": map[string]any{
								"type": "string",
								"enum": []any{"multiple-choice", "coding", "scenario"},
							},
							"question": map[string]any{"type": "string"},
							"points":   map[string]any{"type": "integer", "minimum": 1},
						},
						"required":             []any{"id", "type", "question", "points"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"id", "name", "time_limit_minutes", "questions"},
			"additionalProperties": false,
		},
	}
)

const (
	outcomeJSON = `{"score":80,"correct_answers":4,"proficiency":"advanced",` +
		`"recommendations":["Practice context cancellation"]}`

	// Valid JSON, but 130 is outside the outcome's score range.
	outcomeOutOfRangeJSON = `{"score":130,"correct_answers":4,"proficiency":"advanced",` +
		`"recommendations":["Practice context cancellation"]}`

	assessmentJSON = `{"id":"go-concurrency","name":"Go Concurrency","time_limit_minutes":15,` +
		`"questions":[{"id":"q1","type":"coding","question":"Fan out over a channel","points":10}]}`
)

func gradeRequest() Request {
	return Request{
		System: "You grade technical assessments.",
		Prompt: "Assessment: Go Concurrency\nQ1 Answer: B",
		Schema: testOutcomeSchema,
	}
}

func generateRequest() Request {
	return Request{
		System: "You write technical assessments.",
		Prompt: "Skill: Go Concurrency\nQuestions: 1",
		Schema: testAssessmentSchema,
	}
}

// decodeBody reads a JSON request body the SDK sent to a test server.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	return body
}
