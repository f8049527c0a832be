package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider turns one prompt into a JSON object that matches a schema.
// Scoring and catalog generation are the only callers, and both make a
// single-turn request and decode the result into their own types.
type Provider interface {
	// Generate sends req and returns the validated JSON object. Content that
	// fails req.Schema is reported as *ErrInvalidResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request is a single-turn structured generation.
type Request struct {
	// System sets the model's role, e.g. the grading instructions.
	System string

	// Prompt is the user turn: the attempt to grade or the skill to write
	// an assessment for.
	Prompt string

	// Schema is required. Providers use their native structured output mode
	// and validate the reply against it.
	Schema *Schema

	// MaxTokens caps the reply. Zero means defaultMaxTokens.
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

const defaultMaxTokens = 2048

var (
	errNoSchema = errors.New("request has no schema")
	errNoPrompt = errors.New("request has no prompt")
)

// check rejects requests no provider can serve and fills defaults.
func (r Request) check() (Request, error) {
	if r.Schema == nil {
		return r, &ErrRequestRejected{Err: errNoSchema}
	}
	if r.Prompt == "" {
		return r, &ErrRequestRejected{Err: errNoPrompt}
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = defaultMaxTokens
	}
	return r, nil
}

// Schema is a named JSON Schema. Name is kebab-case, e.g.
// "assessment-outcome"; OpenAI sends it as the schema name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds a validated reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that served the request, as reported by the API
	StopReason string // StopEnd or StopMaxTokens
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// structured turns a raw provider reply into a Response. A truncated reply
// cannot be valid JSON for the schema, so it is reported as
// *ErrMaxTokensExceeded before validation is attempted.
func structured(req Request, raw json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: raw}
	}
	if err := req.Schema.validate(raw); err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    raw,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
