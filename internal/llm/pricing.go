package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// modelCosts covers the models the llm config aliases resolve to, plus the
// OpenRouter default. Keyed by undated, unprefixed model name.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"gpt-4.1-mini":      {0.4, 1.6},
	"gpt-4.1":           {2, 8},
	"gemini-2.5-flash":  {0.3, 2.5},
	"gemini-2.5-pro":    {1.25, 10},
}

var (
	dateSuffix   = regexp.MustCompile(`-\d{4}-?\d{2}-?\d{2}$`)
	vendorPrefix = regexp.MustCompile(`^[a-z0-9-]+/`)
)

// LookupCost returns the pricing for a recorded model ID, or nil if
// unknown. The ID may carry an OpenRouter vendor prefix
// ("google/gemini-2.5-flash") or a release date ("gpt-4.1-2025-04-14",
// "claude-haiku-4-5-20251001").
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	id = vendorPrefix.ReplaceAllString(id, "")
	id = dateSuffix.ReplaceAllString(id, "")
	if c, ok := modelCosts[id]; ok {
		return &c
	}
	return nil
}
