package scoring

import (
	"time"

	"github.com/abhisek/careerpath/internal/llm"
)

// Config controls scorer selection and LLM scoring.
type Config struct {
	// Timeout bounds a single scoring call. Zero means no extra bound.
	Timeout time.Duration

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended scoring settings.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		MaxTokens:   1024,
		Temperature: 0,
	}
}

// New returns an LLMScorer when provider is non-nil, else a KeyScorer.
func New(provider llm.Provider, cfg Config) Scorer {
	if provider == nil {
		return NewKeyScorer()
	}
	return NewLLMScorer(provider, cfg)
}
