package llm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock", "none"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // alias from anthropicModels or a full ID. Default: "claude-haiku"
	BaseURL string // Optional. Used by tests and proxies.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // alias from openaiModels or a full ID. Default: "gpt-mini"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // alias from geminiModels or a full ID. Default: "gemini-flash"
	BaseURL string // Optional.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // used verbatim. Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
	ProviderNone       = "none"
)

// Enabled reports whether an LLM should be constructed at all.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderAnthropic,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// vendorKeys lists the providers DiscoverConfig tries, in priority order,
// with the variable each vendor's own tooling reads.
var vendorKeys = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverConfig returns a default Config for the first provider in
// vendorKeys whose key variable is set, or (Config{}, false).
func DiscoverConfig() (Config, bool) {
	for _, vk := range vendorKeys {
		if k := os.Getenv(vk.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = vk.provider
			cfg.setAPIKey(k)
			return cfg, true
		}
	}
	return Config{}, false
}

// apiKey returns the key of the selected provider.
func (c Config) apiKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

func (c *Config) setAPIKey(k string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.APIKey = k
	case ProviderOpenAI:
		c.OpenAI.APIKey = k
	case ProviderGemini:
		c.Gemini.APIKey = k
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = k
	}
}

// Validate checks that the selected provider is known and has its key.
// OpenRouter model IDs are not aliased, so its model must be set too.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock, ProviderNone:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	if c.apiKey() == "" {
		return fmt.Errorf("CAREERPATH_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	if c.Provider == ProviderOpenRouter && c.OpenRouter.Model == "" {
		return errors.New("llm.openrouter.model is required for the openrouter provider")
	}
	if c.Timeout < 0 {
		return errors.New("llm.timeout must not be negative")
	}
	return nil
}
