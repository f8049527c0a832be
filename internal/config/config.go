// Package config loads careerpath settings from an optional .env file, an
// optional YAML file and CAREERPATH_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/scoring"
)

// Config is the resolved application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Scoring ScoringConfig `mapstructure:"scoring"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	File   string `mapstructure:"file"`   // empty: <data dir>/careerpath.log
}

type StoreConfig struct {
	Path string `mapstructure:"path"` // empty: store.DefaultDBPath
}

type LLMConfig struct {
	Provider   string         `mapstructure:"provider"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Retry      LLMRetryConfig `mapstructure:"retry"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type LLMRetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Catalog sources.
const (
	SourceBuiltin = "builtin"
	SourceDir     = "dir"
	SourceRemote  = "remote"
	SourceLLM     = "llm"
)

type CatalogConfig struct {
	Source         string        `mapstructure:"source"`
	Dir            string        `mapstructure:"dir"`
	URL            string        `mapstructure:"url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	GenerateSkills []string      `mapstructure:"generate_skills"`
	Questions      int           `mapstructure:"questions"`
	Difficulty     string        `mapstructure:"difficulty"`
}

type ScoringConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the metrics endpoint
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}

	switch c.Catalog.Source {
	case SourceBuiltin, SourceLLM:
	case SourceDir:
		if c.Catalog.Dir == "" {
			problems = append(problems, "catalog.dir is required for the dir source")
		}
	case SourceRemote:
		if c.Catalog.URL == "" {
			problems = append(problems, "catalog.url is required for the remote source")
		}
	default:
		problems = append(problems, fmt.Sprintf("catalog.source %q must be builtin, dir, remote or llm", c.Catalog.Source))
	}
	if c.Catalog.Source == SourceLLM && len(c.Catalog.GenerateSkills) == 0 {
		problems = append(problems, "catalog.generate_skills is required for the llm source")
	}
	if c.Catalog.Difficulty != "" {
		if _, ok := catalog.ParseLevel(c.Catalog.Difficulty); !ok {
			problems = append(problems, fmt.Sprintf("catalog.difficulty %q is not a level", c.Catalog.Difficulty))
		}
	}
	if c.Scoring.Timeout < 0 {
		problems = append(problems, "scoring.timeout must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LLMSettings converts the llm section into an llm.Config.
func (c *Config) LLMSettings() llm.Config {
	return llm.Config{
		Provider: c.LLM.Provider,
		Anthropic: llm.AnthropicConfig{
			APIKey:  c.LLM.Anthropic.APIKey,
			Model:   c.LLM.Anthropic.Model,
			BaseURL: c.LLM.Anthropic.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.LLM.OpenAI.APIKey,
			Model:   c.LLM.OpenAI.Model,
			BaseURL: c.LLM.OpenAI.BaseURL,
		},
		Gemini: llm.GeminiConfig{
			APIKey:  c.LLM.Gemini.APIKey,
			Model:   c.LLM.Gemini.Model,
			BaseURL: c.LLM.Gemini.BaseURL,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.LLM.OpenRouter.APIKey,
			Model:   c.LLM.OpenRouter.Model,
			BaseURL: c.LLM.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.LLM.Retry.MaxAttempts,
			InitialWait: c.LLM.Retry.InitialWait,
			MaxWait:     c.LLM.Retry.MaxWait,
			Multiplier:  c.LLM.Retry.Multiplier,
		},
		Timeout: c.LLM.Timeout,
	}
}

// ScoringSettings converts the scoring section into a scoring.Config.
func (c *Config) ScoringSettings() scoring.Config {
	cfg := scoring.DefaultConfig()
	cfg.Timeout = c.Scoring.Timeout
	if c.Scoring.MaxTokens > 0 {
		cfg.MaxTokens = c.Scoring.MaxTokens
	}
	return cfg
}

// GeneratorSettings converts the catalog section into generator settings.
func (c *Config) GeneratorSettings() catalog.GeneratorConfig {
	cfg := catalog.DefaultGeneratorConfig()
	cfg.Skills = c.Catalog.GenerateSkills
	if c.Catalog.Questions > 0 {
		cfg.Questions = c.Catalog.Questions
	}
	if l, ok := catalog.ParseLevel(c.Catalog.Difficulty); ok {
		cfg.Difficulty = l
	}
	return cfg
}
