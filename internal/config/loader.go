package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/careerpath/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g.
// CAREERPATH_CATALOG_SOURCE for catalog.source.
const EnvPrefix = "CAREERPATH"

// Load resolves the configuration. path names a YAML file to read; when
// empty, careerpath.yaml is looked up in the working directory and in
// $XDG_CONFIG_HOME/careerpath. A missing default file is not an error.
//
// Precedence, highest first: environment, config file, defaults. When no
// LLM provider is configured, standard vendor key variables are checked.
func Load(path string) (*Config, error) {
	loadEnvFile(".env")

	v := viper.New()
	setDefaults(v)
	bindLegacyEnv(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("careerpath")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "careerpath"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	discoverLLM(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads KEY=value pairs from path without overriding variables
// already set in the environment.
func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("store.path", "")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("catalog.source", SourceBuiltin)
	v.SetDefault("catalog.dir", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.generate_skills", []string{})
	v.SetDefault("catalog.questions", 0)
	v.SetDefault("catalog.difficulty", "")

	v.SetDefault("scoring.timeout", "30s")
	v.SetDefault("scoring.max_tokens", 0)

	v.SetDefault("metrics.addr", "")
}

// bindLegacyEnv accepts the short CAREERPATH_<PROVIDER>_* variables
// alongside the nested CAREERPATH_LLM_* names.
func bindLegacyEnv(v *viper.Viper) {
	binds := map[string][]string{
		"llm.provider":            {"CAREERPATH_LLM_PROVIDER"},
		"llm.timeout":             {"CAREERPATH_LLM_TIMEOUT"},
		"llm.anthropic.api_key":   {"CAREERPATH_LLM_ANTHROPIC_API_KEY", "CAREERPATH_ANTHROPIC_API_KEY"},
		"llm.anthropic.model":     {"CAREERPATH_LLM_ANTHROPIC_MODEL", "CAREERPATH_ANTHROPIC_MODEL"},
		"llm.openai.api_key":      {"CAREERPATH_LLM_OPENAI_API_KEY", "CAREERPATH_OPENAI_API_KEY"},
		"llm.openai.model":        {"CAREERPATH_LLM_OPENAI_MODEL", "CAREERPATH_OPENAI_MODEL"},
		"llm.openai.base_url":     {"CAREERPATH_LLM_OPENAI_BASE_URL", "CAREERPATH_OPENAI_BASE_URL"},
		"llm.gemini.api_key":      {"CAREERPATH_LLM_GEMINI_API_KEY", "CAREERPATH_GEMINI_API_KEY"},
		"llm.gemini.model":        {"CAREERPATH_LLM_GEMINI_MODEL", "CAREERPATH_GEMINI_MODEL"},
		"llm.openrouter.api_key":  {"CAREERPATH_LLM_OPENROUTER_API_KEY", "CAREERPATH_OPENROUTER_API_KEY"},
		"llm.openrouter.model":    {"CAREERPATH_LLM_OPENROUTER_MODEL", "CAREERPATH_OPENROUTER_MODEL"},
		"llm.openrouter.base_url": {"CAREERPATH_LLM_OPENROUTER_BASE_URL", "CAREERPATH_OPENROUTER_BASE_URL"},
	}
	for key, envs := range binds {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// discoverLLM fills an unset provider from the standard vendor key
// variables, or disables the LLM when none is found.
func discoverLLM(cfg *Config) {
	if cfg.LLM.Provider != "" {
		return
	}
	found, ok := llm.DiscoverConfig()
	if !ok {
		cfg.LLM.Provider = llm.ProviderNone
		return
	}
	cfg.LLM.Provider = found.Provider
	switch found.Provider {
	case llm.ProviderAnthropic:
		cfg.LLM.Anthropic.APIKey = found.Anthropic.APIKey
	case llm.ProviderOpenAI:
		cfg.LLM.OpenAI.APIKey = found.OpenAI.APIKey
	case llm.ProviderGemini:
		cfg.LLM.Gemini.APIKey = found.Gemini.APIKey
	case llm.ProviderOpenRouter:
		cfg.LLM.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}
