package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/llm"
)

// isolate clears every variable Load consults so host settings do not leak
// into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"CAREERPATH_LLM_PROVIDER", "CAREERPATH_ANTHROPIC_API_KEY", "CAREERPATH_LLM_ANTHROPIC_API_KEY",
		"CAREERPATH_CATALOG_SOURCE", "CAREERPATH_CATALOG_DIR", "CAREERPATH_LOG_LEVEL",
		"CAREERPATH_METRICS_ADDR", "CAREERPATH_SCORING_TIMEOUT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, SourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Scoring.Timeout)
	assert.Equal(t, llm.ProviderNone, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.False(t, cfg.LLMSettings().Enabled())
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	path := writeFile(t, "careerpath.yaml", `
log:
  level: debug
  format: json
catalog:
  source: dir
  dir: `+dir+`
scoring:
  timeout: 5s
metrics:
  addr: ":9464"
llm:
  provider: mock
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, SourceDir, cfg.Catalog.Source)
	assert.Equal(t, dir, cfg.Catalog.Dir)
	assert.Equal(t, 5*time.Second, cfg.Scoring.Timeout)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, "c.yaml", "log:\n  level: debug\n")

	t.Setenv("CAREERPATH_LOG_LEVEL", "warn")
	t.Setenv("CAREERPATH_CATALOG_SOURCE", "remote")
	t.Setenv("CAREERPATH_CATALOG_URL", "http://localhost:8080/catalog.json")
	t.Setenv("CAREERPATH_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CAREERPATH_LLM_PROVIDER", "anthropic")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, SourceRemote, cfg.Catalog.Source)
	assert.Equal(t, "http://localhost:8080/catalog.json", cfg.Catalog.URL)

	lc := cfg.LLMSettings()
	assert.Equal(t, llm.ProviderAnthropic, lc.Provider)
	assert.Equal(t, "sk-test", lc.Anthropic.APIKey)
	assert.NoError(t, lc.Validate())
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	path := writeFile(t, "bad.yaml", "catalog:\n  source: ftp\nlog:\n  format: xml\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.source")
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Log:     LogConfig{Level: "info", Format: "console"},
			Catalog: CatalogConfig{Source: SourceBuiltin},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"dir without path", func(c *Config) { c.Catalog.Source = SourceDir }, "catalog.dir"},
		{"remote without url", func(c *Config) { c.Catalog.Source = SourceRemote }, "catalog.url"},
		{"llm without skills", func(c *Config) { c.Catalog.Source = SourceLLM }, "generate_skills"},
		{"bad difficulty", func(c *Config) { c.Catalog.Difficulty = "guru" }, "catalog.difficulty"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"negative timeout", func(c *Config) { c.Scoring.Timeout = -time.Second }, "scoring.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGeneratorSettings(t *testing.T) {
	c := Config{Catalog: CatalogConfig{GenerateSkills: []string{"go", "sql"}, Questions: 8, Difficulty: "advanced"}}
	g := c.GeneratorSettings()
	assert.Equal(t, []string{"go", "sql"}, g.Skills)
	assert.Equal(t, 8, g.Questions)
	assert.Equal(t, catalog.LevelAdvanced, g.Difficulty)

	g = (&Config{}).GeneratorSettings()
	assert.Equal(t, catalog.DefaultGeneratorConfig().Questions, g.Questions)
}

func TestScoringSettings(t *testing.T) {
	c := Config{Scoring: ScoringConfig{Timeout: 2 * time.Second}}
	s := c.ScoringSettings()
	assert.Equal(t, 2*time.Second, s.Timeout)
	assert.Equal(t, 1024, s.MaxTokens)
}
