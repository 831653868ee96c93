package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/suggestions"
)

// isolate keeps the developer's environment out of Load
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "DATABASE_URL", "JWT_SECRET",
		"RESUME_MATCHER_LLM_API_KEY", "RESUME_MATCHER_DATABASE_URL", "RESUME_MATCHER_SERVER_PORT",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, llm.DefaultTimeout, cfg.LLM.Timeout)
	assert.True(t, cfg.LLM.Breaker.Enabled)
	assert.True(t, cfg.Extraction.UseLLM)
	assert.Equal(t, parsing.DefaultDuplicateThreshold, cfg.Extraction.DuplicateThreshold)
	assert.Equal(t, suggestions.DefaultMaxCount, cfg.Suggestions.MaxCount)
	assert.Empty(t, cfg.Database.URL)
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)

	content := `
llm:
  models:
    advanced: gemini-exp
  timeout: 15s
database:
  url: postgres://localhost/matcher
  max_conns: 4
server:
  port: 9090
suggestions:
  max_count: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini-exp", cfg.LLM.Models.Advanced)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "postgres://localhost/matcher", cfg.Database.URL)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, 5, cfg.Suggestions.MaxCount)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("RESUME_MATCHER_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://env/db", cfg.Database.URL)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server:\n  port: 70000\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "negative timeout", mutate: func(c *Config) { c.LLM.Timeout = -time.Second }, wantErr: "llm.timeout"},
		{name: "threshold above one", mutate: func(c *Config) { c.LLM.Breaker.FailureThreshold = 1.5 }, wantErr: "failure_threshold"},
		{name: "negative max conns", mutate: func(c *Config) { c.Database.MaxConns = -1 }, wantErr: "max_conns"},
		{name: "negative rate", mutate: func(c *Config) { c.Server.RateLimit = -1 }, wantErr: "rate_limit"},
		{name: "duplicate threshold", mutate: func(c *Config) { c.Extraction.DuplicateThreshold = 2 }, wantErr: "duplicate_threshold"},
		{name: "negative max count", mutate: func(c *Config) { c.Suggestions.MaxCount = -3 }, wantErr: "max_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLLMSettings(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{
		Models:        ModelsConfig{Standard: "custom-standard"},
		Timeout:       5 * time.Second,
		RatePerSecond: 1,
		Burst:         2,
		Breaker:       BreakerConfig{Enabled: true, FailureThreshold: 0.5},
	}}

	got := cfg.LLMSettings()

	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "custom-standard", got.GetModel(llm.TierStandard))
	assert.Equal(t, llm.DefaultGeminiConfig().Models[llm.TierAdvanced], got.GetModel(llm.TierAdvanced))
	assert.Equal(t, llm.DefaultEmbeddingModel, got.EmbeddingModel)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, 0.5, got.Breaker.FailureThreshold)
}

func TestParsingOptions(t *testing.T) {
	cfg := &Config{Extraction: ExtractionConfig{DuplicateThreshold: 0.9}}

	opts := cfg.ParsingOptions(nil)

	assert.Equal(t, 0.9, opts.DuplicateThreshold)
	assert.Equal(t, parsing.DefaultPreferenceWindow, opts.PreferenceWindow)
	assert.NotEmpty(t, opts.SkillVocabulary)
}
