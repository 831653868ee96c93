// Package config loads the service configuration from an optional file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/suggestions"
)

// EnvPrefix is prepended to every environment variable, e.g. RESUME_MATCHER_SERVER_PORT
const EnvPrefix = "RESUME_MATCHER"

// Config is the full service configuration.
// Precedence: explicit flags, then environment variables, then the config
// file, then defaults.
type Config struct {
	LLM         LLMConfig         `mapstructure:"llm"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Server      ServerConfig      `mapstructure:"server"`
	Extraction  ExtractionConfig  `mapstructure:"extraction"`
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// LLMConfig configures the model provider
type LLMConfig struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"api_key"`
	Models         ModelsConfig  `mapstructure:"models"`
	EmbeddingModel string        `mapstructure:"embedding_model"`
	Temperature    float32       `mapstructure:"temperature"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RatePerSecond  float64       `mapstructure:"rate_per_second"`
	Burst          int           `mapstructure:"burst"`
	Breaker        BreakerConfig `mapstructure:"breaker"`
}

// ModelsConfig names the model used for each tier
type ModelsConfig struct {
	Lite     string `mapstructure:"lite"`
	Standard string `mapstructure:"standard"`
	Advanced string `mapstructure:"advanced"`
}

// BreakerConfig configures the circuit breaker around provider calls
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig configures PostgreSQL access. An empty URL keeps records in
// memory for the life of the process.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second per client, 0 disables
	RateBurst      int           `mapstructure:"rate_burst"`
	CORSOrigin     string        `mapstructure:"cors_origin"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ExtractionConfig tunes résumé and job description extraction
type ExtractionConfig struct {
	UseLLM             bool          `mapstructure:"use_llm"`
	DuplicateThreshold float64       `mapstructure:"duplicate_threshold"`
	PreferenceWindow   int           `mapstructure:"preference_window"`
	MaxInputChars      int           `mapstructure:"max_input_chars"`
	UseBrowser         bool          `mapstructure:"use_browser"`
	FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
}

// SuggestionsConfig tunes suggestion generation
type SuggestionsConfig struct {
	MaxCount int `mapstructure:"max_count"`
}

// LoggingConfig selects the log encoder and level
type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from path (if non-empty), the environment and defaults.
// Without a path, resume_matcher.{yaml,json} is searched for in the working
// directory and $HOME/.resume_matcher, and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Well-known names used by the rest of the tooling
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.jwt_secret", EnvPrefix+"_SERVER_JWT_SECRET", "JWT_SECRET")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("resume_matcher")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.resume_matcher")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required credentials are checked by the commands that need them.
func (c *Config) Validate() error {
	switch {
	case c.LLM.Timeout < 0:
		return fmt.Errorf("config error: 'llm.timeout' must be non-negative")
	case c.LLM.RatePerSecond < 0:
		return fmt.Errorf("config error: 'llm.rate_per_second' must be non-negative")
	case c.LLM.Breaker.FailureThreshold < 0 || c.LLM.Breaker.FailureThreshold > 1:
		return fmt.Errorf("config error: 'llm.breaker.failure_threshold' must be between 0 and 1")
	case c.Database.MaxConns < 0:
		return fmt.Errorf("config error: 'database.max_conns' must be non-negative")
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535, got %d", c.Server.Port)
	case c.Server.RateLimit < 0:
		return fmt.Errorf("config error: 'server.rate_limit' must be non-negative")
	case c.Extraction.DuplicateThreshold < 0 || c.Extraction.DuplicateThreshold > 1:
		return fmt.Errorf("config error: 'extraction.duplicate_threshold' must be between 0 and 1")
	case c.Extraction.PreferenceWindow < 0:
		return fmt.Errorf("config error: 'extraction.preference_window' must be non-negative")
	case c.Suggestions.MaxCount < 0:
		return fmt.Errorf("config error: 'suggestions.max_count' must be non-negative")
	}
	return nil
}

// LLMSettings converts the llm section into the client configuration
func (c *Config) LLMSettings() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		cfg.Provider = llm.Provider(c.LLM.Provider)
	}
	for tier, model := range map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.Models.Lite,
		llm.TierStandard: c.LLM.Models.Standard,
		llm.TierAdvanced: c.LLM.Models.Advanced,
	} {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	if c.LLM.EmbeddingModel != "" {
		cfg.EmbeddingModel = c.LLM.EmbeddingModel
	}
	cfg.Temperature = c.LLM.Temperature
	cfg.Timeout = c.LLM.Timeout
	cfg.RatePerSecond = c.LLM.RatePerSecond
	cfg.Burst = c.LLM.Burst
	cfg.Breaker = llm.BreakerConfig{
		Enabled:          c.LLM.Breaker.Enabled,
		MaxRequests:      c.LLM.Breaker.MaxRequests,
		MinRequests:      c.LLM.Breaker.MinRequests,
		FailureThreshold: c.LLM.Breaker.FailureThreshold,
		Interval:         c.LLM.Breaker.Interval,
		Timeout:          c.LLM.Breaker.Timeout,
	}
	return cfg
}

// ParsingOptions returns the extractor tuning
func (c *Config) ParsingOptions(logger *zap.Logger) parsing.Options {
	opts := parsing.DefaultOptions()
	if c.Extraction.DuplicateThreshold > 0 {
		opts.DuplicateThreshold = c.Extraction.DuplicateThreshold
	}
	if c.Extraction.PreferenceWindow > 0 {
		opts.PreferenceWindow = c.Extraction.PreferenceWindow
	}
	if c.Extraction.MaxInputChars > 0 {
		opts.MaxInputChars = c.Extraction.MaxInputChars
	}
	opts.Logger = logger
	return opts
}

// SuggestionOptions returns the suggestion generator tuning
func (c *Config) SuggestionOptions(logger *zap.Logger) suggestions.Options {
	return suggestions.Options{MaxCount: c.Suggestions.MaxCount, Logger: logger}
}
