package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/suggestions"
)

// Server defaults
const (
	DefaultPort           = 8080
	DefaultTokenTTL       = 24 * time.Hour
	DefaultMaxUploadBytes = 10 << 20
	DefaultFetchTimeout   = 30 * time.Second
)

// setDefaults registers every key so that environment overrides are picked
// up by Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper) {
	gemini := llm.DefaultGeminiConfig()

	v.SetDefault("llm.provider", string(gemini.Provider))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.models.lite", gemini.Models[llm.TierLite])
	v.SetDefault("llm.models.standard", gemini.Models[llm.TierStandard])
	v.SetDefault("llm.models.advanced", gemini.Models[llm.TierAdvanced])
	v.SetDefault("llm.embedding_model", gemini.EmbeddingModel)
	v.SetDefault("llm.temperature", gemini.Temperature)
	v.SetDefault("llm.timeout", gemini.Timeout)
	v.SetDefault("llm.rate_per_second", gemini.RatePerSecond)
	v.SetDefault("llm.burst", gemini.Burst)
	v.SetDefault("llm.breaker.enabled", gemini.Breaker.Enabled)
	v.SetDefault("llm.breaker.max_requests", gemini.Breaker.MaxRequests)
	v.SetDefault("llm.breaker.min_requests", gemini.Breaker.MinRequests)
	v.SetDefault("llm.breaker.failure_threshold", gemini.Breaker.FailureThreshold)
	v.SetDefault("llm.breaker.interval", gemini.Breaker.Interval)
	v.SetDefault("llm.breaker.timeout", gemini.Breaker.Timeout)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.jwt_secret", "")
	v.SetDefault("server.token_ttl", DefaultTokenTTL)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.cors_origin", "")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.max_upload_bytes", DefaultMaxUploadBytes)

	v.SetDefault("extraction.use_llm", true)
	v.SetDefault("extraction.duplicate_threshold", parsing.DefaultDuplicateThreshold)
	v.SetDefault("extraction.preference_window", parsing.DefaultPreferenceWindow)
	v.SetDefault("extraction.max_input_chars", parsing.DefaultMaxInputChars)
	v.SetDefault("extraction.use_browser", false)
	v.SetDefault("extraction.fetch_timeout", DefaultFetchTimeout)

	v.SetDefault("suggestions.max_count", suggestions.DefaultMaxCount)

	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)
}
