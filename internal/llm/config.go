// Package llm provides centralized LLM configuration and client abstractions.
// Extraction, scoring and suggestion code depend only on the Generator and
// Embedder interfaces defined here.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short rewrites, summaries
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction and suggestion generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long documents that need more reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Default call settings
const (
	DefaultEmbeddingModel = "text-embedding-004"
	DefaultTimeout        = 60 * time.Second
	DefaultTemperature    = 0.1
)

// BreakerConfig configures the circuit breaker placed around provider calls
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	MinRequests      uint32
	FailureThreshold float64
	Interval         time.Duration
	Timeout          time.Duration
}

// Config holds the model configuration for the application
type Config struct {
	Provider       Provider
	Models         map[ModelTier]string
	EmbeddingModel string
	Temperature    float32
	// Timeout bounds every single provider call. Zero disables the bound.
	Timeout time.Duration
	// RatePerSecond paces provider calls. Zero disables pacing.
	RatePerSecond float64
	Burst         int
	Breaker       BreakerConfig
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    DefaultTemperature,
		Timeout:        DefaultTimeout,
		RatePerSecond:  2,
		Burst:          4,
		Breaker: BreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			MinRequests:      5,
			FailureThreshold: 0.6,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
