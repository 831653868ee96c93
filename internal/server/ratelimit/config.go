package ratelimit

import (
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultRate     float64 // requests per second for unmatched endpoints
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused for this long are dropped
	EndpointConfigs []EndpointConfig
}

// Defaults for the bucket janitor
const (
	DefaultCleanupInterval = 5 * time.Minute
	DefaultIdleTTL         = time.Hour
)

// NewConfig builds a configuration with the given per-client default rate.
// A rate of zero or less disables limiting.
func NewConfig(perSecond float64, burst int) *Config {
	if perSecond <= 0 {
		return &Config{Enabled: false}
	}
	if burst <= 0 {
		burst = max(1, int(perSecond))
	}
	return &Config{
		Enabled:         true,
		DefaultRate:     perSecond,
		DefaultBurst:    burst,
		CleanupInterval: DefaultCleanupInterval,
		IdleTTL:         DefaultIdleTTL,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: model-backed operations (strictest limits)
		{Path: "/match", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/match/stream", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/suggestions", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/fit-summary", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/resumes", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/job-descriptions", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Tier 2: review operations (accept, reject, edit, refine)
		{Path: "/suggestions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: reads use the default rate; health and metrics are unlimited
	}
}
