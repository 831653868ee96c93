package config

import (
	"fmt"
	"time"
)

// MinJWTSecretLen is the shortest HS256 secret accepted
const MinJWTSecretLen = 16

// JWTConfig holds configuration for API token signing and validation.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// JWT returns the token configuration, or nil when authentication is disabled
// (no secret configured).
func (s ServerConfig) JWT() (*JWTConfig, error) {
	if s.JWTSecret == "" {
		return nil, nil
	}
	cfg := &JWTConfig{Secret: s.JWTSecret, Expiration: s.TokenTTL}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize applies the default lifetime and validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < MinJWTSecretLen {
		return fmt.Errorf("jwt secret must be at least %d characters, got %d", MinJWTSecretLen, len(c.Secret))
	}
	if c.Expiration == 0 {
		c.Expiration = DefaultTokenTTL
	}
	if c.Expiration < time.Minute {
		return fmt.Errorf("token lifetime must be at least one minute, got: %s", c.Expiration)
	}
	return nil
}
