package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jonathan/resume-matcher/internal/observability"
)

// ResilientClient wraps a Client with a per-call timeout, call pacing and a
// circuit breaker. Failures of any kind surface as *GenerationError.
type ResilientClient struct {
	inner   Client
	config  *Config
	limiter *rate.Limiter
	textCB  *gobreaker.CircuitBreaker[string]
	embedCB *gobreaker.CircuitBreaker[[][]float32]
	logger  *zap.Logger
}

// NewResilientClient wraps inner according to config
func NewResilientClient(inner Client, config *Config, logger *zap.Logger) *ResilientClient {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := &ResilientClient{inner: inner, config: config, logger: logger}
	if config.RatePerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		rc.limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), burst)
	}
	if config.Breaker.Enabled {
		rc.textCB = gobreaker.NewCircuitBreaker[string](rc.breakerSettings("llm-generate"))
		rc.embedCB = gobreaker.NewCircuitBreaker[[][]float32](rc.breakerSettings("llm-embed"))
	}
	return rc
}

func (c *ResilientClient) breakerSettings(name string) gobreaker.Settings {
	bc := c.config.Breaker
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= bc.MinRequests && failureRatio >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
}

// Generate implements Generator
func (c *ResilientClient) Generate(ctx context.Context, messages []Message, tier ModelTier, jsonMode bool) (string, error) {
	start := time.Now()
	text, err := execute(c.textCB, func() (string, error) {
		callCtx, cancel, err := c.prepare(ctx)
		if err != nil {
			return "", err
		}
		defer cancel()
		return c.inner.Generate(callCtx, messages, tier, jsonMode)
	})
	c.observe("generate", start, err,
		zap.String("model", c.config.GetModel(tier)),
		zap.Int("messages", len(messages)),
		zap.Bool("json_mode", jsonMode))
	if err != nil {
		return "", newGenerationError("generate", err)
	}
	return text, nil
}

// Embed implements Embedder
func (c *ResilientClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vectors, err := execute(c.embedCB, func() ([][]float32, error) {
		callCtx, cancel, err := c.prepare(ctx)
		if err != nil {
			return nil, err
		}
		defer cancel()
		return c.inner.Embed(callCtx, texts)
	})
	c.observe("embed", start, err,
		zap.String("model", c.config.EmbeddingModel),
		zap.Int("texts", len(texts)))
	if err != nil {
		return nil, newGenerationError("embed", err)
	}
	return vectors, nil
}

// GenerateContent generates text content from a single prompt
func (c *ResilientClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.Generate(ctx, []Message{UserMessage(prompt)}, tier, false)
}

// GenerateJSON generates JSON content from a single prompt
func (c *ResilientClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.Generate(ctx, []Message{UserMessage(prompt)}, tier, true)
}

// GetModel returns the model name for a tier
func (c *ResilientClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close releases the wrapped client
func (c *ResilientClient) Close() error {
	return c.inner.Close()
}

// BreakerState reports the generation breaker state, or "disabled"
func (c *ResilientClient) BreakerState() string {
	if c.textCB == nil {
		return "disabled"
	}
	return c.textCB.State().String()
}

// prepare waits for the rate limiter and applies the call timeout
func (c *ResilientClient) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	if c.config.Timeout > 0 {
		callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		return callCtx, cancel, nil
	}
	return ctx, func() {}, nil
}

func (c *ResilientClient) observe(op string, start time.Time, err error, fields ...zap.Field) {
	elapsed := time.Since(start)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	observability.ObserveLLMCall(op, outcome, elapsed)

	fields = append(fields, zap.String("operation", op), zap.Duration("duration", elapsed))
	if err != nil {
		c.logger.Warn("llm call failed", append(fields, zap.String("reason", observability.TruncateForLog(err.Error(), 300)))...)
		return
	}
	c.logger.Debug("llm call completed", fields...)
}

// execute runs fn through the breaker when one is configured
func execute[T any](cb *gobreaker.CircuitBreaker[T], fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	return cb.Execute(fn)
}
