package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sony/gobreaker/v2"
)

// ErrEmptyResponse is the cause recorded when the provider returns no text
var ErrEmptyResponse = errors.New("empty response from model")

// GenerationError is the single failure type returned by Generator and Embedder
// implementations. Reason keeps the provider's cause string with credentials removed.
type GenerationError struct {
	Op        string
	Reason    string
	Retryable bool
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("generation failed: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is a generation failure worth retrying
func IsRetryable(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Retryable
}

var keyParamPattern = regexp.MustCompile(`(?i)(key|api_key|token)=[^&\s"']+`)

// newGenerationError wraps a provider error, scrubbing any credential from its message.
func newGenerationError(op string, err error, secrets ...string) *GenerationError {
	if err == nil {
		return nil
	}
	var existing *GenerationError
	if errors.As(err, &existing) {
		return existing
	}

	reason := redact(err.Error(), secrets...)
	retryable := errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)

	lower := strings.ToLower(reason)
	if strings.Contains(lower, "429") || strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource exhausted") || strings.Contains(lower, "unavailable") {
		retryable = true
	}

	return &GenerationError{Op: op, Reason: reason, Retryable: retryable, Cause: err}
}

func redact(msg string, secrets ...string) string {
	for _, s := range secrets {
		if len(s) >= 4 {
			msg = strings.ReplaceAll(msg, s, "[REDACTED]")
		}
	}
	return keyParamPattern.ReplaceAllString(msg, "$1=[REDACTED]")
}
