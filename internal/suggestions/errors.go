// Package suggestions proposes targeted résumé edits for a job description,
// combining model-written rewrites with deterministic skill-gap additions.
package suggestions

import (
	"errors"
	"fmt"
)

// ErrNoGenerator is returned by operations that need a language model when none is configured
var ErrNoGenerator = errors.New("no text generator configured")

// ErrMissingInput is returned when the résumé or the job description is nil
var ErrMissingInput = errors.New("resume and job description are required")

// RefinementFailedError is returned when a suggestion could not be refined.
// The caller keeps the unrefined suggestion.
type RefinementFailedError struct {
	Message string
	Cause   error
}

func (e *RefinementFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("refinement failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("refinement failed: %s", e.Message)
}

func (e *RefinementFailedError) Unwrap() error {
	return e.Cause
}

// GenerationFailedError is returned by Generate when the model failed and the
// deterministic pass had nothing to offer either
type GenerationFailedError struct {
	Cause error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("suggestion generation failed: %v", e.Cause)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Cause
}
