// Package server provides the HTTP REST API for résumé matching.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/document"
	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/suggestions"
	"github.com/jonathan/resume-matcher/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		input       *pipeline.InputError
		emptyInput  *parsing.EmptyInputError
		emptyDoc    *document.EmptyDocumentError
		unsupported *document.UnsupportedFormatError
		conversion  *document.ConversionError
		unparseable *parsing.UnparseableDocumentError
		schema      *schemas.ValidationError
		generation  *llm.GenerationError
		refinement  *suggestions.RefinementFailedError
		generate    *suggestions.GenerationFailedError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &input), errors.As(err, &emptyInput),
		errors.As(err, &emptyDoc), errors.As(err, &unsupported),
		errors.Is(err, editing.ErrInvalidSectionID), errors.Is(err, ingestion.ErrInvalidURL),
		errors.Is(err, ingestion.ErrEmptyPosting), errors.Is(err, suggestions.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrSuggestionProcessed):
		return http.StatusConflict
	case errors.As(err, &conversion), errors.As(err, &unparseable), errors.As(err, &schema):
		return http.StatusUnprocessableEntity
	case errors.As(err, &generation):
		if generation.Retryable {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	case errors.As(err, &refinement), errors.As(err, &generate), errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return http.StatusBadGateway
	case errors.Is(err, pipeline.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
