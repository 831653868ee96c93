// Package schemas provides JSON Schema validation for the documents the service stores.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

// Kind names a persisted document type
type Kind string

// Document kinds with a bundled schema
const (
	KindResume         Kind = "resume"
	KindJobDescription Kind = "job_description"
	KindSuggestions    Kind = "suggestions"
)

// Kinds lists every bundled schema
var Kinds = []Kind{KindResume, KindJobDescription, KindSuggestions}

// ParseKind accepts a kind name as typed on the command line
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	if s == "jd" {
		return KindJobDescription, nil
	}
	return "", fmt.Errorf("unknown schema %q", s)
}

func (k Kind) file() string {
	return string(k) + ".schema.json"
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Kind   Kind
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Kind != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Kind))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compiledMu sync.Mutex
	compiled   = map[Kind]*gojsonschema.Schema{}
)

// schemaFor compiles the bundled schema once and reuses it
func schemaFor(kind Kind) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[kind]; ok {
		return s, nil
	}
	data, err := schemafiles.FS.ReadFile(kind.file())
	if err != nil {
		return nil, &SchemaLoadError{Path: kind.file(), Message: "schema not bundled", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: kind.file(), Message: "invalid schema", Cause: err}
	}
	compiled[kind] = s
	return s, nil
}

// ValidateDocument marshals v and checks it against the schema for kind
func ValidateDocument(kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return ValidateBytes(kind, data)
}

// ValidateBytes checks raw JSON against the schema for kind
func ValidateBytes(kind Kind, data []byte) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", kind, err)
	}
	return toValidationError(kind, result)
}

// ValidateFile checks a JSON file against the schema for kind
func ValidateFile(kind Kind, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return ValidateBytes(kind, data)
}

func toValidationError(kind Kind, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Kind:   kind,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
