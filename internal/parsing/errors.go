// Package parsing extracts structured résumés and job descriptions from text,
// using a language model when one is configured and rule-based heuristics otherwise.
package parsing

import "fmt"

// EmptyInputError is returned when there is no text to parse
type EmptyInputError struct {
	Kind string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s text is empty", e.Kind)
}

// UnparseableDocumentError is returned when the extracted résumé lacks a name,
// an email, experience and education all at once
type UnparseableDocumentError struct {
	Message string
	Cause   error
}

func (e *UnparseableDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparseable document: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unparseable document: %s", e.Message)
}

func (e *UnparseableDocumentError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing a model reply
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
