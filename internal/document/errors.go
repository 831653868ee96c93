// Package document turns PDF and DOCX files into a single text stream.
package document

import "fmt"

// EmptyDocumentError is returned when a document yields no extractable text
type EmptyDocumentError struct {
	Format Format
	Reason string
}

func (e *EmptyDocumentError) Error() string {
	msg := fmt.Sprintf("empty document: no extractable text found in %s", e.Format)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// UnsupportedFormatError is returned for file types other than PDF and DOCX
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q (expected .pdf or .docx)", e.Extension)
}

// ConversionError wraps a failure of the underlying converter
type ConversionError struct {
	Format Format
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s: %v", e.Format, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
