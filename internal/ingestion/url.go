// Package ingestion turns job postings from files, URLs or pasted text into
// clean text ready for structured extraction.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when the posting could not be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrEmptyPosting is returned when no text remains after cleaning
	ErrEmptyPosting = errors.New("job posting is empty")
)

// Posting is a cleaned job posting with its provenance
type Posting struct {
	Text string
	Meta *Metadata
}

// FromText cleans pasted posting text
func FromText(text string) (*Posting, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyPosting
	}
	return &Posting{Text: cleaned, Meta: NewMetadata(cleaned, "")}, nil
}

// FromFile reads a posting from a text or saved HTML file
func FromFile(path string) (*Posting, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if isHTML(path, text) {
		text, err = fetch.ExtractMainText(text, fetch.JobPostingSelectors(), fetch.PlatformNoiseSelectors(fetch.PlatformUnknown)...)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
		}
	}
	return FromText(text)
}

// FromURL fetches a posting through src and cleans its main text
func FromURL(ctx context.Context, src fetch.PageSource, urlStr string) (*Posting, error) {
	if err := fetch.ValidateURL(urlStr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	page, err := src.JobPosting(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	cleaned := CleanText(page.Text)
	if cleaned == "" {
		return nil, fmt.Errorf("%s: %w", urlStr, ErrEmptyPosting)
	}
	meta := NewMetadata(cleaned, urlStr)
	meta.Platform = string(page.Platform)
	meta.Title = page.Title
	meta.Rendered = page.Rendered
	return &Posting{Text: cleaned, Meta: meta}, nil
}

func isHTML(path, content string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
