package db

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Resume is a stored résumé document
type Resume struct {
	ID        int64            `json:"id"`
	Filename  string           `json:"filename,omitempty"`
	Data      types.ResumeData `json:"data"`
	IsDefault bool             `json:"is_default"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// JobDescription is a stored job posting, deduplicated by content hash
type JobDescription struct {
	ID          int64                `json:"id"`
	SourceURL   string               `json:"source_url,omitempty"`
	ContentHash string               `json:"content_hash"`
	Data        types.JobDescription `json:"data"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Session links one résumé to one job description and caches the latest scores
type Session struct {
	ID               int64                 `json:"id"`
	ResumeID         int64                 `json:"resume_id"`
	JobDescriptionID int64                 `json:"job_description_id"`
	Score            *types.ScoreBreakdown `json:"score,omitempty"`
	SemanticFit      *types.SemanticFit    `json:"semantic_fit,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// SuggestionRecord is a stored suggestion with its session
type SuggestionRecord struct {
	types.Suggestion
	SessionID int64     `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HashJobContent returns the SHA-256 hex digest used to deduplicate postings.
// Whitespace differences do not change the hash.
func HashJobContent(content string) string {
	normalized := strings.Join(strings.Fields(content), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// nullableJSON marshals v, returning nil (SQL NULL) when isNil is set
func nullableJSON(v any, isNil bool) ([]byte, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(v)
}

// decodeJSON unmarshals a JSONB column, leaving out untouched for NULL
func decodeJSON(raw []byte, out any, what string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
