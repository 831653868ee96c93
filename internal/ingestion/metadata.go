package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where a job posting came from
type Metadata struct {
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"` // Detected job board platform
	Title     string `json:"title,omitempty"`    // Page heading, when fetched
	Rendered  bool   `json:"rendered,omitempty"` // Text came from the headless browser
	Timestamp string `json:"timestamp"`          // RFC3339 format
	Hash      string `json:"hash"`               // SHA256 hex digest of the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, url string) *Metadata {
	return &Metadata{
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
