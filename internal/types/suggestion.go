package types

import "errors"

// ErrSuggestionProcessed is returned when a suggestion has already left the pending state
var ErrSuggestionProcessed = errors.New("suggestion already processed")

// SectionType identifies the kind of résumé field a suggestion targets
type SectionType string

// Section types
const (
	SectionSummary SectionType = "summary"
	SectionSkill   SectionType = "skill"
	SectionBullet  SectionType = "bullet"
)

// Valid reports whether the section type is one of the known values
func (s SectionType) Valid() bool {
	switch s {
	case SectionSummary, SectionSkill, SectionBullet:
		return true
	}
	return false
}

// Priority ranks suggestions; high sorts first
type Priority string

// Priorities
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of the priority (lower sorts first).
// Unknown priorities sort with medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Valid reports whether the priority is one of the known values
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Status tracks a suggestion through review
type Status string

// Suggestion statuses
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusEdited   Status = "edited"
)

// Suggestion is a single proposed edit: one field, one replacement.
type Suggestion struct {
	ID                 string      `json:"id"`
	SectionType        SectionType `json:"section_type"`
	SectionID          string      `json:"section_id"`
	OriginalText       string      `json:"original_text"`
	SuggestedText      string      `json:"suggested_text"`
	Reason             string      `json:"reason"`
	ExpectedScoreDelta float64     `json:"expected_score_delta"`
	JDMapping          string      `json:"jd_mapping,omitempty"`
	Category           string      `json:"category"`
	Priority           Priority    `json:"priority"`
	Status             Status      `json:"status"`
	EditedText         string      `json:"edited_text,omitempty"`
}

// AppliedText returns the text that should be written into the résumé
func (s *Suggestion) AppliedText() string {
	if s.Status == StatusEdited && s.EditedText != "" {
		return s.EditedText
	}
	return s.SuggestedText
}

// Accept marks a pending suggestion as accepted
func (s *Suggestion) Accept() error {
	return s.transition(StatusAccepted, "")
}

// Reject marks a pending suggestion as rejected
func (s *Suggestion) Reject() error {
	return s.transition(StatusRejected, "")
}

// Edit marks a pending suggestion as edited and records the text that was applied
func (s *Suggestion) Edit(text string) error {
	return s.transition(StatusEdited, text)
}

func (s *Suggestion) transition(to Status, edited string) error {
	if s.Status != "" && s.Status != StatusPending {
		return ErrSuggestionProcessed
	}
	s.Status = to
	if to == StatusEdited {
		s.EditedText = edited
	}
	return nil
}

// SuggestionSet is the result of one generation call
type SuggestionSet struct {
	Summary     string       `json:"summary,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}
