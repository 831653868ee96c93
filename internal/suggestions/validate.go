package suggestions

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Validate drops unusable suggestions and fills in defaults. A suggestion is
// dropped when either text is empty, when both texts are the same, or when its
// original text repeats one already kept (compared on the first 100
// case-folded characters). Skill additions share the skills list as their
// original text, so for them the added skill is part of the comparison.
// Text fields longer than MaxTextLen are cut.
func Validate(in []types.Suggestion) []types.Suggestion {
	out := make([]types.Suggestion, 0, len(in))
	seen := make(map[string]bool, len(in))

	for _, s := range in {
		// Truncate before comparing so texts that differ only past the limit
		// are caught as no-ops
		s.OriginalText = truncate(strings.TrimSpace(s.OriginalText), MaxTextLen, "...")
		s.SuggestedText = truncate(strings.TrimSpace(s.SuggestedText), MaxTextLen, "...")
		if s.OriginalText == "" || s.SuggestedText == "" || s.OriginalText == s.SuggestedText {
			continue
		}

		key := dedupKey(s.OriginalText)
		if types.SectionType(strings.ToLower(string(s.SectionType))) == types.SectionSkill {
			key += "\x00" + strings.ToLower(s.SuggestedText)
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		s.Reason = truncate(strings.TrimSpace(s.Reason), MaxTextLen, "...")
		s.JDMapping = truncate(strings.TrimSpace(s.JDMapping), MaxTextLen, "...")
		applyDefaults(&s)

		out = append(out, s)
	}
	return out
}

func dedupKey(original string) string {
	r := []rune(strings.ToLower(strings.TrimSpace(original)))
	if len(r) > dedupPrefixLen {
		r = r[:dedupPrefixLen]
	}
	return string(r)
}

func applyDefaults(s *types.Suggestion) {
	if s.ID == "" {
		s.ID = newID()
	}

	s.SectionType = types.SectionType(strings.ToLower(string(s.SectionType)))
	if !s.SectionType.Valid() {
		s.SectionType = types.SectionBullet
	}
	if strings.TrimSpace(s.SectionID) == "" {
		switch s.SectionType {
		case types.SectionSummary:
			s.SectionID = editing.SummaryID
		case types.SectionSkill:
			s.SectionID = editing.SkillsID
		default:
			s.SectionID = "unknown"
		}
	}

	s.Priority = types.Priority(strings.ToLower(string(s.Priority)))
	if !s.Priority.Valid() {
		s.Priority = types.PriorityMedium
	}
	if s.Category == "" {
		s.Category = defaultCategory
	}
	if s.Reason == "" {
		s.Reason = defaultReason
	}
	if s.Status == "" {
		s.Status = types.StatusPending
	}
}

// Sort orders suggestions by priority, high first, then by descending
// expected score delta. Ties keep their input order.
func Sort(s []types.Suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		if ri, rj := s[i].Priority.Rank(), s[j].Priority.Rank(); ri != rj {
			return ri < rj
		}
		return s[i].ExpectedScoreDelta > s[j].ExpectedScoreDelta
	})
}

func newID() string {
	return uuid.NewString()
}
