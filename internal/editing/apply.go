package editing

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// SkillsShown is how many skills a skills suggestion quotes as its original text
const SkillsShown = 10

// Apply writes the suggestion's applied text (the edited text for an edited
// suggestion, the suggested text otherwise) into a copy of the résumé.
// The input is never mutated.
func Apply(resume *types.ResumeData, s *types.Suggestion) *types.ResumeData {
	if s == nil {
		return resume.Clone()
	}
	return ApplyText(resume, s, s.AppliedText())
}

// ApplyText writes caller-supplied text at the suggestion's address in a copy
// of the résumé. An address that no longer exists leaves the copy unchanged.
func ApplyText(resume *types.ResumeData, s *types.Suggestion, text string) *types.ResumeData {
	out := resume.Clone()
	if out == nil {
		return nil
	}
	ApplyInPlace(out, s, text)
	return out
}

// ApplyInPlace mutates resume directly and reports whether anything changed.
// Callers must hold exclusive access to the résumé for the duration of the call.
func ApplyInPlace(resume *types.ResumeData, s *types.Suggestion, text string) bool {
	if resume == nil || s == nil {
		return false
	}
	addr, ok := resolve(s)
	if !ok {
		return false
	}

	switch addr.Section {
	case types.SectionSummary:
		if resume.Summary == text {
			return false
		}
		resume.Summary = text
		return true

	case types.SectionSkill:
		changed := false
		for _, skill := range strings.Split(text, ",") {
			if resume.AddSkill(skill) {
				changed = true
			}
		}
		return changed

	case types.SectionBullet:
		// Bounds are checked first; the entry may have moved since the suggestion was made
		if addr.Experience >= len(resume.Experience) {
			return false
		}
		exp := &resume.Experience[addr.Experience]
		if addr.Bullet >= len(exp.Bullets) {
			return false
		}
		if exp.Bullets[addr.Bullet].Text == text {
			return false
		}
		exp.Bullets[addr.Bullet].Text = text
		return true
	}
	return false
}

// CurrentText returns the résumé text at the suggestion's address: the summary,
// the skills display or the bullet text. ok is false when the address is gone.
func CurrentText(resume *types.ResumeData, s *types.Suggestion) (text string, ok bool) {
	if resume == nil || s == nil {
		return "", false
	}
	addr, ok := resolve(s)
	if !ok {
		return "", false
	}
	switch addr.Section {
	case types.SectionSummary:
		return resume.Summary, true
	case types.SectionSkill:
		return resume.SkillsDisplay(SkillsShown), true
	}
	if addr.Experience >= len(resume.Experience) || addr.Bullet >= len(resume.Experience[addr.Experience].Bullets) {
		return "", false
	}
	return resume.Experience[addr.Experience].Bullets[addr.Bullet].Text, true
}
