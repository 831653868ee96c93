// Package editing applies accepted suggestions back onto a structured résumé.
package editing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// ErrInvalidSectionID is returned for a section id that names no résumé field
var ErrInvalidSectionID = errors.New("invalid section id")

// SummaryID and SkillsID are the canonical section ids for the summary and the
// skills list. Bullets are addressed as experience_{i}_bullet_{j}.
const (
	SummaryID = "summary"
	SkillsID  = "skills_section"
)

// Address locates the résumé field a suggestion edits. Experience and Bullet
// are only meaningful for bullet addresses.
type Address struct {
	Section    types.SectionType
	Experience int
	Bullet     int
}

// BulletID formats the section id of the j-th bullet of the i-th experience entry
func BulletID(i, j int) string {
	return fmt.Sprintf("experience_%d_bullet_%d", i, j)
}

// String returns the canonical section id for the address
func (a Address) String() string {
	switch a.Section {
	case types.SectionSummary:
		return SummaryID
	case types.SectionSkill:
		return SkillsID
	default:
		return BulletID(a.Experience, a.Bullet)
	}
}

// ParseSectionID parses a section id. Accepted forms are "summary", the skill
// family ("skill", "skills", "skills_section" and "skill_*") and
// "experience_{i}_bullet_{j}" with non-negative indices.
func ParseSectionID(id string) (Address, error) {
	id = strings.ToLower(strings.TrimSpace(id))

	switch {
	case id == SummaryID:
		return Address{Section: types.SectionSummary}, nil
	case id == "skill" || id == "skills" || id == SkillsID || strings.HasPrefix(id, "skill_"):
		return Address{Section: types.SectionSkill}, nil
	case strings.HasPrefix(id, "experience_"):
		parts := strings.Split(id, "_")
		if len(parts) != 4 || parts[2] != "bullet" {
			break
		}
		i, errI := strconv.Atoi(parts[1])
		j, errJ := strconv.Atoi(parts[3])
		if errI != nil || errJ != nil || i < 0 || j < 0 {
			break
		}
		return Address{Section: types.SectionBullet, Experience: i, Bullet: j}, nil
	}

	return Address{}, fmt.Errorf("%w: %q", ErrInvalidSectionID, id)
}

// resolve picks the address a suggestion edits. The section id wins; when it
// cannot be parsed, summary and skill suggestions still have an unambiguous
// target through their section type.
func resolve(s *types.Suggestion) (Address, bool) {
	if addr, err := ParseSectionID(s.SectionID); err == nil {
		return addr, true
	}
	switch s.SectionType {
	case types.SectionSummary, types.SectionSkill:
		return Address{Section: s.SectionType}, true
	}
	return Address{}, false
}
