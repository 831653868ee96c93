// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"strconv"
	"strings"
)

// UnknownValue is stored in required string fields that extraction could not fill.
const UnknownValue = "Unknown"

// ErrUnparseable is returned when a résumé carries no name, no email, no experience and no education.
var ErrUnparseable = errors.New("could not extract meaningful content from resume")

// PersonalInfo holds contact details from the résumé header
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// BulletPoint is a single achievement line owned by an experience entry
type BulletPoint struct {
	Text       string         `json:"text"`
	Formatting map[string]any `json:"formatting,omitempty"`
}

// ExperienceEntry represents one position in the work history
type ExperienceEntry struct {
	Company   string        `json:"company"`
	Title     string        `json:"title"`
	Location  string        `json:"location,omitempty"`
	StartDate string        `json:"start_date,omitempty"`
	EndDate   string        `json:"end_date,omitempty"`
	Bullets   []BulletPoint `json:"bullets"`
}

// EducationEntry represents one degree or program
type EducationEntry struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
}

// ResumeData is the structured form of a résumé
type ResumeData struct {
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Summary      string            `json:"summary,omitempty"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
	Formatting   map[string]any    `json:"formatting_map,omitempty"`
}

// AddSkill appends a skill unless an equal one (ignoring case) is already present.
// It reports whether the skill was added.
func (r *ResumeData) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || r.HasSkill(skill) {
		return false
	}
	r.Skills = append(r.Skills, skill)
	return true
}

// HasSkill reports whether the skill list contains the given skill, ignoring case.
func (r *ResumeData) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(skill)) {
			return true
		}
	}
	return false
}

// DedupSkills removes case-insensitive duplicates, keeping first appearance order.
func (r *ResumeData) DedupSkills() {
	skills := r.Skills
	r.Skills = make([]string, 0, len(skills))
	for _, s := range skills {
		r.AddSkill(s)
	}
}

// Validate enforces the minimal-content rule: a résumé with no name, no email,
// no experience and no education is rejected.
func (r *ResumeData) Validate() error {
	if strings.TrimSpace(r.PersonalInfo.Name) == "" &&
		strings.TrimSpace(r.PersonalInfo.Email) == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 {
		return ErrUnparseable
	}
	return nil
}

// Normalize fills sentinel values, drops empty bullets and deduplicates skills.
func (r *ResumeData) Normalize() {
	for i := range r.Experience {
		exp := &r.Experience[i]
		exp.Company = strings.TrimSpace(exp.Company)
		exp.Title = strings.TrimSpace(exp.Title)
		if exp.Company == "" {
			exp.Company = UnknownValue
		}
		if exp.Title == "" {
			exp.Title = UnknownValue
		}
		bullets := exp.Bullets[:0]
		for _, b := range exp.Bullets {
			b.Text = strings.TrimSpace(b.Text)
			if b.Text != "" {
				bullets = append(bullets, b)
			}
		}
		exp.Bullets = bullets
	}
	for i := range r.Education {
		if strings.TrimSpace(r.Education[i].Institution) == "" {
			r.Education[i].Institution = UnknownValue
		}
	}
	r.DedupSkills()
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
}

// Clone returns a deep copy of the résumé
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}
	out := *r
	if r.Experience != nil {
		out.Experience = make([]ExperienceEntry, len(r.Experience))
		for i, exp := range r.Experience {
			if exp.Bullets != nil {
				exp.Bullets = append([]BulletPoint{}, exp.Bullets...)
			}
			for j := range exp.Bullets {
				exp.Bullets[j].Formatting = cloneMap(exp.Bullets[j].Formatting)
			}
			out.Experience[i] = exp
		}
	}
	if r.Education != nil {
		out.Education = append([]EducationEntry{}, r.Education...)
	}
	if r.Skills != nil {
		out.Skills = append([]string{}, r.Skills...)
	}
	out.Formatting = cloneMap(r.Formatting)
	return &out
}

// SkillsDisplay renders the first n skills, noting how many were left out.
func (r *ResumeData) SkillsDisplay(n int) string {
	if len(r.Skills) <= n {
		return strings.Join(r.Skills, ", ")
	}
	return strings.Join(r.Skills[:n], ", ") + "... (" + strconv.Itoa(len(r.Skills)-n) + " more)"
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = cloneMap(tv)
		case []any:
			cp := make([]any, len(tv))
			copy(cp, tv)
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
