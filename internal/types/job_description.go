package types

import "strings"

// DefaultRoleTitle is used when no title could be inferred from the posting
const DefaultRoleTitle = "Job Position"

// JobDescription represents a structured job posting.
//
// The match-focused fields (MustHaveRequirements, TechnicalSkills, ...) are what
// model-assisted extraction produces. The scoring fields (Requirements,
// RequiredSkills, ...) are what the rule-based extractor produces and what the
// scorer reads. Normalize keeps the two views in sync.
type JobDescription struct {
	RoleTitle              string   `json:"role_title"`
	RoleSummary            string   `json:"role_summary,omitempty"`
	Company                string   `json:"company,omitempty"`
	Location               string   `json:"location,omitempty"`
	ExperienceLevel        string   `json:"experience_level,omitempty"`
	TeamScope              string   `json:"team_scope,omitempty"`
	IndustryDomain         string   `json:"industry_domain,omitempty"`
	MustHaveRequirements   []string `json:"must_have_requirements"`
	NiceToHaveRequirements []string `json:"nice_to_have_requirements"`
	TechnicalSkills        []string `json:"technical_skills"`
	SoftSkills             []string `json:"soft_skills"`
	KeywordsToInclude      []string `json:"keywords_to_include"`
	Responsibilities       []string `json:"responsibilities"`

	Requirements            []string `json:"requirements"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	Keywords                []string `json:"keywords"`

	RawText string `json:"raw_text"`
}

// Normalize fills empty fields of either view from the other one, applies the
// title fallback and replaces nil slices with empty ones.
func (jd *JobDescription) Normalize() {
	jd.RoleTitle = strings.TrimSpace(jd.RoleTitle)
	if jd.RoleTitle == "" {
		jd.RoleTitle = DefaultRoleTitle
	}

	syncList(&jd.Requirements, &jd.MustHaveRequirements)
	syncList(&jd.PreferredQualifications, &jd.NiceToHaveRequirements)
	syncList(&jd.RequiredSkills, &jd.TechnicalSkills)
	syncList(&jd.PreferredSkills, &jd.SoftSkills)
	syncList(&jd.Keywords, &jd.KeywordsToInclude)

	for _, list := range []*[]string{
		&jd.MustHaveRequirements, &jd.NiceToHaveRequirements, &jd.TechnicalSkills,
		&jd.SoftSkills, &jd.KeywordsToInclude, &jd.Responsibilities,
		&jd.Requirements, &jd.PreferredQualifications, &jd.RequiredSkills,
		&jd.PreferredSkills, &jd.Keywords,
	} {
		*list = compact(*list)
	}
}

// AllSkills returns required skills followed by preferred skills
func (jd *JobDescription) AllSkills() []string {
	out := make([]string, 0, len(jd.RequiredSkills)+len(jd.PreferredSkills))
	out = append(out, jd.RequiredSkills...)
	return append(out, jd.PreferredSkills...)
}

func syncList(scoring, match *[]string) {
	switch {
	case len(*scoring) == 0 && len(*match) > 0:
		*scoring = append([]string{}, (*match)...)
	case len(*match) == 0 && len(*scoring) > 0:
		*match = append([]string{}, (*scoring)...)
	}
}

// compact trims entries and drops blanks
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
