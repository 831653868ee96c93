package parsing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

const promptFile = "parsing.json"

// skillLabel matches a "Languages:" style prefix the model sometimes keeps
var skillLabel = regexp.MustCompile(`^[A-Za-z][A-Za-z &/]{0,40}:\s*`)

type modelResume struct {
	PersonalInfo struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
		LinkedIn string `json:"linkedin"`
	} `json:"personal_info"`
	Summary    string `json:"summary"`
	Experience []struct {
		Company   string `json:"company"`
		Title     string `json:"title"`
		Location  string `json:"location"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Bullets   []any  `json:"bullets"`
	} `json:"experience"`
	Education []struct {
		Institution    string `json:"institution"`
		Degree         string `json:"degree"`
		Field          string `json:"field"`
		Location       string `json:"location"`
		GraduationDate string `json:"graduation_date"`
	} `json:"education"`
	Skills []string `json:"skills"`
}

type modelJD struct {
	RoleTitle              string   `json:"role_title"`
	RoleSummary            string   `json:"role_summary"`
	Company                string   `json:"company"`
	Location               string   `json:"location"`
	ExperienceLevel        string   `json:"experience_level"`
	TeamScope              string   `json:"team_scope"`
	IndustryDomain         string   `json:"industry_domain"`
	MustHaveRequirements   []string `json:"must_have_requirements"`
	NiceToHaveRequirements []string `json:"nice_to_have_requirements"`
	TechnicalSkills        []string `json:"technical_skills"`
	SoftSkills             []string `json:"soft_skills"`
	KeywordsToInclude      []string `json:"keywords_to_include"`
	Responsibilities       []string `json:"responsibilities"`
}

// extractResumeWithModel asks the model for a structured résumé. Type
// mismatches in the reply are coerced and reported as issues; only a failed
// call or a reply with no JSON object is an error.
func extractResumeWithModel(ctx context.Context, gen llm.Generator, text string) (*types.ResumeData, types.Issues, error) {
	system, err := prompts.Get(promptFile, "extract-resume-system")
	if err != nil {
		return nil, nil, err
	}

	reply, err := gen.Generate(ctx, llm.BuildExtractionMessages(llm.ResumeSchema(system), text), llm.TierStandard, true)
	if err != nil {
		return nil, nil, err
	}

	var raw modelResume
	issues, err := llm.DecodeLenient(reply, &raw)
	if err != nil {
		return nil, nil, &ParseError{Message: "resume reply", Cause: err}
	}

	resume := &types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			Name:     strings.TrimSpace(raw.PersonalInfo.Name),
			Email:    strings.TrimSpace(raw.PersonalInfo.Email),
			Phone:    strings.TrimSpace(raw.PersonalInfo.Phone),
			Location: strings.TrimSpace(raw.PersonalInfo.Location),
			LinkedIn: strings.TrimSpace(raw.PersonalInfo.LinkedIn),
		},
		Summary: strings.TrimSpace(raw.Summary),
	}

	for i, exp := range raw.Experience {
		entry := types.ExperienceEntry{
			Company:   exp.Company,
			Title:     exp.Title,
			Location:  exp.Location,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
		}
		for _, b := range exp.Bullets {
			if text := bulletText(b); text != "" {
				entry.Bullets = append(entry.Bullets, types.BulletPoint{Text: text})
			}
		}
		if len(entry.Bullets) == 0 {
			issues.Add(fmt.Sprintf("experience[%d]", i), "dropped %q: no bullet points", exp.Title)
			continue
		}
		resume.Experience = append(resume.Experience, entry)
	}

	for _, edu := range raw.Education {
		if strings.TrimSpace(edu.Institution) == "" && strings.TrimSpace(edu.Degree) == "" {
			continue
		}
		resume.Education = append(resume.Education, types.EducationEntry{
			Institution:    edu.Institution,
			Degree:         edu.Degree,
			Field:          edu.Field,
			Location:       edu.Location,
			GraduationDate: edu.GraduationDate,
		})
	}

	for _, s := range raw.Skills {
		for _, skill := range splitSkillEntry(s) {
			resume.AddSkill(skill)
		}
	}
	return resume, issues, nil
}

// bulletText accepts a plain string or an object carrying a "text" field
func bulletText(v any) string {
	switch b := v.(type) {
	case string:
		return strings.TrimSpace(b)
	case map[string]any:
		if s, ok := b["text"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// splitSkillEntry breaks "Languages: Go, Python" into individual skills
func splitSkillEntry(s string) []string {
	s = skillLabel.ReplaceAllString(strings.TrimSpace(s), "")
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// extractJDWithModel asks the model for a structured job description. The
// input is capped at maxChars.
func extractJDWithModel(ctx context.Context, gen llm.Generator, text string, maxChars int) (*types.JobDescription, types.Issues, error) {
	system, err := prompts.Get(promptFile, "extract-job-description-system")
	if err != nil {
		return nil, nil, err
	}
	rules, err := prompts.Get(promptFile, "job-description-rules")
	if err != nil {
		return nil, nil, err
	}

	schema := llm.JobDescriptionSchema(system)
	schema.Rules = append(schema.Rules, strings.Split(rules, "\n")...)

	var issues types.Issues
	input := text
	if len(input) > maxChars {
		input = truncateUTF8(input, maxChars)
		issues.Add("raw_text", "truncated to %d characters for extraction", maxChars)
	}

	reply, err := gen.Generate(ctx, llm.BuildExtractionMessages(schema, input), llm.TierStandard, true)
	if err != nil {
		return nil, nil, err
	}

	var raw modelJD
	decodeIssues, err := llm.DecodeLenient(reply, &raw)
	if err != nil {
		return nil, nil, &ParseError{Message: "job description reply", Cause: err}
	}
	issues = append(issues, decodeIssues...)

	return &types.JobDescription{
		RoleTitle:              raw.RoleTitle,
		RoleSummary:            raw.RoleSummary,
		Company:                raw.Company,
		Location:               raw.Location,
		ExperienceLevel:        raw.ExperienceLevel,
		TeamScope:              raw.TeamScope,
		IndustryDomain:         raw.IndustryDomain,
		MustHaveRequirements:   raw.MustHaveRequirements,
		NiceToHaveRequirements: raw.NiceToHaveRequirements,
		TechnicalSkills:        NormalizeSkills(raw.TechnicalSkills),
		SoftSkills:             raw.SoftSkills,
		KeywordsToInclude:      raw.KeywordsToInclude,
		Responsibilities:       raw.Responsibilities,
	}, issues, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a UTF-8 sequence
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// modelUnavailable logs a model failure and records it as an issue so the
// caller can fall back to the rules
func modelUnavailable(logger *zap.Logger, kind string, err error, issues *types.Issues) {
	logger.Warn("model extraction failed, falling back to rules",
		zap.String("kind", kind),
		zap.Error(err))
	issues.Add("llm", "model extraction unavailable: %v", err)
}
