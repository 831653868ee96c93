package suggestions

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// resumeView renders the condensed résumé the model edits. Every bullet is
// tagged with the section id a suggestion must use to address it.
func resumeView(resume *types.ResumeData) string {
	var sb strings.Builder

	if resume.Summary != "" {
		fmt.Fprintf(&sb, "=== SUMMARY === [summary]\n%s\n\n", resume.Summary)
	}

	sb.WriteString("=== EXPERIENCE ===\n")
	for i, exp := range resume.Experience {
		if i >= viewExperiences {
			break
		}
		fmt.Fprintf(&sb, "\n[%d] %s at %s\n", i, exp.Title, exp.Company)
		if exp.StartDate != "" {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			fmt.Fprintf(&sb, "    (%s - %s)\n", exp.StartDate, end)
		}
		for j, b := range exp.Bullets {
			if j >= viewBullets {
				break
			}
			fmt.Fprintf(&sb, "    [%s] %s\n", editing.BulletID(i, j), b.Text)
		}
	}

	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, "\n=== SKILLS === [%s]\n%s\n", editing.SkillsID, strings.Join(head(resume.Skills, viewSkills), ", "))
	}

	if len(resume.Education) > 0 {
		sb.WriteString("\n=== EDUCATION ===\n")
		for i, edu := range resume.Education {
			if i >= viewEducation {
				break
			}
			fmt.Fprintf(&sb, "  • %s - %s\n", edu.Degree, edu.Institution)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// jdView renders the job description for the model. The raw posting is
// preferred because the structured fields lose detail; it is capped at limit.
func jdView(jd *types.JobDescription, limit int) string {
	if raw := strings.TrimSpace(jd.RawText); raw != "" {
		return truncate(raw, limit, "\n[...truncated]")
	}
	return structuredJDView(jd)
}

func structuredJDView(jd *types.JobDescription) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ROLE: %s\n", jd.RoleTitle)
	if jd.Company != "" {
		fmt.Fprintf(&sb, "COMPANY: %s\n", jd.Company)
	}
	if jd.RoleSummary != "" {
		fmt.Fprintf(&sb, "\nROLE SUMMARY: %s\n", jd.RoleSummary)
	}

	bullets := func(heading string, items []string, n int) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", heading)
		for _, item := range head(items, n) {
			fmt.Fprintf(&sb, "  • %s\n", item)
		}
	}
	inline := func(heading string, items []string, n int) {
		if len(items) > 0 {
			fmt.Fprintf(&sb, "\n%s: %s\n", heading, strings.Join(head(items, n), ", "))
		}
	}

	bullets("MUST-HAVE REQUIREMENTS", firstNonEmpty(jd.MustHaveRequirements, jd.Requirements), 10)
	bullets("NICE-TO-HAVE", firstNonEmpty(jd.NiceToHaveRequirements, jd.PreferredQualifications), 8)
	inline("TECHNICAL SKILLS", firstNonEmpty(jd.TechnicalSkills, jd.RequiredSkills), 15)
	inline("SOFT SKILLS", jd.SoftSkills, 10)
	inline("KEY TERMS", firstNonEmpty(jd.KeywordsToInclude, jd.Keywords), 15)
	bullets("RESPONSIBILITIES", jd.Responsibilities, 8)

	return strings.TrimRight(sb.String(), "\n")
}

// fitResumeView is the short résumé digest used for the fit summary
func fitResumeView(resume *types.ResumeData) string {
	var sb strings.Builder
	if resume.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", resume.Summary)
	}
	fmt.Fprintf(&sb, "Experience: %d roles\n", len(resume.Experience))
	for i, exp := range resume.Experience {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "  - %s at %s\n", exp.Title, exp.Company)
	}
	if len(resume.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(head(resume.Skills, 20), ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}

// truncate cuts s to at most n runes and appends suffix when it cut anything
func truncate(s string, n int, suffix string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + suffix
}
