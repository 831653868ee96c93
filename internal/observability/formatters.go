// Package observability provides logging, metrics and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to n runes, marking the cut with an ellipsis
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList renders up to limit items with a trailing "... and N more" line
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of the extracted résumé.
func (p *Printer) PrintResume(resume *types.ResumeData) {
	if resume == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", resume.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", resume.PersonalInfo.Email))
	if resume.PersonalInfo.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", resume.PersonalInfo.Location))
	}
	sb.WriteString("\n")

	if len(resume.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(resume.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s (%d bullets)\n", exp.Title, exp.Company, len(exp.Bullets)))
		}
		if len(resume.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	var schools []string
	for _, edu := range resume.Education {
		schools = append(schools, fmt.Sprintf("%s, %s", edu.Degree, edu.Institution))
	}
	writeList(&sb, "Education", schools, 3)

	if len(resume.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(resume.Skills), resume.SkillsDisplay(8)))
	}

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDescription outputs a human-readable summary of the parsed job description.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", jd.RoleTitle))
	if jd.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:    %s\n", jd.ExperienceLevel))
	}
	sb.WriteString("\n")

	writeList(&sb, "Must-have", jd.MustHaveRequirements, maxItemsToShow)
	writeList(&sb, "Nice-to-have", jd.NiceToHaveRequirements, 3)
	writeList(&sb, "Required skills", jd.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred skills", jd.PreferredSkills, 3)

	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScore outputs the ATS score breakdown.
func (p *Printer) PrintScore(score *types.ScoreBreakdown) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS score:     %5.1f / 100\n", score.ATSScore))
	sb.WriteString(fmt.Sprintf("  Keywords:    %5.1f\n", score.KeywordScore))
	sb.WriteString(fmt.Sprintf("  Skills:      %5.1f\n", score.SkillScore))
	sb.WriteString(fmt.Sprintf("  Complete:    %5.1f\n", score.CompletenessScore))
	sb.WriteString("\n")

	writeList(&sb, "Missing skills", score.MissingSkills, maxItemsToShow)
	writeList(&sb, "Missing keywords", score.MissingKeywords, maxItemsToShow)

	if len(score.SectionCompleteness) > 0 {
		keys := make([]string, 0, len(score.SectionCompleteness))
		for k := range score.SectionCompleteness {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("Sections:\n")
		for _, k := range keys {
			mark := "✗"
			if score.SectionCompleteness[k] {
				mark = "✓"
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, k))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSemanticFit outputs the embedding-based fit and per-section matches.
func (p *Printer) PrintSemanticFit(fit *types.SemanticFit) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fit: %s (%.2f)\n\n", fit.Level, fit.Score))

	keys := make([]string, 0, len(fit.Sections))
	for k := range fit.Sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m := fit.Sections[k]
		sb.WriteString(fmt.Sprintf("%-16s %.2f → %s\n", k, m.Score, m.MatchedWith))
	}

	p.printBox("SEMANTIC FIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the top suggestions with their section and priority.
func (p *Printer) PrintSuggestions(set *types.SuggestionSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	if set.Summary != "" {
		sb.WriteString(set.Summary + "\n\n")
	}
	if len(set.Suggestions) == 0 {
		sb.WriteString("No suggestions.")
	}

	count := min(len(set.Suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := set.Suggestions[i]
		sb.WriteString(fmt.Sprintf("#%d [%s] %s (+%.1f)\n", i+1, s.Priority, s.SectionID, s.ExpectedScoreDelta))
		sb.WriteString(fmt.Sprintf("    → %s\n", s.SuggestedText))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(set.Suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(set.Suggestions)-maxItemsToShow))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitSummary outputs the narrative fit summary.
func (p *Printer) PrintFitSummary(summary *types.FitSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(summary.Summary + "\n\n")
	writeList(&sb, "Strengths", summary.TopStrengths, maxItemsToShow)
	writeList(&sb, "Gaps", summary.KeyGaps, maxItemsToShow)
	writeList(&sb, "Recommendations", summary.Recommendations, maxItemsToShow)

	p.printBox("FIT SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintIssues lists extraction diagnostics, or nothing when there are none.
func (p *Printer) PrintIssues(issues types.Issues) {
	if len(issues) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d extraction notes:\n\n", len(issues)))
	for _, s := range issues.Strings() {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", s))
	}
	p.printBox("EXTRACTION NOTES", strings.TrimSuffix(sb.String(), "\n"))
}
