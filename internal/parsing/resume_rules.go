package parsing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// resumeSections lists the header phrases of each résumé section
var resumeSections = sectionKeywords{
	"experience":     {"experience", "work experience", "employment", "employment history", "professional experience", "work history"},
	"education":      {"education", "academic", "qualifications", "degrees"},
	"skills":         {"skills", "technical skills", "competencies", "expertise", "proficiencies", "core competencies"},
	"summary":        {"summary", "professional summary", "profile", "objective", "about"},
	"certifications": {"certifications", "certificates", "licenses", "credentials", "professional certifications"},
	"other":          {"projects", "awards", "honors", "publications", "volunteer", "interests", "languages", "references", "activities"},
}

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\+?1?[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
}

var linkedInPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`),
	regexp.MustCompile(`(?i)linkedin\.com/[\w-]+`),
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2}(?:\s+\d{5})?`),
	regexp.MustCompile(`[A-Z][a-z]+,\s*[A-Z][a-z]+`),
}

var (
	namePattern = regexp.MustCompile(`^[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)+$`)

	monthYear      = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`)
	titleMonthYear = regexp.MustCompile(`\|\s*\w+\s+\d{4}\s*[-–]`)
	yearRange      = regexp.MustCompile(`(?i)\d{4}\s*[-–]\s*(?:\d{4}|Present|Current)`)
	dateRange      = regexp.MustCompile(`(?i)(\w+\s+\d{4}|\d{4})\s*[-–]\s*(\w+\s+\d{4}|\d{4}|present|current)`)
	pipeWithYear   = regexp.MustCompile(`\|.*\d{4}`)
	expBullet      = regexp.MustCompile(`^[•\-\*]\s*`)

	graduationDate  = regexp.MustCompile(`(?i)(Expected\s+\d{4}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}|\d{4})`)
	institutionJunk = regexp.MustCompile(`(?i)\d{4}|Expected|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`)

	certificationLine = regexp.MustCompile(`(?i)\b(?:certified|certification|certificate|PMP|AWS\s+Certified|Google\s+Certified|Scrum\s+Master|Professional|License)\b`)
	certificationItem = regexp.MustCompile(`(?i)\b(?:certified|certification|certificate|PMP|license)\b`)
	certPrefix        = regexp.MustCompile(`(?i)^Certifications?:?\s*`)
	sectionStopLine   = regexp.MustCompile(`(?i)^(?:EDUCATION|SKILLS|EXPERIENCE)`)
)

var (
	institutionalWords = []string{"university", "college", "inc", "llc", "corp"}
	degreeKeywords     = []string{"Master", "Bachelor", "PhD", "Doctor", "MBA", "MS", "BS", "BA", "Associate", "Diploma", "Certificate", "Program"}
	institutionWords   = []string{"University", "College", "Institute", "Academy", "School"}
	skillLineExcludes  = []string{"University", "College", "Master", "Bachelor", "Expected", "Degree"}
)

// parseResumeRules builds a résumé from text with section keywords and
// regular expressions. It never fails; shortfalls are reported as issues.
func parseResumeRules(text string) (*types.ResumeData, types.Issues) {
	var issues types.Issues
	lines := nonEmptyLines(text)
	secs := segment(lines, resumeSections)

	resume := &types.ResumeData{
		PersonalInfo: extractPersonalInfo(lines[:min(len(lines), headerLines)]),
	}

	if secs.has("summary") {
		summary := strings.Join(secs.bodies["summary"], " ")
		if len(summary) < maxSummaryChars {
			resume.Summary = summary
		} else {
			issues.Add("summary", "dropped: %d characters is longer than a summary", len(summary))
		}
	}

	if secs.has("experience") {
		resume.Experience = extractExperience(secs.bodies["experience"], &issues)
	} else {
		issues.Add("experience", "no experience section found")
	}

	if secs.has("education") {
		resume.Education = extractEducation(secs.bodies["education"])
	} else {
		issues.Add("education", "no education section found")
	}

	if secs.has("skills") {
		for _, skill := range extractSkills(secs.bodies["skills"]) {
			resume.AddSkill(skill)
		}
	} else {
		issues.Add("skills", "no skills section found")
	}
	for _, cert := range extractCertifications(secs.bodies["certifications"]) {
		resume.AddSkill(cert)
	}

	if resume.PersonalInfo.Name == "" {
		issues.Add("personal_info.name", "no name found in the first line")
	}
	if resume.PersonalInfo.Email == "" {
		issues.Add("personal_info.email", "no email address found")
	}
	return resume, issues
}

func extractPersonalInfo(lines []string) types.PersonalInfo {
	var info types.PersonalInfo
	header := strings.Join(lines, " ")

	info.Email = emailPattern.FindString(header)
	for _, re := range phonePatterns {
		if m := re.FindString(header); m != "" {
			info.Phone = strings.TrimSpace(m)
			break
		}
	}
	for _, re := range linkedInPatterns {
		if m := re.FindString(header); m != "" {
			info.LinkedIn = m
			break
		}
	}
	for _, re := range locationPatterns {
		matches := re.FindAllString(header, -1)
		if len(matches) == 0 {
			continue
		}
		for _, loc := range matches {
			if !containsAny(strings.ToLower(loc), institutionalWords) {
				info.Location = loc
				break
			}
		}
		break
	}

	if len(lines) > 0 {
		candidate := strings.TrimSpace(lines[0])
		if len(strings.Fields(candidate)) <= 4 && !strings.Contains(candidate, "@") &&
			!strings.Contains(strings.ToLower(candidate), "linkedin") &&
			(namePattern.MatchString(candidate) || isAllUpper(candidate)) {
			info.Name = candidate
		}
	}
	return info
}

func isExperienceHeader(line string) bool {
	return monthYear.MatchString(line) || titleMonthYear.MatchString(line) || yearRange.MatchString(line)
}

func isExperienceBullet(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

func extractExperience(lines []string, issues *types.Issues) []types.ExperienceEntry {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if isExperienceHeader(line) && !isExperienceBullet(line) && len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	var entries []types.ExperienceEntry
	for _, block := range blocks {
		entry := buildExperienceEntry(block)
		if len(entry.Bullets) == 0 {
			issues.Add("experience", "dropped entry %q: no bullet points", block[0])
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func buildExperienceEntry(block []string) types.ExperienceEntry {
	first := block[0]
	company, title := first, first
	if len(block) > 1 && !isExperienceBullet(block[1]) {
		if pipeWithYear.MatchString(first) {
			company = strings.TrimSpace(first[:strings.Index(first, "|")])
			title = block[1]
		} else {
			title = first
			company = block[1]
		}
	}

	entry := types.ExperienceEntry{
		Company: cleanHeaderField(company),
		Title:   cleanHeaderField(title),
	}
	if m := dateRange.FindStringSubmatch(strings.Join(block, "\n")); m != nil {
		entry.StartDate = m[1]
		entry.EndDate = m[2]
	}

	for _, line := range block {
		if !expBullet.MatchString(line) {
			continue
		}
		text := strings.TrimSpace(expBullet.ReplaceAllString(line, ""))
		if len(text) > 5 {
			entry.Bullets = append(entry.Bullets, types.BulletPoint{Text: text})
		}
	}
	return entry
}

// cleanHeaderField removes a date range and separators left around it
func cleanHeaderField(s string) string {
	cleaned := dateRange.ReplaceAllString(s, "")
	cleaned = strings.Trim(cleaned, " |,-–")
	if cleaned == "" {
		return types.UnknownValue
	}
	return cleaned
}

func extractEducation(lines []string) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, raw := range lines {
		line := stripBullet(raw)
		if len(line) < 5 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "skills") || strings.HasPrefix(lower, "technical") || strings.HasPrefix(lower, "certification") {
			continue
		}
		if !containsAnyFold(lower, degreeKeywords) {
			continue
		}

		entry := types.EducationEntry{}
		if m := graduationDate.FindStringSubmatch(line); m != nil {
			entry.GraduationDate = m[1]
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		entry.Degree = parts[0]
		for _, part := range parts {
			if containsAny(part, institutionWords) {
				entry.Institution = part
				break
			}
		}
		if entry.Institution == "" && len(parts) > 1 {
			inst := parts[len(parts)-1]
			if entry.GraduationDate != "" && len(parts) > 2 {
				inst = parts[len(parts)-2]
			}
			entry.Institution = strings.Trim(strings.TrimSpace(institutionJunk.ReplaceAllString(inst, "")), ",")
		}
		if entry.Institution == "" {
			entry.Institution = types.UnknownValue
		}
		if degree, field, ok := strings.Cut(entry.Degree, " in "); ok {
			entry.Degree = strings.TrimSpace(degree)
			entry.Field = strings.TrimSpace(field)
		}
		entries = append(entries, entry)
	}
	return entries
}

func extractSkills(lines []string) []string {
	var skills []string
	for _, raw := range lines {
		if containsAny(raw, skillLineExcludes) || certificationLine.MatchString(raw) {
			continue
		}
		line := stripBullet(raw)
		if strings.HasPrefix(line, "&") || strings.EqualFold(line, "certifications") {
			continue
		}
		// "Languages: Go, Python" keeps only the list
		if label, rest, ok := strings.Cut(line, ":"); ok && len(strings.Fields(label)) <= 3 && strings.TrimSpace(rest) != "" {
			line = rest
		}

		for _, item := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' }) {
			skill := strings.TrimSpace(certPrefix.ReplaceAllString(strings.TrimSpace(item), ""))
			if certificationItem.MatchString(skill) {
				continue
			}
			if len(skill) > 1 && len(skill) < 50 && !containsAny(skill, skillLineExcludes) {
				skills = append(skills, skill)
			}
		}
	}
	return skills
}

func extractCertifications(lines []string) []string {
	var certs []string
	for _, raw := range lines {
		line := stripBullet(raw)
		if sectionStopLine.MatchString(line) {
			break
		}
		if len(line) > 3 && len(line) < 150 {
			certs = append(certs, line)
		}
	}
	return certs
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func containsAnyFold(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func isAllUpper(s string) bool {
	return strings.ToUpper(s) == s && strings.ToLower(s) != s
}

// describeResume summarizes what the rules found, for logs
func describeResume(r *types.ResumeData) string {
	return fmt.Sprintf("%d experience, %d education, %d skills", len(r.Experience), len(r.Education), len(r.Skills))
}
