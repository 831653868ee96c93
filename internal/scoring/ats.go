// Package scoring computes ATS-style and semantic fit scores of a résumé
// against a job description.
package scoring

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Component weights of the combined ATS score
const (
	keywordWeight      = 0.4
	skillWeight        = 0.4
	completenessWeight = 0.2

	requiredSkillPoints  = 70.0
	preferredSkillPoints = 30.0

	// maxReportedTerms caps the matched and missing lists in a breakdown
	maxReportedTerms = 20
	// minKeywordLen is the length a requirement word must exceed to count as a keyword
	minKeywordLen = 3
	// minSummaryLen is the summary length above which the summary counts as present
	minSummaryLen = 50
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true, "from": true, "as": true,
	"is": true, "was": true, "are": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "should": true, "could": true, "may": true, "might": true, "must": true, "can": true,
	"this": true, "that": true, "these": true, "those": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true,
}

// wordPunctuation is trimmed from both ends of requirement words
const wordPunctuation = `.,;:!?()[]{}"'`

// Score computes the full breakdown, including the combined ATS score
func Score(resume *types.ResumeData, jd *types.JobDescription) types.ScoreBreakdown {
	keyword, matchedKW, missingKW := KeywordScore(resume, jd)
	skill, matchedSkills, missingSkills := SkillScore(resume, jd)
	completeness, sections := CompletenessScore(resume)

	return types.ScoreBreakdown{
		KeywordScore:        keyword,
		SkillScore:          skill,
		CompletenessScore:   completeness,
		ATSScore:            ATSScore(keyword, skill, completeness),
		MatchedKeywords:     matchedKW,
		MissingKeywords:     missingKW,
		MatchedSkills:       matchedSkills,
		MissingSkills:       missingSkills,
		SectionCompleteness: sections,
	}
}

// ATSScore combines the three component scores
func ATSScore(keyword, skill, completeness float64) float64 {
	return keyword*keywordWeight + skill*skillWeight + completeness*completenessWeight
}

// KeywordScore is the percentage of job description keywords found in the
// résumé text. The keyword set is the explicit keywords plus every word of
// the requirements and responsibilities longer than three characters that is
// not a stop word. An empty keyword set scores 100.
func KeywordScore(resume *types.ResumeData, jd *types.JobDescription) (float64, []string, []string) {
	keywords := jdKeywords(jd)
	if len(keywords) == 0 {
		return 100, []string{}, []string{}
	}

	text := strings.ToLower(ResumeText(resume))
	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0)
	for _, kw := range keywords {
		if keywordMatches(kw, text) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	score := float64(len(matched)) / float64(len(keywords)) * 100
	return score, capList(matched), capList(missing)
}

// jdKeywords returns the lower-cased keyword set in first-seen order
func jdKeywords(jd *types.JobDescription) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(kw string) {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}

	for _, kw := range jd.Keywords {
		add(strings.ToLower(strings.TrimSpace(kw)))
	}
	for _, line := range append(append([]string{}, jd.Requirements...), jd.Responsibilities...) {
		for _, w := range strings.Fields(strings.ToLower(line)) {
			w = strings.Trim(w, wordPunctuation)
			if len(w) > minKeywordLen && !stopWords[w] {
				add(w)
			}
		}
	}
	return out
}

// keywordMatches reports whether the keyword or one of its suffix variants
// appears in text. Variants are the plural, past tense, gerund and, for words
// ending in "s", the singular.
func keywordMatches(keyword, text string) bool {
	if strings.Contains(text, keyword) {
		return true
	}
	variants := []string{keyword + "s", keyword + "ed", keyword + "ing"}
	if strings.HasSuffix(keyword, "s") {
		variants = append(variants, strings.TrimSuffix(keyword, "s"))
	}
	for _, v := range variants {
		if v != "" && strings.Contains(text, v) {
			return true
		}
	}
	return false
}

// SkillScore weighs required skill matches at up to 70 points and preferred
// ones at up to 30. With no required skills the preferred ratio is scaled to
// 100; with no skills on either side the score is 100. A job description skill
// named verbatim in an experience bullet counts as held.
func SkillScore(resume *types.ResumeData, jd *types.JobDescription) (float64, []string, []string) {
	held := make(map[string]bool, len(resume.Skills))
	for _, s := range resume.Skills {
		held[strings.ToLower(strings.TrimSpace(s))] = true
	}
	required := skillTerms(jd.RequiredSkills)
	preferred := skillTerms(jd.PreferredSkills)

	for _, exp := range resume.Experience {
		for _, b := range exp.Bullets {
			bullet := strings.ToLower(b.Text)
			for _, list := range [][]skillTerm{required, preferred} {
				for _, t := range list {
					if strings.Contains(bullet, t.key) {
						held[t.key] = true
					}
				}
			}
		}
	}

	matched := make([]string, 0)
	missing := make([]string, 0)
	matchedRequired, matchedPreferred := 0, 0
	for _, t := range required {
		if held[t.key] {
			matched = append(matched, t.name)
			matchedRequired++
		} else {
			missing = append(missing, t.name)
		}
	}
	for _, t := range preferred {
		if held[t.key] {
			matched = append(matched, t.name)
			matchedPreferred++
		}
	}

	var score float64
	switch {
	case len(required) == 0 && len(preferred) == 0:
		score = 100
	case len(required) == 0:
		score = float64(matchedPreferred) / float64(len(preferred)) * 100
	default:
		score = float64(matchedRequired) / float64(len(required)) * requiredSkillPoints
		if len(preferred) > 0 {
			score += float64(matchedPreferred) / float64(len(preferred)) * preferredSkillPoints
		}
	}
	return score, capList(matched), capList(missing)
}

// CompletenessScore is the percentage of six section checks the résumé passes
func CompletenessScore(resume *types.ResumeData) (float64, map[string]bool) {
	detailed := false
	for _, exp := range resume.Experience {
		if len(exp.Bullets) >= 2 {
			detailed = true
			break
		}
	}

	sections := map[string]bool{
		"personal_info":       resume.PersonalInfo.Name != "" && resume.PersonalInfo.Email != "",
		"summary":             len(resume.Summary) > minSummaryLen,
		"experience":          len(resume.Experience) > 0,
		"education":           len(resume.Education) > 0,
		"skills":              len(resume.Skills) > 0,
		"experience_detailed": detailed,
	}

	passed := 0
	for _, ok := range sections {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(sections)) * 100, sections
}

// ResumeText joins every résumé field the keyword score searches
func ResumeText(resume *types.ResumeData) string {
	var parts []string
	if resume.Summary != "" {
		parts = append(parts, resume.Summary)
	}
	for _, exp := range resume.Experience {
		parts = append(parts, exp.Title+" "+exp.Company)
		for _, b := range exp.Bullets {
			parts = append(parts, b.Text)
		}
	}
	for _, edu := range resume.Education {
		parts = append(parts, edu.Degree+" "+edu.Institution)
	}
	parts = append(parts, resume.Skills...)
	return strings.Join(parts, " ")
}

// skillTerm is a JD skill as written plus its case-folded match key
type skillTerm struct {
	key  string
	name string
}

// skillTerms deduplicates case-insensitively, keeping the first spelling seen
func skillTerms(in []string) []skillTerm {
	seen := make(map[string]bool, len(in))
	out := make([]skillTerm, 0, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s)
		key := strings.ToLower(name)
		if key != "" && !seen[key] {
			seen[key] = true
			out = append(out, skillTerm{key: key, name: name})
		}
	}
	return out
}

func capList(in []string) []string {
	if len(in) > maxReportedTerms {
		return in[:maxReportedTerms]
	}
	return in
}
