package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// jdSections lists the header phrases of each job description section.
// "other" headers only close the preceding section.
var jdSections = sectionKeywords{
	"responsibilities": {
		"responsibilities", "key responsibilities", "main responsibilities", "what you will do", "what you'll do",
		"what you'll be doing", "duties", "key duties", "you'll be responsible", "your role", "day to day",
	},
	"requirements": {
		"requirements", "qualifications", "required qualifications", "minimum qualifications", "basic qualifications",
		"must have", "must-have", "required", "minimum requirements", "we require", "you must have", "you need",
		"essential", "mandatory", "what we need", "candidates must", "candidate must", "you should have",
		"what you bring", "who you are",
	},
	"preferred": {
		"preferred", "preferred qualifications", "nice to have", "nice-to-have", "bonus", "bonus points", "pluses",
		"desired", "would be nice",
	},
	"skills": {
		"skills", "technical skills", "required skills", "preferred skills", "competencies", "technologies",
		"technologies we use", "tech stack", "tools", "software",
	},
	"other": {
		"about us", "about the company", "who we are", "benefits", "perks", "what we offer", "compensation",
		"salary", "equal opportunity", "how to apply",
	},
}

var (
	notTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(?:we are|about|welcome|join|looking for|seeking)`),
		regexp.MustCompile(`^(?:the|our|this|a|an)\s+`),
		regexp.MustCompile(`company|corporation|inc\.|llc`),
		regexp.MustCompile(`^http`),
		regexp.MustCompile(`^\d+`),
	}
	titleLabel = regexp.MustCompile(`(?i)(?:position|role|title|job|opening)[:\-]\s*(.+)$`)

	keywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+\+?\s*years?\b`),
		regexp.MustCompile(`\b(bachelor|master|phd|degree)\b`),
		regexp.MustCompile(`\b(remote|hybrid|onsite|full-time|part-time|contract)\b`),
		regexp.MustCompile(`\b(lead|senior|junior|mid-level|entry)\b`),
	}
	capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	levelPattern      = regexp.MustCompile(`(?i)\b(principal|staff|lead|senior|junior|mid-level|entry[- ]level|intern)\b`)
)

var (
	titleKeywords = []string{
		"engineer", "developer", "manager", "analyst", "specialist", "director", "lead", "architect",
		"consultant", "coordinator", "administrator", "executive", "officer", "associate", "assistant",
		"designer", "scientist", "researcher", "programmer", "technician",
	}
	greetingWords   = []string{"we", "welcome", "about", "join"}
	lastResortWords = []string{"we", "welcome", "about", "join", "the", "our"}

	actionVerbs      = []string{"lead", "develop", "manage", "create", "design", "build", "drive", "collaborate", "work", "implement", "deliver", "own", "execute"}
	requirementWords = []string{"experience", "years", "degree", "bachelor", "master", "skill", "knowledge", "ability", "proven", "demonstrated", "required", "must", "proficien", "familiar"}

	preferredIndicators = []string{"preferred", "nice to have", "nice-to-have", "bonus", "plus", "would be nice", "optional", "desired but not required"}
	requiredIndicators  = []string{"required", "must have", "must-have", "essential", "mandatory", "need", "needed", "requirement"}

	keywordStopList = map[string]bool{"The": true, "This": true, "That": true, "With": true, "From": true}
)

// jdRules is the rule-based job description extractor
type jdRules struct {
	opts     Options
	matchers []skillMatcher
}

type skillMatcher struct {
	canonical string
	re        *regexp.Regexp
}

func newJDRules(opts Options) *jdRules {
	r := &jdRules{opts: opts}
	for _, term := range opts.SkillVocabulary {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		r.matchers = append(r.matchers, skillMatcher{
			canonical: canonicalSkill(term),
			re:        regexp.MustCompile(`(?i)(?:^|[^\w])(` + regexp.QuoteMeta(strings.ToLower(term)) + `)(?:$|[^\w+#])`),
		})
	}
	return r
}

// parse builds a job description from text. It never fails; it returns
// whatever structure the heuristics found and notes the gaps.
func (r *jdRules) parse(text string) (*types.JobDescription, types.Issues) {
	var issues types.Issues
	lines := nonEmptyLines(text)
	secs := segment(lines, jdSections)

	jd := &types.JobDescription{RawText: text}
	jd.RoleTitle = inferTitle(lines)
	if jd.RoleTitle == "" {
		issues.Add("role_title", "no title found, using %q", types.DefaultRoleTitle)
	}

	jd.Responsibilities = sectionItems(secs.bodies["responsibilities"])
	jd.Requirements = sectionItems(secs.bodies["requirements"])
	if len(jd.Requirements) == 0 {
		jd.Requirements = keywordBullets(lines, requirementWords)
	}
	jd.PreferredQualifications = sectionItems(secs.bodies["preferred"])

	skillText := text
	if secs.has("skills") {
		skillText = secs.textWithHeader("skills")
	}
	jd.RequiredSkills, jd.PreferredSkills = r.extractSkills(skillText)
	if len(jd.RequiredSkills) == 0 && len(jd.PreferredSkills) == 0 && len(jd.Requirements) > 0 {
		jd.RequiredSkills, jd.PreferredSkills = r.extractSkills(strings.Join(jd.Requirements, " "))
	}

	if len(jd.Responsibilities) < minSectionItems || len(jd.Requirements) < minSectionItems || len(jd.RequiredSkills) < minSectionItems {
		r.aggressiveFallback(jd, lines, &issues)
	}

	jd.Keywords = extractKeywords(text)
	if m := levelPattern.FindString(jd.RoleTitle); m != "" {
		jd.ExperienceLevel = strings.ToLower(m)
	} else if m := levelPattern.FindString(text); m != "" {
		jd.ExperienceLevel = strings.ToLower(m)
	}
	return jd, issues
}

// aggressiveFallback scans every bullet-like line in the document and fills
// the lists that came out short
func (r *jdRules) aggressiveFallback(jd *types.JobDescription, lines []string, issues *types.Issues) {
	bullets := r.allBullets(lines)
	if len(bullets) == 0 {
		issues.Add("responsibilities", "no bullet points found for fallback extraction")
		return
	}

	var responsibilities, requirements []string
	for _, b := range bullets {
		if classifyBullet(b) == "responsibility" {
			responsibilities = append(responsibilities, b)
		} else {
			requirements = append(requirements, b)
		}
	}

	if len(jd.Responsibilities) < minSectionItems {
		added := excluding(responsibilities, jd.Requirements)
		added = added[:min(len(added), maxFallbackItems)]
		jd.Responsibilities = dedupContained(append(jd.Responsibilities, added...), r.opts.DuplicateThreshold)
		if len(added) > 0 {
			issues.Add("responsibilities", "filled from %d document bullets", len(added))
		}
	}
	if len(jd.Requirements) < minSectionItems {
		added := excluding(requirements, jd.Responsibilities)
		added = added[:min(len(added), maxFallbackItems)]
		jd.Requirements = dedupContained(append(jd.Requirements, added...), r.opts.DuplicateThreshold)
		if len(added) > 0 {
			issues.Add("requirements", "filled from %d document bullets", len(added))
		}
	}
	if len(jd.RequiredSkills) < minSectionItems {
		req, pref := r.extractSkills(strings.Join(bullets, "\n"))
		jd.RequiredSkills = appendUnique(jd.RequiredSkills, req...)
		jd.PreferredSkills = appendUnique(jd.PreferredSkills, excluding(pref, jd.RequiredSkills)...)
	}
}

// classifyBullet sorts a bullet into responsibility or requirement. A bullet
// that opens with an action verb is a duty; otherwise requirement wording wins,
// then any action verb; anything else defaults to a requirement.
func classifyBullet(b string) string {
	lower := strings.ToLower(b)
	first := strings.Fields(lower)[0]
	for _, v := range actionVerbs {
		if strings.HasPrefix(first, v) {
			return "responsibility"
		}
	}
	if containsAny(lower, requirementWords) {
		return "requirement"
	}
	if containsAny(lower, actionVerbs) {
		return "responsibility"
	}
	return "requirement"
}

// allBullets collects every bulleted line of at least 30 characters that reads
// as a sentence, deduplicated by containment
func (r *jdRules) allBullets(lines []string) []string {
	var items []string
	for _, line := range lines {
		if !isBulletLine(line) {
			continue
		}
		item := cleanItem(line)
		if len(item) <= 30 {
			continue
		}
		if strings.ContainsAny(item[len(item)-1:], ".!?") || len(item) > 50 {
			items = append(items, item)
		}
	}
	items = dedupContained(items, r.opts.DuplicateThreshold)
	return items[:min(len(items), maxBulletScan)]
}

// extractSkills matches the vocabulary against text and splits the hits into
// required and preferred by the wording around the first mention
func (r *jdRules) extractSkills(text string) ([]string, []string) {
	lower := strings.ToLower(text)
	var required, preferred []string

	for _, m := range r.matchers {
		loc := m.re.FindStringSubmatchIndex(lower)
		if loc == nil {
			continue
		}
		start, end := loc[2], loc[3]
		window := lower[max(0, start-r.opts.PreferenceWindow):min(len(lower), end+r.opts.PreferenceWindow)]

		if containsAny(window, preferredIndicators) && !containsAny(window, requiredIndicators) {
			preferred = appendUnique(preferred, m.canonical)
		} else {
			required = appendUnique(required, m.canonical)
		}
	}

	preferred = excluding(preferred, required)
	sort.Strings(required)
	sort.Strings(preferred)
	return required, preferred
}

// sectionItems turns section lines into list items, keeping complete
// sentences, bulleted entries and reasonably long lines
func sectionItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		bulleted := isBulletLine(line)
		item := cleanItem(line)
		if len(item) <= 15 || strings.HasSuffix(item, ":") {
			continue
		}
		if bulleted || strings.ContainsAny(item[len(item)-1:], ".!?") || len(item) > 40 {
			items = append(items, item)
		}
	}
	return items
}

// keywordBullets returns bulleted lines mentioning any of the keywords
func keywordBullets(lines []string, keywords []string) []string {
	var items []string
	for _, line := range lines {
		if !isBulletLine(line) {
			continue
		}
		item := cleanItem(line)
		if len(item) > 15 && containsAny(strings.ToLower(item), keywords) {
			items = append(items, item)
		}
	}
	return items[:min(len(items), 15)]
}

// inferTitle picks the job title from the first lines of the posting, or
// returns "" when nothing qualifies
func inferTitle(lines []string) string {
	for i, line := range lines[:min(len(lines), 10)] {
		lower := strings.ToLower(line)
		if matchesAny(lower, notTitlePatterns) || len(line) > 80 {
			continue
		}
		if m := titleLabel.FindStringSubmatch(line); m != nil {
			if candidate := strings.TrimSpace(m[1]); candidate != "" && len(strings.Fields(candidate)) <= 8 {
				return candidate
			}
		}
		hasTitleWord := containsAny(lower, titleKeywords)
		if isAllUpper(line) && len(line) > 15 && !hasTitleWord {
			continue
		}
		if hasTitleWord && len(strings.Fields(line)) <= 8 {
			return line
		}
		if i == 0 && len(strings.Fields(line)) <= 6 && len(line) < 60 && !hasWord(lower, greetingWords) {
			return line
		}
	}

	for _, line := range lines[:min(len(lines), 15)] {
		if m := titleLabel.FindStringSubmatch(line); m != nil {
			candidate := strings.TrimSpace(m[1])
			if candidate != "" && len(strings.Fields(candidate)) <= 8 && len(candidate) < 80 {
				return candidate
			}
		}
	}

	for _, line := range lines[:min(len(lines), 5)] {
		lower := strings.ToLower(line)
		words := len(strings.Fields(line))
		if words <= 6 && len(line) < 60 && !hasWord(lower, lastResortWords) &&
			(containsAny(lower, titleKeywords) || words <= 3) {
			return line
		}
	}
	return ""
}

// extractKeywords collects experience, degree, work-type and level terms plus
// capitalized phrases, in order of first appearance
func extractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var keywords []string
	seen := map[string]bool{}
	add := func(k string) {
		if k != "" && !seen[k] && len(keywords) < maxKeywords {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}

	for _, re := range keywordPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if len(m) > 1 && m[1] != "" {
				add(m[1])
			} else {
				add(m[0])
			}
		}
	}
	for _, phrase := range capitalizedPhrase.FindAllString(text, -1) {
		if len(phrase) > 3 && !keywordStopList[phrase] {
			add(phrase)
		}
	}
	return keywords
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// hasWord reports whether any of the words appears as a whole word in s
func hasWord(s string, words []string) bool {
	for _, f := range strings.Fields(s) {
		f = strings.Trim(f, ",.:;!?")
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

func hasFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// excluding returns items not present in other (case-insensitive)
func excluding(items, other []string) []string {
	var out []string
	for _, item := range items {
		if !hasFold(other, item) {
			out = append(out, item)
		}
	}
	return out
}
