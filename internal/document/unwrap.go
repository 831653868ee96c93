package document

import (
	"regexp"
	"strings"
)

// Lines matching any of these start a new logical unit when unwrapping
var unitStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s`),
	regexp.MustCompile(`^[A-Z][A-Z\s&]+$`),
	regexp.MustCompile(`^[A-Z][A-Za-z\s]+,\s*[A-Z]`),
	regexp.MustCompile(`\|\s*\w+\s+\d{4}`),
	regexp.MustCompile(`(?i)\d{4}\s*[-–]\s*(?:\d{4}|present|current)`),
	regexp.MustCompile(`(?i)^(?:(?:WORK\s+)?EXPERIENCE|EDUCATION|SKILLS|SUMMARY|CERTIFICATIONS|TECHNICAL)`),
	regexp.MustCompile(`(?i)^(?:Senior\s+|Lead\s+|Staff\s+|Principal\s+)?(?:Product|Project|Program|Engineering|Software|Data|Technical)\s+(?:Manager|Director|Engineer|Analyst|Lead)`),
}

func startsUnit(line string) bool {
	if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return true
	}
	for _, re := range unitStartPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isBulletUnit(unit string) bool {
	return strings.HasPrefix(unit, "•") || strings.HasPrefix(unit, "- ")
}

// UnwrapLines rejoins logical paragraphs that a paginated source broke across
// physical lines. A blank line always closes the current unit; a bullet keeps
// absorbing continuation lines until the next unit starts.
func UnwrapLines(text string) string {
	var units []string
	var current string

	flush := func() {
		if current != "" {
			units = append(units, current)
			current = ""
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flush()
		case startsUnit(line):
			flush()
			current = line
		case current == "":
			current = line
		case isBulletUnit(current) || !strings.HasSuffix(current, ".") && !strings.HasSuffix(current, ":") &&
			!strings.HasSuffix(current, "!") && !strings.HasSuffix(current, "?"):
			current += " " + line
		default:
			flush()
			current = line
		}
	}
	flush()

	return strings.Join(units, "\n")
}
