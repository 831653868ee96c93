package parsing

import (
	"regexp"
	"strings"
	"unicode"
)

// maxHeaderWords bounds how long a section header line may be
const maxHeaderWords = 6

var (
	bulletMarker   = regexp.MustCompile(`^(?:[•\-\*●▪▫]\s*|\d+[\.\)]\s+)`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
	trailingEllips = regexp.MustCompile(`\.\.\.+$`)
)

// sectionKeywords maps a section kind to the header phrases that open it
type sectionKeywords map[string][]string

// sections is a document split at recognized headers
type sections struct {
	preamble []string
	headers  map[string]string
	bodies   map[string][]string
}

func (s sections) has(kind string) bool {
	_, ok := s.bodies[kind]
	return ok
}

// text returns the body of a section joined by newlines
func (s sections) text(kind string) string {
	return strings.Join(s.bodies[kind], "\n")
}

// textWithHeader prefixes the body with its header line so that wording such
// as "Preferred skills" stays visible to context checks
func (s sections) textWithHeader(kind string) string {
	if h := s.headers[kind]; h != "" {
		return h + "\n" + s.text(kind)
	}
	return s.text(kind)
}

// nonEmptyLines splits text into trimmed, non-blank lines
func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isBulletLine(line string) bool {
	return bulletMarker.MatchString(line)
}

func stripBullet(line string) string {
	return strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
}

// cleanItem strips markers, collapses whitespace and drops trailing ellipses
func cleanItem(line string) string {
	item := stripBullet(line)
	item = whitespaceRun.ReplaceAllString(item, " ")
	return strings.TrimSpace(trailingEllips.ReplaceAllString(item, ""))
}

// segment splits lines into sections. A line opens a section when it starts
// with one of the keywords (case-insensitive), is short, and is either an exact
// keyword, followed by a colon, or written in heading case. Text after a colon
// on a header line becomes the first body line. A section runs to the next
// recognized header; repeated headers of the same kind append to one body.
func segment(lines []string, keywords sectionKeywords) sections {
	s := sections{headers: map[string]string{}, bodies: map[string][]string{}}
	current := ""
	for _, line := range lines {
		if kind, rest, ok := matchHeader(line, keywords); ok {
			current = kind
			if _, seen := s.headers[kind]; !seen {
				s.headers[kind] = line
			}
			if _, exists := s.bodies[kind]; !exists {
				s.bodies[kind] = []string{}
			}
			if rest != "" {
				s.bodies[kind] = append(s.bodies[kind], rest)
			}
			continue
		}
		if current == "" {
			s.preamble = append(s.preamble, line)
			continue
		}
		s.bodies[current] = append(s.bodies[current], line)
	}
	return s
}

func matchHeader(line string, keywords sectionKeywords) (string, string, bool) {
	if isBulletLine(line) {
		return "", "", false
	}

	head, rest, hasColon := strings.Cut(line, ":")
	head = strings.TrimSpace(head)
	rest = strings.TrimSpace(rest)
	if len(strings.Fields(head)) > maxHeaderWords {
		return "", "", false
	}
	lower := strings.ToLower(strings.TrimRight(head, " .-–"))

	bestKind, bestLen := "", 0
	for kind, phrases := range keywords {
		for _, phrase := range phrases {
			if (lower == phrase || strings.HasPrefix(lower, phrase+" ")) && len(phrase) > bestLen {
				bestKind, bestLen = kind, len(phrase)
			}
		}
	}
	// "Languages: Go, Python" is a list line, not the start of another section
	if bestKind == "" || (bestKind == "other" && rest != "") {
		return "", "", false
	}
	if len(lower) == bestLen || hasColon || isHeadingCase(head) {
		return bestKind, rest, true
	}
	return "", "", false
}

// headingSmallWords may stay lower-case inside a heading
var headingSmallWords = map[string]bool{
	"and": true, "of": true, "the": true, "to": true, "a": true, "an": true, "in": true,
	"for": true, "with": true, "we": true, "you": true, "you'll": true, "will": true, "do": true, "&": true,
}

// isHeadingCase reports whether every word starts with an upper-case letter or
// a non-letter, as in "Key Responsibilities" or "TECHNICAL SKILLS"
func isHeadingCase(s string) bool {
	for i, w := range strings.Fields(s) {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) && (i == 0 || !headingSmallWords[w]) {
			return false
		}
	}
	return true
}

// containsRatio reports whether one string contains the other and the shorter
// is at least threshold of the longer's length
func containsRatio(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return float64(shorter)/float64(longer) >= threshold
}

// dedupContained drops items that are near-duplicates of an earlier item,
// comparing case-folded text with containsRatio
func dedupContained(items []string, threshold float64) []string {
	var out []string
	var seen []string
	for _, item := range items {
		folded := strings.ToLower(strings.TrimSpace(item))
		if folded == "" {
			continue
		}
		dup := false
		for _, prev := range seen {
			if containsRatio(folded, prev, threshold) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, folded)
			out = append(out, item)
		}
	}
	return out
}

// appendUnique appends items not already present (case-insensitive)
func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if strings.EqualFold(existing, item) {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
