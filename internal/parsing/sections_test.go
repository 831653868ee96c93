package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind string
		wantRest string
		wantOK   bool
	}{
		{name: "exact keyword", line: "EXPERIENCE", wantKind: "experience", wantOK: true},
		{name: "longest phrase wins", line: "Technical Skills", wantKind: "skills", wantOK: true},
		{name: "colon with inline body", line: "Skills: Go, SQL", wantKind: "skills", wantRest: "Go, SQL", wantOK: true},
		{name: "sentence is not a header", line: "experience with distributed systems", wantOK: false},
		{name: "bullet is never a header", line: "• Education", wantOK: false},
		{name: "too many words", line: "Education and training programs attended over many years", wantOK: false},
		{name: "list line under other kind", line: "Languages: English, Spanish", wantOK: false},
		{name: "other kind header", line: "Projects", wantKind: "other", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, rest, ok := matchHeader(tt.line, resumeSections)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
				assert.Equal(t, tt.wantRest, rest)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	lines := []string{"Jane Doe", "Summary", "Engineer.", "Skills: Go", "SQL", "Experience", "Acme"}
	s := segment(lines, resumeSections)

	assert.Equal(t, []string{"Jane Doe"}, s.preamble)
	assert.Equal(t, []string{"Engineer."}, s.bodies["summary"])
	assert.Equal(t, []string{"Go", "SQL"}, s.bodies["skills"])
	assert.Equal(t, "Skills: Go\nGo\nSQL", s.textWithHeader("skills"))
	assert.True(t, s.has("experience"))
	assert.False(t, s.has("education"))
}

func TestDedupContained(t *testing.T) {
	items := []string{
		"Build reliable services in Go for payments",
		"build reliable services in Go for payments.",
		"Build reliable services",
		"Own on-call rotations",
	}

	got := dedupContained(items, DefaultDuplicateThreshold)

	assert.Equal(t, []string{
		"Build reliable services in Go for payments",
		"Build reliable services",
		"Own on-call rotations",
	}, got)
}

func TestContainsRatio(t *testing.T) {
	assert.True(t, containsRatio("abcdefghij", "abcdefghi", 0.8))
	assert.False(t, containsRatio("abcdefghij", "abc", 0.8))
	assert.False(t, containsRatio("abc", "xyz", 0.1))
	assert.False(t, containsRatio("", "abc", 0.1))
}

func TestCleanItem(t *testing.T) {
	assert.Equal(t, "Design APIs", cleanItem("•   Design    APIs..."))
	assert.Equal(t, "Ship features", cleanItem("2) Ship features"))
}
