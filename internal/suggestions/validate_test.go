package suggestions

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestValidate_Drops(t *testing.T) {
	tests := []struct {
		name string
		in   []types.Suggestion
		want []string
	}{
		{
			name: "empty original",
			in:   []types.Suggestion{{OriginalText: " ", SuggestedText: "x"}},
			want: []string{},
		},
		{
			name: "empty suggestion",
			in:   []types.Suggestion{{OriginalText: "x", SuggestedText: ""}},
			want: []string{},
		},
		{
			name: "no-op edit",
			in:   []types.Suggestion{{OriginalText: "Built APIs", SuggestedText: " Built APIs "}},
			want: []string{},
		},
		{
			name: "duplicate original ignoring case",
			in: []types.Suggestion{
				{OriginalText: "Built APIs", SuggestedText: "Built Go APIs"},
				{OriginalText: "built apis", SuggestedText: "Designed APIs"},
			},
			want: []string{"Built Go APIs"},
		},
		{
			name: "duplicate on the first 100 characters",
			in: []types.Suggestion{
				{OriginalText: strings.Repeat("a", 100) + "first", SuggestedText: "one"},
				{OriginalText: strings.Repeat("A", 100) + "second", SuggestedText: "two"},
			},
			want: []string{"one"},
		},
		{
			name: "skill additions to the same list are distinct",
			in: []types.Suggestion{
				{SectionType: types.SectionSkill, OriginalText: "Go, SQL", SuggestedText: "AWS"},
				{SectionType: types.SectionSkill, OriginalText: "Go, SQL", SuggestedText: "Terraform"},
				{SectionType: types.SectionSkill, OriginalText: "Go, SQL", SuggestedText: "aws"},
			},
			want: []string{"AWS", "Terraform"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			texts := make([]string, 0, len(got))
			for _, s := range got {
				texts = append(texts, s.SuggestedText)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	got := Validate([]types.Suggestion{
		{OriginalText: "Backend engineer", SuggestedText: "Go engineer", SectionType: "SUMMARY", Priority: "High"},
		{OriginalText: "Go", SuggestedText: "Go, AWS", SectionType: "skill"},
		{OriginalText: "Built APIs", SuggestedText: "Built Go APIs", SectionType: "paragraph", Priority: "urgent", Category: "impact"},
	})
	require.Len(t, got, 3)

	assert.Equal(t, types.SectionSummary, got[0].SectionType)
	assert.Equal(t, "summary", got[0].SectionID)
	assert.Equal(t, types.PriorityHigh, got[0].Priority)

	assert.Equal(t, "skills_section", got[1].SectionID)

	assert.Equal(t, types.SectionBullet, got[2].SectionType)
	assert.Equal(t, "unknown", got[2].SectionID)
	assert.Equal(t, types.PriorityMedium, got[2].Priority)
	assert.Equal(t, "impact", got[2].Category)

	for _, s := range got {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, types.StatusPending, s.Status)
		assert.Equal(t, "Improves match to job description", s.Reason)
	}
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestValidate_Truncates(t *testing.T) {
	got := Validate([]types.Suggestion{{
		ID:            "s1",
		OriginalText:  strings.Repeat("é", 600),
		SuggestedText: "short",
	}})
	require.Len(t, got, 1)

	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, MaxTextLen+3, utf8.RuneCountInString(got[0].OriginalText))
	assert.True(t, strings.HasSuffix(got[0].OriginalText, "..."))
	assert.Equal(t, "short", got[0].SuggestedText)
}

func TestValidate_DropsPairIdenticalAfterTruncation(t *testing.T) {
	shared := strings.Repeat("Led migration of billing jobs to Go. ", 20)
	got := Validate([]types.Suggestion{
		{ID: "tail-only", OriginalText: shared + "old ending", SuggestedText: shared + "new ending"},
		{ID: "real", OriginalText: "Wrote scripts", SuggestedText: "Automated releases with Go tooling"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "real", got[0].ID)
}

func TestSort(t *testing.T) {
	in := []types.Suggestion{
		{ID: "low", Priority: types.PriorityLow, ExpectedScoreDelta: 9},
		{ID: "med-2", Priority: types.PriorityMedium, ExpectedScoreDelta: 2},
		{ID: "high-1", Priority: types.PriorityHigh, ExpectedScoreDelta: 1},
		{ID: "med-5", Priority: types.PriorityMedium, ExpectedScoreDelta: 5},
		{ID: "high-5", Priority: types.PriorityHigh, ExpectedScoreDelta: 5},
		{ID: "med-2b", Priority: types.PriorityMedium, ExpectedScoreDelta: 2},
	}

	Sort(in)

	ids := make([]string, 0, len(in))
	for _, s := range in {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"high-5", "high-1", "med-5", "med-2", "med-2b", "low"}, ids)
}
