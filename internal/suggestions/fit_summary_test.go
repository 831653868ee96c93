package suggestions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestFitSummary_Model(t *testing.T) {
	gen := reply(`{
		"summary": "Strong backend match.",
		"strengths": ["Go", "APIs", "On-call", "SQL", "Mentoring", "Testing"],
		"key_gaps": ["AWS"],
		"overlaps": ["Built APIs"],
		"recommendations": ["Add AWS projects"]
	}`)
	g := NewGenerator(gen, Options{})

	got := g.FitSummary(context.Background(), testResume(), testJD(), 54, types.FitMedium)

	assert.Equal(t, "Strong backend match.", got.Summary)
	assert.Equal(t, []string{"Go", "APIs", "On-call", "SQL", "Mentoring"}, got.TopStrengths)
	assert.Equal(t, []string{"AWS"}, got.KeyGaps)
	assert.Equal(t, []string{"Built APIs"}, got.Overlaps)
	assert.Equal(t, []string{"Add AWS projects"}, got.Recommendations)

	user := gen.lastMessages[1].Content
	assert.Contains(t, user, "ATS SCORE: 54.0/100")
	assert.Contains(t, user, "SEMANTIC FIT: Medium")
	assert.Contains(t, user, "Engineer at Acme")
}

func TestFitSummary_Fallback(t *testing.T) {
	const summary = "Your resume shows a medium fit for this Senior Engineer role. ATS score: 54.0/100."

	tests := []struct {
		name          string
		gen           llm.Generator
		wantStrengths []string
	}{
		{name: "no generator", gen: nil, wantStrengths: []string{}},
		{name: "call failed", gen: failing(&llm.GenerationError{Op: "generate", Reason: "timeout"}), wantStrengths: []string{}},
		{
			name:          "unreadable reply",
			gen:           reply("Overall a good fit."),
			wantStrengths: []string{"Review the job description to identify matching experience"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.gen, Options{})
			got := g.FitSummary(context.Background(), testResume(), testJD(), 54, types.FitMedium)

			assert.Equal(t, summary, got.Summary)
			assert.Equal(t, tt.wantStrengths, got.TopStrengths)
			assert.Equal(t, []string{"Use the suggestions feature to get specific improvements"}, got.Recommendations)
		})
	}
}

func TestFitSummary_EmptyModelSummary(t *testing.T) {
	g := NewGenerator(reply(`{"summary": "", "top_strengths": ["Go"]}`), Options{})

	got := g.FitSummary(context.Background(), testResume(), &types.JobDescription{}, 80, types.FitHigh)

	assert.Equal(t, "Your resume shows a high fit for this Job Position role. ATS score: 80.0/100.", got.Summary)
	assert.Equal(t, []string{"Go"}, got.TopStrengths)
	assert.Empty(t, got.KeyGaps)
}
