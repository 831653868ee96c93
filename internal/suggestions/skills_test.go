package suggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestSkillGaps(t *testing.T) {
	tests := []struct {
		name      string
		skills    []string
		required  []string
		preferred []string
		want      []string
	}{
		{
			name:      "caps required and preferred",
			skills:    []string{"Python", "SQL"},
			required:  []string{"Python", "AWS", "Docker", "Kubernetes"},
			preferred: []string{"Terraform", "Ansible"},
			want:      []string{"AWS", "Docker", "Terraform"},
		},
		{
			name:     "substring either way counts as held",
			skills:   []string{"PostgreSQL", "Go"},
			required: []string{"sql", "Google Cloud", "postgresql database"},
			want:     []string{},
		},
		{
			name:      "everything held",
			skills:    []string{"Go", "AWS"},
			required:  []string{"go"},
			preferred: []string{"aws"},
			want:      []string{},
		},
		{
			name:     "no skills list",
			skills:   nil,
			required: []string{"AWS"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := &types.ResumeData{Skills: tt.skills}
			jd := &types.JobDescription{RequiredSkills: tt.required, PreferredSkills: tt.preferred}

			got := SkillGaps(resume, jd)
			added := make([]string, 0, len(got))
			for _, s := range got {
				added = append(added, s.SuggestedText)
			}
			assert.Equal(t, tt.want, added)
		})
	}
}

func TestSkillGaps_Fields(t *testing.T) {
	resume := &types.ResumeData{Skills: []string{"Python", "SQL"}}
	jd := &types.JobDescription{RequiredSkills: []string{"AWS"}, PreferredSkills: []string{"Terraform"}}

	got := SkillGaps(resume, jd)
	require.Len(t, got, 2)

	req := got[0]
	assert.Equal(t, types.SectionSkill, req.SectionType)
	assert.Equal(t, editing.SkillsID, req.SectionID)
	assert.Equal(t, "Python, SQL", req.OriginalText)
	assert.Equal(t, 5.0, req.ExpectedScoreDelta)
	assert.Equal(t, types.PriorityHigh, req.Priority)
	assert.Equal(t, "Required skill: AWS", req.JDMapping)
	assert.Contains(t, req.Reason, "'AWS'")

	pref := got[1]
	assert.Equal(t, 2.0, pref.ExpectedScoreDelta)
	assert.Equal(t, "Preferred skill: Terraform", pref.JDMapping)
}

func TestSkillGaps_AppliedAddsExactlyTheSkill(t *testing.T) {
	resume := &types.ResumeData{Skills: []string{"Python", "SQL"}}
	jd := &types.JobDescription{RequiredSkills: []string{"AWS"}}

	gaps := SkillGaps(resume, jd)
	require.Len(t, gaps, 1)

	updated := editing.Apply(resume, &gaps[0])
	assert.Equal(t, []string{"Python", "SQL", "AWS"}, updated.Skills)
}
