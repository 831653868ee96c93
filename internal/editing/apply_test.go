package editing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func sampleResume() *types.ResumeData {
	return &types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Summary:      "Backend engineer",
		Experience: []types.ExperienceEntry{
			{
				Company: "Acme",
				Title:   "Engineer",
				Bullets: []types.BulletPoint{{Text: "Built APIs"}, {Text: "Ran on-call"}},
			},
		},
		Skills: []string{"Go", "SQL"},
	}
}

func TestParseSectionID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    Address
		wantErr bool
	}{
		{name: "summary", id: "summary", want: Address{Section: types.SectionSummary}},
		{name: "summary mixed case", id: " Summary ", want: Address{Section: types.SectionSummary}},
		{name: "skill", id: "skill", want: Address{Section: types.SectionSkill}},
		{name: "skills", id: "skills", want: Address{Section: types.SectionSkill}},
		{name: "skills section", id: "skills_section", want: Address{Section: types.SectionSkill}},
		{name: "skill prefix", id: "skill_aws", want: Address{Section: types.SectionSkill}},
		{name: "bullet", id: "experience_2_bullet_5", want: Address{Section: types.SectionBullet, Experience: 2, Bullet: 5}},
		{name: "bullet missing index", id: "experience_2_bullet", wantErr: true},
		{name: "bullet non numeric", id: "experience_x_bullet_1", wantErr: true},
		{name: "bullet negative", id: "experience_-1_bullet_0", wantErr: true},
		{name: "wrong middle", id: "experience_0_role_1", wantErr: true},
		{name: "unknown", id: "unknown", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSectionID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSectionID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddress_String(t *testing.T) {
	assert.Equal(t, "summary", Address{Section: types.SectionSummary}.String())
	assert.Equal(t, "skills_section", Address{Section: types.SectionSkill}.String())
	assert.Equal(t, "experience_1_bullet_3", Address{Section: types.SectionBullet, Experience: 1, Bullet: 3}.String())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		suggestion types.Suggestion
		check      func(t *testing.T, got *types.ResumeData)
	}{
		{
			name:       "summary replaced",
			suggestion: types.Suggestion{SectionType: types.SectionSummary, SectionID: "summary", SuggestedText: "Go engineer"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, "Go engineer", got.Summary)
			},
		},
		{
			name:       "skills appended once",
			suggestion: types.Suggestion{SectionType: types.SectionSkill, SectionID: "skills_section", SuggestedText: "AWS, go, Terraform ,"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, []string{"Go", "SQL", "AWS", "Terraform"}, got.Skills)
			},
		},
		{
			name:       "bullet replaced",
			suggestion: types.Suggestion{SectionType: types.SectionBullet, SectionID: "experience_0_bullet_1", SuggestedText: "Led on-call rotation"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, "Led on-call rotation", got.Experience[0].Bullets[1].Text)
				assert.Equal(t, "Built APIs", got.Experience[0].Bullets[0].Text)
			},
		},
		{
			name: "edited text wins",
			suggestion: types.Suggestion{
				SectionType: types.SectionBullet, SectionID: "experience_0_bullet_0",
				SuggestedText: "Designed APIs", Status: types.StatusEdited, EditedText: "Designed REST APIs",
			},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, "Designed REST APIs", got.Experience[0].Bullets[0].Text)
			},
		},
		{
			name:       "experience out of range is a no-op",
			suggestion: types.Suggestion{SectionType: types.SectionBullet, SectionID: "experience_5_bullet_0", SuggestedText: "x"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, sampleResume(), got)
			},
		},
		{
			name:       "bullet out of range is a no-op",
			suggestion: types.Suggestion{SectionType: types.SectionBullet, SectionID: "experience_0_bullet_9", SuggestedText: "x"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, sampleResume(), got)
			},
		},
		{
			name:       "summary by section type",
			suggestion: types.Suggestion{SectionType: types.SectionSummary, SectionID: "unknown", SuggestedText: "New summary"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, "New summary", got.Summary)
			},
		},
		{
			name:       "bullet with bad id is a no-op",
			suggestion: types.Suggestion{SectionType: types.SectionBullet, SectionID: "unknown", SuggestedText: "x"},
			check: func(t *testing.T, got *types.ResumeData) {
				assert.Equal(t, sampleResume(), got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleResume()
			got := Apply(in, &tt.suggestion)
			require.NotNil(t, got)
			tt.check(t, got)
			assert.Equal(t, sampleResume(), in, "input must not be mutated")
		})
	}
}

func TestApplyText(t *testing.T) {
	s := &types.Suggestion{SectionType: types.SectionBullet, SectionID: "experience_0_bullet_0", SuggestedText: "ignored"}

	got := ApplyText(sampleResume(), s, "Shipped the billing API")

	assert.Equal(t, "Shipped the billing API", got.Experience[0].Bullets[0].Text)
}

func TestApplyInPlace(t *testing.T) {
	resume := sampleResume()
	s := &types.Suggestion{SectionType: types.SectionSkill, SectionID: "skill", SuggestedText: "AWS"}

	assert.True(t, ApplyInPlace(resume, s, "AWS"))
	assert.Equal(t, []string{"Go", "SQL", "AWS"}, resume.Skills)

	assert.False(t, ApplyInPlace(resume, s, "aws"), "second add is a duplicate")
	assert.False(t, ApplyInPlace(nil, s, "AWS"))
	assert.False(t, ApplyInPlace(resume, nil, "AWS"))
}

func TestApply_Nil(t *testing.T) {
	assert.Nil(t, Apply(nil, &types.Suggestion{SectionID: "summary"}))
	assert.Equal(t, sampleResume(), Apply(sampleResume(), nil))
}

func TestCurrentText(t *testing.T) {
	resume := sampleResume()

	text, ok := CurrentText(resume, &types.Suggestion{SectionID: "experience_0_bullet_1"})
	assert.True(t, ok)
	assert.Equal(t, "Ran on-call", text)

	text, ok = CurrentText(resume, &types.Suggestion{SectionID: "skills_section"})
	assert.True(t, ok)
	assert.Equal(t, "Go, SQL", text)

	_, ok = CurrentText(resume, &types.Suggestion{SectionID: "experience_3_bullet_0"})
	assert.False(t, ok)
}
