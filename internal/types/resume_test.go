package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *ResumeData {
	return &ResumeData{
		PersonalInfo: PersonalInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "555-123-4567",
			Location: "Austin, TX",
			LinkedIn: "linkedin.com/in/janedoe",
		},
		Summary: "Backend engineer focused on distributed systems.",
		Experience: []ExperienceEntry{
			{
				Company:   "Acme",
				Title:     "Senior Engineer",
				StartDate: "Jan 2020",
				EndDate:   "Present",
				Bullets: []BulletPoint{
					{Text: "Built Go services handling 1M requests/day", Formatting: map[string]any{"bold": true}},
					{Text: "Led migration to Kubernetes"},
				},
			},
		},
		Education: []EducationEntry{
			{Institution: "State University", Degree: "BS Computer Science", GraduationDate: "2015"},
		},
		Skills:     []string{"Go", "Python", "SQL"},
		Formatting: map[string]any{"para_0": map[string]any{"style": "Heading 1"}},
	}
}

func TestResumeData_RoundTrip(t *testing.T) {
	original := sampleResume()

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ResumeData
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, *original, decoded)
}

func TestResumeData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		resume  ResumeData
		wantErr bool
	}{
		{
			name:    "empty resume is rejected",
			resume:  ResumeData{},
			wantErr: true,
		},
		{
			name:    "skills alone are not enough",
			resume:  ResumeData{Skills: []string{"Go"}, Summary: "Engineer"},
			wantErr: true,
		},
		{
			name:   "name only is enough",
			resume: ResumeData{PersonalInfo: PersonalInfo{Name: "Jane Doe"}},
		},
		{
			name:   "email only is enough",
			resume: ResumeData{PersonalInfo: PersonalInfo{Email: "jane@example.com"}},
		},
		{
			name:   "experience only is enough",
			resume: ResumeData{Experience: []ExperienceEntry{{Company: "Acme", Title: "Engineer"}}},
		},
		{
			name:   "education only is enough",
			resume: ResumeData{Education: []EducationEntry{{Institution: "MIT", Degree: "BS"}}},
		},
		{
			name:    "whitespace name and email do not count",
			resume:  ResumeData{PersonalInfo: PersonalInfo{Name: "  ", Email: "\t"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resume.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnparseable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResumeData_AddSkill(t *testing.T) {
	r := &ResumeData{Skills: []string{"Go", "Python"}}

	assert.False(t, r.AddSkill("go"))
	assert.False(t, r.AddSkill("  PYTHON "))
	assert.False(t, r.AddSkill(""))
	assert.True(t, r.AddSkill("Kubernetes"))

	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, r.Skills)
}

func TestResumeData_Normalize(t *testing.T) {
	r := &ResumeData{
		Experience: []ExperienceEntry{
			{Bullets: []BulletPoint{{Text: "  "}, {Text: " Shipped it "}}},
		},
		Education: []EducationEntry{{Degree: "BA"}},
		Skills:    []string{"SQL", "sql", "Docker", "docker"},
	}

	r.Normalize()

	assert.Equal(t, UnknownValue, r.Experience[0].Company)
	assert.Equal(t, UnknownValue, r.Experience[0].Title)
	assert.Equal(t, []BulletPoint{{Text: "Shipped it"}}, r.Experience[0].Bullets)
	assert.Equal(t, UnknownValue, r.Education[0].Institution)
	assert.Equal(t, []string{"SQL", "Docker"}, r.Skills)
}

func TestResumeData_CloneIsDeep(t *testing.T) {
	original := sampleResume()
	clone := original.Clone()

	clone.Experience[0].Bullets[0].Text = "changed"
	clone.Experience[0].Bullets[0].Formatting["bold"] = false
	clone.Skills[0] = "Rust"
	clone.Formatting["para_0"].(map[string]any)["style"] = "Normal"

	assert.Equal(t, "Built Go services handling 1M requests/day", original.Experience[0].Bullets[0].Text)
	assert.Equal(t, true, original.Experience[0].Bullets[0].Formatting["bold"])
	assert.Equal(t, "Go", original.Skills[0])
	assert.Equal(t, "Heading 1", original.Formatting["para_0"].(map[string]any)["style"])
}

func TestResumeData_SkillsDisplay(t *testing.T) {
	r := &ResumeData{Skills: []string{"A", "B", "C", "D"}}

	assert.Equal(t, "A, B, C, D", r.SkillsDisplay(10))
	assert.Equal(t, "A, B... (2 more)", r.SkillsDisplay(2))
}
