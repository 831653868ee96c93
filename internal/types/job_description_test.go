package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobDescription_NormalizeFromMatchFields(t *testing.T) {
	jd := &JobDescription{
		MustHaveRequirements:   []string{"5+ years of Go", " "},
		NiceToHaveRequirements: []string{"Kubernetes experience"},
		TechnicalSkills:        []string{"Go", "PostgreSQL"},
		SoftSkills:             []string{"Communication"},
		KeywordsToInclude:      []string{"distributed systems"},
	}

	jd.Normalize()

	assert.Equal(t, DefaultRoleTitle, jd.RoleTitle)
	assert.Equal(t, []string{"5+ years of Go"}, jd.Requirements)
	assert.Equal(t, []string{"Kubernetes experience"}, jd.PreferredQualifications)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, jd.RequiredSkills)
	assert.Equal(t, []string{"Communication"}, jd.PreferredSkills)
	assert.Equal(t, []string{"distributed systems"}, jd.Keywords)
	assert.NotNil(t, jd.Responsibilities)
}

func TestJobDescription_NormalizeFromScoringFields(t *testing.T) {
	jd := &JobDescription{
		RoleTitle:      "  Backend Engineer ",
		Requirements:   []string{"Bachelor's degree"},
		RequiredSkills: []string{"Python"},
	}

	jd.Normalize()

	assert.Equal(t, "Backend Engineer", jd.RoleTitle)
	assert.Equal(t, []string{"Bachelor's degree"}, jd.MustHaveRequirements)
	assert.Equal(t, []string{"Python"}, jd.TechnicalSkills)
	assert.Empty(t, jd.SoftSkills)
}

func TestJobDescription_NormalizeKeepsBothWhenSet(t *testing.T) {
	jd := &JobDescription{
		RoleTitle:            "Engineer",
		MustHaveRequirements: []string{"a"},
		Requirements:         []string{"b"},
	}

	jd.Normalize()

	assert.Equal(t, []string{"a"}, jd.MustHaveRequirements)
	assert.Equal(t, []string{"b"}, jd.Requirements)
}

func TestJobDescription_RoundTrip(t *testing.T) {
	jd := &JobDescription{
		RoleTitle:            "Staff Engineer",
		Company:              "Acme",
		MustHaveRequirements: []string{"Go"},
		RawText:              "Staff Engineer at Acme\nRequirements:\n- Go",
	}
	jd.Normalize()

	data, err := json.Marshal(jd)
	require.NoError(t, err)

	var decoded JobDescription
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *jd, decoded)
}

func TestJobDescription_AllSkills(t *testing.T) {
	jd := &JobDescription{RequiredSkills: []string{"Go"}, PreferredSkills: []string{"Rust"}}
	assert.Equal(t, []string{"Go", "Rust"}, jd.AllSkills())
}
