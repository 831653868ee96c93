package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MockEmbedder implements llm.Embedder for testing
type MockEmbedder struct {
	EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)
	calls     int
	lastBatch []string
}

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	m.lastBatch = texts
	return m.EmbedFunc(ctx, texts)
}

func TestClassifyFit(t *testing.T) {
	tests := []struct {
		score float64
		want  types.FitLevel
	}{
		{0.70, types.FitHigh},
		{0.95, types.FitHigh},
		{0.6999, types.FitMedium},
		{0.50, types.FitMedium},
		{0.4999, types.FitLow},
		{0, types.FitLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyFit(tt.score), "score %v", tt.score)
	}
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestSections(t *testing.T) {
	resume := &types.ResumeData{
		Summary:    "Backend engineer",
		Experience: []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", Bullets: []types.BulletPoint{{Text: "Built APIs."}, {Text: "Ran on-call."}}}},
		Skills:     []string{"Go", "SQL"},
		Education:  []types.EducationEntry{{Degree: "BS", Institution: "MIT", Field: "Physics"}},
	}

	assert.Equal(t, []Section{
		{Name: "summary", Text: "Backend engineer"},
		{Name: "experience_0", Text: "Engineer at Acme. Built APIs. Ran on-call."},
		{Name: "skills", Text: "Go, SQL"},
		{Name: "education_0", Text: "BS from MIT in Physics"},
	}, ResumeSections(resume))

	jd := &types.JobDescription{
		RoleTitle:      "Engineer",
		Company:        "Globex",
		Requirements:   []string{"Go.", "SQL."},
		RequiredSkills: []string{"Go", "SQL"},
	}
	assert.Equal(t, []Section{
		{Name: "role", Text: "Engineer at Globex"},
		{Name: "requirements", Text: "Go. SQL."},
		{Name: "required_skills", Text: "Go, SQL"},
	}, JDSections(jd))
}

func TestSemanticMatcher_Fit(t *testing.T) {
	vectors := map[string][]float32{
		"Backend engineer":   {1, 0},
		"Go, SQL":            {0, 1},
		"Engineer at Globex": {1, 0},
		"Go. SQL.":           {0.6, 0.8},
	}
	embedder := &MockEmbedder{EmbedFunc: func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = vectors[text]
		}
		return out, nil
	}}

	resume := &types.ResumeData{Summary: "Backend engineer", Skills: []string{"Go", "SQL"}}
	jd := &types.JobDescription{RoleTitle: "Engineer", Company: "Globex", Requirements: []string{"Go.", "SQL."}}

	fit, err := NewSemanticMatcher(embedder).Fit(context.Background(), resume, jd)
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.calls)
	assert.Len(t, embedder.lastBatch, 4)
	assert.Equal(t, types.SectionMatch{Score: 1, MatchedWith: "role"}, roundMatch(fit.Sections["summary"]))
	assert.Equal(t, "requirements", fit.Sections["skills"].MatchedWith)
	assert.InDelta(t, 0.8, fit.Sections["skills"].Score, 1e-6)
	assert.InDelta(t, 0.9, fit.Score, 1e-6)
	assert.Equal(t, types.FitHigh, fit.Level)
}

func TestSemanticMatcher_NoSections(t *testing.T) {
	embedder := &MockEmbedder{EmbedFunc: func(context.Context, []string) ([][]float32, error) {
		t.Fatal("embedder must not be called")
		return nil, nil
	}}
	m := NewSemanticMatcher(embedder)

	_, err := m.Fit(context.Background(), &types.ResumeData{}, &types.JobDescription{RoleTitle: "Engineer"})
	assert.ErrorIs(t, err, ErrNoSections)

	_, err = m.Fit(context.Background(), &types.ResumeData{Summary: "x"}, &types.JobDescription{})
	assert.ErrorIs(t, err, ErrNoSections)
	assert.Zero(t, embedder.calls)
}

func TestSemanticMatcher_EmbedFailure(t *testing.T) {
	embedErr := &llm.GenerationError{Reason: "quota exceeded", Retryable: true}
	embedder := &MockEmbedder{EmbedFunc: func(context.Context, []string) ([][]float32, error) {
		return nil, embedErr
	}}

	_, err := NewSemanticMatcher(embedder).Fit(context.Background(),
		&types.ResumeData{Summary: "x"}, &types.JobDescription{RoleTitle: "Engineer"})

	var genErr *llm.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.True(t, genErr.Retryable)
}

func TestSemanticMatcher_VectorCountMismatch(t *testing.T) {
	embedder := &MockEmbedder{EmbedFunc: func(context.Context, []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}}

	_, err := NewSemanticMatcher(embedder).Fit(context.Background(),
		&types.ResumeData{Summary: "x"}, &types.JobDescription{RoleTitle: "Engineer"})
	assert.Error(t, err)
}

func roundMatch(m types.SectionMatch) types.SectionMatch {
	if m.Score > 0.999999 {
		m.Score = 1
	}
	return m
}
