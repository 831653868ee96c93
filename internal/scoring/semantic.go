package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Fit thresholds on the mean best-match similarity
const (
	HighFitThreshold   = 0.7
	MediumFitThreshold = 0.5
)

// ErrNoSections is returned when the résumé or the job description has no
// text to compare. No embedding call is made in that case.
var ErrNoSections = errors.New("no sections to compare")

// Section is one named block of text compared by the semantic matcher
type Section struct {
	Name string
	Text string
}

// ClassifyFit maps a similarity score to a fit level
func ClassifyFit(score float64) types.FitLevel {
	switch {
	case score >= HighFitThreshold:
		return types.FitHigh
	case score >= MediumFitThreshold:
		return types.FitMedium
	default:
		return types.FitLow
	}
}

// ResumeSections splits a résumé into the summary, one section per
// experience entry, the skills list, and one section per education entry
func ResumeSections(resume *types.ResumeData) []Section {
	var out []Section
	if strings.TrimSpace(resume.Summary) != "" {
		out = append(out, Section{Name: "summary", Text: resume.Summary})
	}
	for i, exp := range resume.Experience {
		bullets := make([]string, len(exp.Bullets))
		for j, b := range exp.Bullets {
			bullets[j] = b.Text
		}
		out = append(out, Section{
			Name: fmt.Sprintf("experience_%d", i),
			Text: fmt.Sprintf("%s at %s. %s", exp.Title, exp.Company, strings.Join(bullets, " ")),
		})
	}
	if len(resume.Skills) > 0 {
		out = append(out, Section{Name: "skills", Text: strings.Join(resume.Skills, ", ")})
	}
	for i, edu := range resume.Education {
		text := fmt.Sprintf("%s from %s", edu.Degree, edu.Institution)
		if edu.Field != "" {
			text += " in " + edu.Field
		}
		out = append(out, Section{Name: fmt.Sprintf("education_%d", i), Text: text})
	}
	return out
}

// JDSections splits a job description into role, responsibilities,
// requirements, preferred qualifications and the two skill lists
func JDSections(jd *types.JobDescription) []Section {
	var out []Section
	if role := strings.TrimSpace(jd.RoleTitle); role != "" {
		if jd.Company != "" {
			role += " at " + jd.Company
		}
		out = append(out, Section{Name: "role", Text: role})
	}
	appendJoined := func(name string, items []string, sep string) {
		if len(items) > 0 {
			out = append(out, Section{Name: name, Text: strings.Join(items, sep)})
		}
	}
	appendJoined("responsibilities", jd.Responsibilities, " ")
	appendJoined("requirements", jd.Requirements, " ")
	appendJoined("preferred", jd.PreferredQualifications, " ")
	appendJoined("required_skills", jd.RequiredSkills, ", ")
	appendJoined("preferred_skills", jd.PreferredSkills, ", ")
	return out
}

// SemanticMatcher scores résumé sections against job description sections by
// embedding similarity
type SemanticMatcher struct {
	embedder llm.Embedder
}

// NewSemanticMatcher creates a matcher backed by the given embedder
func NewSemanticMatcher(embedder llm.Embedder) *SemanticMatcher {
	return &SemanticMatcher{embedder: embedder}
}

// Fit embeds every section in one batch, keeps the best job description
// match for each résumé section and averages those best matches. Embedding
// failures are returned as is.
func (m *SemanticMatcher) Fit(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription) (*types.SemanticFit, error) {
	resumeSecs := ResumeSections(resume)
	jdSecs := JDSections(jd)
	if len(resumeSecs) == 0 || len(jdSecs) == 0 {
		return nil, ErrNoSections
	}

	texts := make([]string, 0, len(resumeSecs)+len(jdSecs))
	for _, s := range resumeSecs {
		texts = append(texts, s.Text)
	}
	for _, s := range jdSecs {
		texts = append(texts, s.Text)
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding returned %d vectors for %d sections", len(vectors), len(texts))
	}
	resumeVecs, jdVecs := vectors[:len(resumeSecs)], vectors[len(resumeSecs):]

	fit := &types.SemanticFit{Sections: make(map[string]types.SectionMatch, len(resumeSecs))}
	total := 0.0
	for i, rv := range resumeVecs {
		best := types.SectionMatch{}
		for j, jv := range jdVecs {
			if sim := CosineSimilarity(rv, jv); sim > best.Score {
				best = types.SectionMatch{Score: sim, MatchedWith: jdSecs[j].Name}
			}
		}
		fit.Sections[resumeSecs[i].Name] = best
		total += best.Score
	}

	fit.Score = total / float64(len(resumeVecs))
	fit.Level = ClassifyFit(fit.Score)
	return fit, nil
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// the lengths differ or either vector is zero
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
