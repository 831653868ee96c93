package types

// ScoreBreakdown is the ATS-style score of a résumé against a job description.
// All component scores are in [0,100].
type ScoreBreakdown struct {
	KeywordScore        float64         `json:"keyword_score"`
	SkillScore          float64         `json:"skill_score"`
	CompletenessScore   float64         `json:"completeness_score"`
	ATSScore            float64         `json:"ats_score"`
	MatchedKeywords     []string        `json:"matched_keywords"`
	MissingKeywords     []string        `json:"missing_keywords"`
	MatchedSkills       []string        `json:"matched_skills"`
	MissingSkills       []string        `json:"missing_skills"`
	SectionCompleteness map[string]bool `json:"section_completeness"`
}

// FitLevel is the categorical semantic fit
type FitLevel string

// Fit levels
const (
	FitLow    FitLevel = "Low"
	FitMedium FitLevel = "Medium"
	FitHigh   FitLevel = "High"
)

// SectionMatch records the best JD section match for one résumé section
type SectionMatch struct {
	Score       float64 `json:"score"`
	MatchedWith string  `json:"matched_with"`
}

// SemanticFit is the embedding-based similarity between a résumé and a job description
type SemanticFit struct {
	Level    FitLevel                `json:"level"`
	Score    float64                 `json:"score"`
	Sections map[string]SectionMatch `json:"sections"`
}

// FitSummary is the narrative explanation of how a résumé fits a role
type FitSummary struct {
	Summary         string   `json:"summary"`
	TopStrengths    []string `json:"top_strengths"`
	KeyGaps         []string `json:"key_gaps"`
	Overlaps        []string `json:"overlaps"`
	Recommendations []string `json:"recommendations"`
}
