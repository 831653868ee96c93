package suggestions

import "go.uber.org/zap"

const (
	// DefaultMaxCount is the number of suggestions returned when the caller asks for none in particular
	DefaultMaxCount = 10

	// MaxTextLen bounds every stored text field
	MaxTextLen = 500
	// dedupPrefixLen is how much of the original text identifies a duplicate
	dedupPrefixLen = 100

	defaultDelta    = 2.0
	defaultReason   = "Improves match to job description"
	defaultCategory = "experience"

	requiredSkillDelta  = 5.0
	preferredSkillDelta = 2.0
	maxRequiredSkills   = 2
	maxPreferredSkills  = 1

	// Prompt view limits
	jdTextLimit         = 6000
	fitSummaryJDLimit   = 4000
	viewExperiences     = 5
	viewBullets         = 3
	viewSkills          = 30
	viewEducation       = 3
	fitSummaryListLimit = 5
)

// Options configures a Generator
type Options struct {
	// MaxCount is used when Generate is called with a non-positive count
	MaxCount int
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxCount
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
