package parsing

import "go.uber.org/zap"

// Tuning defaults for the rule-based extractor. They are empirical values and
// can be overridden through Options.
const (
	DefaultDuplicateThreshold = 0.8
	DefaultPreferenceWindow   = 300
	DefaultMaxInputChars      = 8000

	// minSectionItems is the item count below which the aggressive bullet scan runs
	minSectionItems = 2
	// maxFallbackItems caps items added to one list by the aggressive scan
	maxFallbackItems = 10
	// maxBulletScan caps the number of bullets collected from the whole document
	maxBulletScan = 30
	// maxKeywords caps the rule-based keyword list
	maxKeywords = 50
	// headerLines is how many leading lines are searched for contact details
	headerLines = 15
	// maxSummaryChars drops summaries that swallowed the rest of the document
	maxSummaryChars = 2000
)

// Options configures the résumé and job description parsers
type Options struct {
	// SkillVocabulary lists the terms matched in job descriptions
	SkillVocabulary []string
	// DuplicateThreshold is the containment ratio above which two bullets are the same
	DuplicateThreshold float64
	// PreferenceWindow is the number of characters inspected on each side of a
	// skill mention for required or preferred wording
	PreferenceWindow int
	// MaxInputChars caps the job description text sent to the model
	MaxInputChars int
	Logger        *zap.Logger
}

// DefaultOptions returns the standard tuning
func DefaultOptions() Options {
	return Options{
		SkillVocabulary:    DefaultSkillVocabulary,
		DuplicateThreshold: DefaultDuplicateThreshold,
		PreferenceWindow:   DefaultPreferenceWindow,
		MaxInputChars:      DefaultMaxInputChars,
	}
}

func (o Options) withDefaults() Options {
	if len(o.SkillVocabulary) == 0 {
		o.SkillVocabulary = DefaultSkillVocabulary
	}
	if o.DuplicateThreshold <= 0 || o.DuplicateThreshold > 1 {
		o.DuplicateThreshold = DefaultDuplicateThreshold
	}
	if o.PreferenceWindow <= 0 {
		o.PreferenceWindow = DefaultPreferenceWindow
	}
	if o.MaxInputChars <= 0 {
		o.MaxInputChars = DefaultMaxInputChars
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
