package suggestions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

const promptFile = "suggestions.json"

// Generator produces suggestion sets. A nil text generator limits it to
// deterministic skill-gap suggestions.
type Generator struct {
	llm  llm.Generator
	opts Options
}

// NewGenerator creates a Generator
func NewGenerator(gen llm.Generator, opts Options) *Generator {
	return &Generator{llm: gen, opts: opts.withDefaults()}
}

type modelReply struct {
	Summary     string            `json:"summary"`
	Suggestions []modelSuggestion `json:"suggestions"`
}

type modelSuggestion struct {
	Category           string   `json:"category"`
	Priority           string   `json:"priority"`
	SectionType        string   `json:"section_type"`
	SectionID          string   `json:"section_id"`
	OriginalText       string   `json:"original_text"`
	SuggestedText      string   `json:"suggested_text"`
	Reason             string   `json:"reason"`
	ExpectedScoreDelta *float64 `json:"expected_score_delta"`
	JDMapping          string   `json:"jd_mapping"`
}

// Generate returns at most maxCount suggestions for tailoring resume to jd.
func (g *Generator) Generate(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription, maxCount int) (*types.SuggestionSet, error) {
	return g.GenerateWithFeedback(ctx, resume, jd, maxCount, "")
}

// GenerateWithFeedback is Generate with reviewer feedback on an earlier batch
// passed to the model. Model and skill-gap suggestions are merged, validated,
// sorted and cut to maxCount. A model failure is only returned when the
// skill-gap pass found nothing either.
func (g *Generator) GenerateWithFeedback(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription, maxCount int, feedback string) (*types.SuggestionSet, error) {
	if resume == nil || jd == nil {
		return nil, ErrMissingInput
	}
	if maxCount <= 0 {
		maxCount = g.opts.MaxCount
	}
	logger := g.opts.Logger

	var (
		summary  string
		combined []types.Suggestion
		modelErr error
	)
	if g.llm != nil {
		reply, err := g.fromModel(ctx, resume, jd, maxCount, feedback)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			modelErr = err
			logger.Warn("model suggestions unavailable, using skill gaps only", zap.Error(err))
		} else {
			summary = reply.Summary
			combined = append(combined, reply.Suggestions...)
		}
	}

	gaps := SkillGaps(resume, jd)
	deterministic := make(map[string]bool, len(gaps))
	for i := range gaps {
		gaps[i].ID = newID()
		deterministic[gaps[i].ID] = true
	}
	combined = append(combined, gaps...)

	result := Validate(combined)
	Sort(result)
	if len(result) > maxCount {
		result = result[:maxCount]
	}

	if len(result) == 0 && modelErr != nil {
		return nil, &GenerationFailedError{Cause: modelErr}
	}

	var fromSkills int
	for _, s := range result {
		if deterministic[s.ID] {
			fromSkills++
		}
	}
	observability.ObserveSuggestions("llm", len(result)-fromSkills)
	observability.ObserveSuggestions("skills", fromSkills)

	logger.Debug("suggestions generated",
		zap.Int("count", len(result)),
		zap.Int("skill_gaps", fromSkills),
		zap.Bool("model", g.llm != nil && modelErr == nil))

	return &types.SuggestionSet{Summary: summary, Suggestions: result}, nil
}

type modelResult struct {
	Summary     string
	Suggestions []types.Suggestion
}

// fromModel runs the model-assisted pass. A reply with no JSON object is an error.
func (g *Generator) fromModel(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription, maxCount int, feedback string) (*modelResult, error) {
	system, err := prompts.Get(promptFile, "generate-system")
	if err != nil {
		return nil, err
	}

	feedbackBlock := ""
	if feedback != "" {
		feedbackBlock, err = prompts.Render(promptFile, "generate-feedback", map[string]string{"Feedback": feedback})
		if err != nil {
			return nil, err
		}
	}
	user, err := prompts.Render(promptFile, "generate-user", map[string]string{
		"MaxCount":   fmt.Sprint(maxCount),
		"JDText":     jdView(jd, jdTextLimit),
		"ResumeView": resumeView(resume),
		"Feedback":   feedbackBlock,
	})
	if err != nil {
		return nil, err
	}

	text, err := g.llm.Generate(ctx, []llm.Message{llm.SystemMessage(system), llm.UserMessage(user)}, llm.TierAdvanced, true)
	if err != nil {
		return nil, err
	}

	var reply modelReply
	issues, err := llm.DecodeLenient(text, &reply)
	if err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	if len(issues) > 0 {
		g.opts.Logger.Debug("suggestion reply had type mismatches", zap.Strings("issues", issues.Strings()))
	}

	out := &modelResult{Summary: reply.Summary}
	for _, ms := range reply.Suggestions {
		delta := defaultDelta
		if ms.ExpectedScoreDelta != nil {
			delta = *ms.ExpectedScoreDelta
		}
		out.Suggestions = append(out.Suggestions, types.Suggestion{
			ID:                 newID(),
			SectionType:        types.SectionType(ms.SectionType),
			SectionID:          ms.SectionID,
			OriginalText:       ms.OriginalText,
			SuggestedText:      ms.SuggestedText,
			Reason:             ms.Reason,
			ExpectedScoreDelta: delta,
			JDMapping:          ms.JDMapping,
			Category:           ms.Category,
			Priority:           types.Priority(ms.Priority),
			Status:             types.StatusPending,
		})
	}
	return out, nil
}
