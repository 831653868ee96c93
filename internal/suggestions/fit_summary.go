package suggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

type fitSummaryReply struct {
	Summary         string   `json:"summary"`
	TopStrengths    []string `json:"top_strengths"`
	Strengths       []string `json:"strengths"`
	KeyGaps         []string `json:"key_gaps"`
	Gaps            []string `json:"gaps"`
	Overlaps        []string `json:"overlaps"`
	Recommendations []string `json:"recommendations"`
}

// FitSummary explains in prose how the résumé fits the role. It never fails:
// without a usable model reply it returns a templated summary built from the
// ATS score and the fit level.
func (g *Generator) FitSummary(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription, atsScore float64, fit types.FitLevel) types.FitSummary {
	if resume == nil || jd == nil {
		return fallbackFitSummary(jd, atsScore, fit, nil)
	}
	if g.llm == nil {
		return fallbackFitSummary(jd, atsScore, fit, ErrNoGenerator)
	}

	summary, err := g.fitSummaryFromModel(ctx, resume, jd, atsScore, fit)
	if err != nil {
		g.opts.Logger.Warn("fit summary unavailable, using template", zap.Error(err))
		return fallbackFitSummary(jd, atsScore, fit, err)
	}
	return summary
}

func (g *Generator) fitSummaryFromModel(ctx context.Context, resume *types.ResumeData, jd *types.JobDescription, atsScore float64, fit types.FitLevel) (types.FitSummary, error) {
	system, err := prompts.Get(promptFile, "fit-summary-system")
	if err != nil {
		return types.FitSummary{}, err
	}
	jdText := strings.TrimSpace(jd.RawText)
	if jdText == "" {
		jdText = structuredJDView(jd)
	}
	user, err := prompts.Render(promptFile, "fit-summary-user", map[string]string{
		"RoleTitle":  jd.RoleTitle,
		"ATSScore":   fmt.Sprintf("%.1f", atsScore),
		"FitLevel":   string(fit),
		"JDText":     truncate(jdText, fitSummaryJDLimit, ""),
		"ResumeView": fitResumeView(resume),
	})
	if err != nil {
		return types.FitSummary{}, err
	}

	text, err := g.llm.Generate(ctx, []llm.Message{llm.SystemMessage(system), llm.UserMessage(user)}, llm.TierStandard, true)
	if err != nil {
		return types.FitSummary{}, err
	}

	var reply fitSummaryReply
	if _, err := llm.DecodeLenient(text, &reply); err != nil {
		return types.FitSummary{}, err
	}

	out := types.FitSummary{
		Summary:         strings.TrimSpace(reply.Summary),
		TopStrengths:    capList(firstNonEmpty(reply.TopStrengths, reply.Strengths)),
		KeyGaps:         capList(firstNonEmpty(reply.KeyGaps, reply.Gaps)),
		Overlaps:        capList(reply.Overlaps),
		Recommendations: capList(reply.Recommendations),
	}
	if out.Summary == "" {
		out.Summary = fallbackSummaryText(jd, atsScore, fit)
	}
	return out, nil
}

// fallbackFitSummary is the templated summary. An unreadable reply still gets
// generic review advice; other failures leave the lists empty.
func fallbackFitSummary(jd *types.JobDescription, atsScore float64, fit types.FitLevel, cause error) types.FitSummary {
	out := types.FitSummary{
		Summary:         fallbackSummaryText(jd, atsScore, fit),
		TopStrengths:    []string{},
		KeyGaps:         []string{},
		Overlaps:        []string{},
		Recommendations: []string{"Use the suggestions feature to get specific improvements"},
	}
	if errors.Is(cause, llm.ErrNoJSON) {
		out.TopStrengths = []string{"Review the job description to identify matching experience"}
		out.KeyGaps = []string{"Compare your skills with required skills in the JD"}
	}
	return out
}

func fallbackSummaryText(jd *types.JobDescription, atsScore float64, fit types.FitLevel) string {
	role := types.DefaultRoleTitle
	if jd != nil && jd.RoleTitle != "" {
		role = jd.RoleTitle
	}
	return fmt.Sprintf("Your resume shows a %s fit for this %s role. ATS score: %.1f/100.",
		strings.ToLower(string(fit)), role, atsScore)
}

func capList(items []string) []string {
	out := make([]string, 0, min(len(items), fitSummaryListLimit))
	for _, item := range items {
		if len(out) == fitSummaryListLimit {
			break
		}
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
