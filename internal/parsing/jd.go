package parsing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
)

// JDParser turns job posting text into a structured job description
type JDParser struct {
	gen   llm.Generator
	rules *jdRules
	opts  Options
}

// NewJDParser creates a parser. A nil generator means rule-based extraction only.
func NewJDParser(gen llm.Generator, opts Options) *JDParser {
	opts = opts.withDefaults()
	return &JDParser{gen: gen, rules: newJDRules(opts), opts: opts}
}

// ParseJD extracts a job description. Every result carries the raw text and a
// role title; empty input is the only failure besides context cancellation.
func (p *JDParser) ParseJD(ctx context.Context, text string) (*types.JobDescription, types.Issues, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, &EmptyInputError{Kind: "job description"}
	}

	var issues types.Issues
	if p.gen != nil {
		jd, modelIssues, err := extractJDWithModel(ctx, p.gen, text, p.opts.MaxInputChars)
		if err == nil {
			jd.RawText = text
			jd.Normalize()
			collapseNearDuplicates(jd, p.opts.DuplicateThreshold)
			observability.ObserveExtraction("job_description", "llm")
			return jd, modelIssues, nil
		}
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		modelUnavailable(p.opts.Logger, "job_description", err, &issues)
	}

	jd, ruleIssues := p.rules.parse(text)
	issues = append(issues, ruleIssues...)
	jd.Normalize()
	collapseNearDuplicates(jd, p.opts.DuplicateThreshold)

	observability.ObserveExtraction("job_description", "rules")
	p.opts.Logger.Debug("rule-based job description extraction",
		zap.String("role_title", jd.RoleTitle),
		zap.Int("requirements", len(jd.Requirements)),
		zap.Int("required_skills", len(jd.RequiredSkills)),
		zap.Strings("issues", issues.Strings()))
	return jd, issues, nil
}

// collapseNearDuplicates drops requirement and responsibility bullets that
// repeat an earlier one, whichever strategy produced them
func collapseNearDuplicates(jd *types.JobDescription, threshold float64) {
	for _, list := range []*[]string{
		&jd.MustHaveRequirements, &jd.Requirements,
		&jd.NiceToHaveRequirements, &jd.PreferredQualifications,
		&jd.Responsibilities,
	} {
		if len(*list) > 1 {
			*list = dedupContained(*list, threshold)
		}
	}
}
