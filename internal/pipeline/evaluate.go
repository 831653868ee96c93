package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Evaluation is the combined ATS and semantic assessment of one résumé/JD pair
type Evaluation struct {
	Breakdown     types.ScoreBreakdown `json:"breakdown"`
	SemanticFit   *types.SemanticFit   `json:"semantic_fit,omitempty"`
	SemanticError string               `json:"semantic_error,omitempty"`
}

// FitLevel returns the semantic fit level, or Low when no fit was computed
func (e *Evaluation) FitLevel() types.FitLevel {
	if e.SemanticFit == nil {
		return types.FitLow
	}
	return e.SemanticFit.Level
}

// Evaluate scores resume against jd. The ATS score and the semantic fit run
// concurrently; a nil matcher skips the semantic half. A semantic failure is
// recorded on the result rather than returned, since the ATS score stands on
// its own. Only cancellation of ctx fails the call.
func Evaluate(ctx context.Context, matcher *scoring.SemanticMatcher, resume *types.ResumeData, jd *types.JobDescription, logger *zap.Logger) (*Evaluation, error) {
	ev := &Evaluation{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ev.Breakdown = scoring.Score(resume, jd)
		return nil
	})

	if matcher != nil {
		g.Go(func() error {
			fit, err := matcher.Fit(gCtx, resume, jd)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if logger != nil {
					logger.Warn("semantic fit unavailable", zap.Error(err))
				}
				ev.SemanticError = err.Error()
				return nil
			}
			ev.SemanticFit = fit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ev, nil
}
