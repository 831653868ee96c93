package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Outcome is the result of resolving one suggestion
type Outcome struct {
	Suggestion types.Suggestion  `json:"suggestion"`
	ResumeID   int64             `json:"resume_id"`
	Applied    bool              `json:"applied"`
	Resume     *types.ResumeData `json:"resume,omitempty"`
	Score      *ScoreResult      `json:"score,omitempty"`
}

// Accept applies a pending suggestion to its résumé and re-scores the session
func (s *Service) Accept(ctx context.Context, id string) (*Outcome, error) {
	return s.resolve(ctx, id, func(sg *types.Suggestion) error {
		return sg.Accept()
	})
}

// Edit applies reviewer-edited text in place of the suggested text
func (s *Service) Edit(ctx context.Context, id, text string) (*Outcome, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &InputError{Field: "edited_text", Message: "is required"}
	}
	return s.resolve(ctx, id, func(sg *types.Suggestion) error {
		return sg.Edit(text)
	})
}

// Reject marks a pending suggestion rejected; the résumé is left alone
func (s *Service) Reject(ctx context.Context, id string) (*Outcome, error) {
	return s.resolve(ctx, id, func(sg *types.Suggestion) error {
		return sg.Reject()
	})
}

// resolve runs transition on the suggestion and, unless it was rejected,
// writes the resulting text into the résumé in the same transaction. The
// session is re-scored afterwards, outside the row locks.
func (s *Service) resolve(ctx context.Context, id string, transition func(*types.Suggestion) error) (*Outcome, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	var applied bool
	resume, rec, err := s.store.ResolveSuggestion(ctx, id, func(r *types.ResumeData, sg *types.Suggestion) error {
		if err := transition(sg); err != nil {
			return err
		}
		if sg.Status != types.StatusRejected {
			applied = editing.ApplyInPlace(r, sg, sg.AppliedText())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &Outcome{Suggestion: rec.Suggestion, ResumeID: resume.ID, Applied: applied}
	logger := s.logger.With(zap.String("suggestion_id", id), zap.String("status", string(rec.Status)))
	if rec.Status == types.StatusRejected {
		logger.Info("suggestion rejected")
		return out, nil
	}

	out.Resume = &resume.Data
	if !applied {
		logger.Warn("suggestion address no longer matches the resume", zap.String("section_id", rec.SectionID))
	}

	session, err := s.store.GetSession(ctx, rec.SessionID)
	if err != nil {
		return nil, err
	}
	jd, err := s.store.GetJobDescription(ctx, session.JobDescriptionID)
	if err != nil {
		return nil, err
	}
	scored, err := s.score(ctx, resume, jd)
	if err != nil {
		return nil, err
	}
	out.Score = scored

	logger.Info("suggestion applied",
		zap.Bool("changed", applied),
		zap.Float64("ats_score", scored.Breakdown.ATSScore))
	return out, nil
}

// Refine rewrites a pending suggestion from reviewer feedback and stores the
// new text. Resolved suggestions cannot be refined.
func (s *Service) Refine(ctx context.Context, id, feedback string) (*types.Suggestion, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, &InputError{Field: "feedback", Message: "is required"}
	}

	rec, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != types.StatusPending {
		return nil, types.ErrSuggestionProcessed
	}

	session, err := s.store.GetSession(ctx, rec.SessionID)
	if err != nil {
		return nil, err
	}
	resume, jd, err := s.pair(ctx, session.ResumeID, session.JobDescriptionID)
	if err != nil {
		return nil, err
	}

	refined, err := s.suggester.Refine(ctx, &rec.Suggestion, feedback, &resume.Data, &jd.Data)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSuggestion(ctx, refined); err != nil {
		return nil, err
	}

	s.logger.Info("suggestion refined", zap.String("suggestion_id", id))
	return refined, nil
}
