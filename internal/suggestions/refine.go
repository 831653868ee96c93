package suggestions

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/editing"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/types"
)

const generalJDContext = "General improvement"

type refineReply struct {
	SuggestedText string `json:"suggested_text"`
	Reason        string `json:"reason"`
}

// Refine rewrites one suggestion according to reviewer feedback. The result
// keeps the suggestion's id, address, original text, category, priority and
// expected delta, and is pending again. When the résumé text at the address has
// changed since the suggestion was made, the model sees the current text.
// Every failure is reported as a *RefinementFailedError.
func (g *Generator) Refine(ctx context.Context, s *types.Suggestion, feedback string, resume *types.ResumeData, jd *types.JobDescription) (*types.Suggestion, error) {
	if s == nil {
		return nil, &RefinementFailedError{Message: "no suggestion to refine"}
	}
	if g.llm == nil {
		return nil, &RefinementFailedError{Message: "model unavailable", Cause: ErrNoGenerator}
	}

	original := s.OriginalText
	if current, ok := editing.CurrentText(resume, s); ok && current != "" && s.SectionType != types.SectionSkill {
		original = current
	}
	jdContext := s.JDMapping
	if strings.TrimSpace(jdContext) == "" {
		jdContext = generalJDContext
	}

	system, err := prompts.Get(promptFile, "refine-system")
	if err != nil {
		return nil, &RefinementFailedError{Message: "prompt unavailable", Cause: err}
	}
	user, err := prompts.Render(promptFile, "refine-user", map[string]string{
		"OriginalText":      original,
		"CurrentSuggestion": s.SuggestedText,
		"Reason":            s.Reason,
		"Feedback":          feedback,
		"JDContext":         jdContext,
	})
	if err != nil {
		return nil, &RefinementFailedError{Message: "prompt unavailable", Cause: err}
	}

	text, err := g.llm.Generate(ctx, []llm.Message{llm.SystemMessage(system), llm.UserMessage(user)}, llm.TierStandard, true)
	if err != nil {
		return nil, &RefinementFailedError{Message: "model call failed", Cause: err}
	}

	var reply refineReply
	if _, err := llm.DecodeLenient(text, &reply); err != nil {
		return nil, &RefinementFailedError{Message: "unusable model reply", Cause: err}
	}
	reply.SuggestedText = strings.TrimSpace(reply.SuggestedText)
	if reply.SuggestedText == "" {
		return nil, &RefinementFailedError{Message: "model returned no suggested text"}
	}

	refined := *s
	refined.SuggestedText = truncate(reply.SuggestedText, MaxTextLen, "...")
	if r := strings.TrimSpace(reply.Reason); r != "" {
		refined.Reason = truncate(r, MaxTextLen, "...")
	}
	refined.Status = types.StatusPending
	refined.EditedText = ""

	fields := []zap.Field{zap.String("suggestion_id", s.ID)}
	if jd != nil {
		fields = append(fields, zap.String("role", jd.RoleTitle))
	}
	g.opts.Logger.Debug("suggestion refined", fields...)

	return &refined, nil
}
