package pipeline

import (
	"context"
)

// Progress steps reported by Match
const (
	StepJobDescription = "job_description"
	StepScore          = "score"
	StepFitSummary     = "fit_summary"
	StepSuggestions    = "suggestions"
	StepDone           = "done"
)

// ProgressEvent represents a progress update during a match run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when match progress occurs
type ProgressCallback func(event ProgressEvent)

// MatchRequest describes one end-to-end match: a job description against a
// stored résumé (the default one when ResumeID is 0)
type MatchRequest struct {
	ResumeID       int64
	Job            JobInput
	MaxSuggestions int
	OnProgress     ProgressCallback
}

// MatchResult holds every artifact of a match run
type MatchResult struct {
	JobDescription *JobResult     `json:"job_description"`
	Fit            *FitResult     `json:"fit"`
	Suggestions    *SuggestResult `json:"suggestions"`
}

func emitProgress(req *MatchRequest, step, message string, content any) {
	if req.OnProgress != nil {
		req.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Match stores the job description, scores and explains the fit, then
// generates suggestions, reporting each stage through req.OnProgress
func (s *Service) Match(ctx context.Context, req MatchRequest) (*MatchResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	resume, err := s.Resume(ctx, req.ResumeID)
	if err != nil {
		if req.ResumeID == 0 && isNotFound(err) {
			return nil, &InputError{Field: "resume_id", Message: "no resume uploaded yet"}
		}
		return nil, err
	}

	job, err := s.AddJobDescription(ctx, req.Job)
	if err != nil {
		return nil, err
	}
	emitProgress(&req, StepJobDescription, "Parsed job description", job)

	scored, err := s.score(ctx, resume, job.Record)
	if err != nil {
		return nil, err
	}
	emitProgress(&req, StepScore, "Scored resume against job description", scored)

	fit := s.fitReport(ctx, resume, job.Record, scored)
	emitProgress(&req, StepFitSummary, "Summarized fit", fit.Summary)

	suggested, err := s.suggest(ctx, resume, job.Record, scored, req.MaxSuggestions, "")
	if err != nil {
		return nil, err
	}
	emitProgress(&req, StepSuggestions, "Generated suggestions", suggested)

	emitProgress(&req, StepDone, "Match complete", nil)
	return &MatchResult{JobDescription: job, Fit: fit, Suggestions: suggested}, nil
}
