// Package pipeline ties extraction, scoring, suggestion generation and editing
// to storage: the operations behind the CLI and the HTTP API.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/suggestions"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Deps holds the collaborators of a Service. Only Store is required for the
// stored operations; nil model clients fall back to the rule-based paths.
type Deps struct {
	Store Store
	// Extraction is the model used for résumé and JD extraction; nil means rules only
	Extraction  llm.Generator
	Generator   llm.Generator
	Embedder    llm.Embedder
	Pages       fetch.PageSource
	Parsing     parsing.Options
	Suggestions suggestions.Options
	Logger      *zap.Logger
}

// Service runs the stored résumé-matching workflow
type Service struct {
	store       Store
	resumes     *parsing.ResumeParser
	jds         *parsing.JDParser
	matcher     *scoring.SemanticMatcher
	suggester   *suggestions.Generator
	pages       fetch.PageSource
	maxSuggests int
	logger      *zap.Logger
}

// NewService creates a service from deps
func NewService(deps Deps) *Service {
	logger := observability.OrNop(deps.Logger)
	if deps.Parsing.Logger == nil {
		deps.Parsing.Logger = logger
	}
	if deps.Suggestions.Logger == nil {
		deps.Suggestions.Logger = logger
	}

	s := &Service{
		store:       deps.Store,
		resumes:     parsing.NewResumeParser(deps.Extraction, deps.Parsing),
		jds:         parsing.NewJDParser(deps.Extraction, deps.Parsing),
		suggester:   suggestions.NewGenerator(deps.Generator, deps.Suggestions),
		pages:       deps.Pages,
		maxSuggests: deps.Suggestions.MaxCount,
		logger:      logger,
	}
	if deps.Embedder != nil {
		s.matcher = scoring.NewSemanticMatcher(deps.Embedder)
	}
	if s.maxSuggests <= 0 {
		s.maxSuggests = suggestions.DefaultMaxCount
	}
	return s
}

func (s *Service) requireStore() error {
	if s.store == nil {
		return ErrStorageDisabled
	}
	return nil
}

// UploadResume extracts an uploaded PDF or DOCX and stores it as the default résumé
func (s *Service) UploadResume(ctx context.Context, filename string, data []byte) (*db.Resume, types.Issues, error) {
	if err := s.requireStore(); err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, &InputError{Field: "file", Message: "uploaded file is empty"}
	}

	resume, issues, err := s.resumes.ExtractResumeBytes(ctx, data, filename)
	if err != nil {
		return nil, issues, err
	}
	rec, err := s.store.SaveResume(ctx, filename, resume)
	if err != nil {
		return nil, issues, err
	}

	s.logger.Info("resume stored",
		zap.Int64("resume_id", rec.ID),
		zap.String("filename", filename),
		zap.Int("issues", len(issues)))
	return rec, issues, nil
}

// Resume returns the stored résumé with id, or the default résumé when id is 0
func (s *Service) Resume(ctx context.Context, id int64) (*db.Resume, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if id == 0 {
		return s.store.GetDefaultResume(ctx)
	}
	return s.store.GetResume(ctx, id)
}

// JobInput names where a job description comes from: pasted text or a URL
type JobInput struct {
	Text string
	URL  string
}

// JobResult is a stored job description with its extraction diagnostics
type JobResult struct {
	Record *db.JobDescription  `json:"job_description"`
	Meta   *ingestion.Metadata `json:"source"`
	Issues types.Issues        `json:"issues,omitempty"`
}

// AddJobDescription ingests, parses and stores a job description
func (s *Service) AddJobDescription(ctx context.Context, in JobInput) (*JobResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	posting, err := s.ingest(ctx, in)
	if err != nil {
		return nil, err
	}
	jd, issues, err := s.jds.ParseJD(ctx, posting.Text)
	if err != nil {
		return nil, err
	}
	if posting.Meta.Title != "" && jd.RoleTitle == types.DefaultRoleTitle {
		jd.RoleTitle = posting.Meta.Title
	}

	rec, err := s.store.SaveJobDescription(ctx, jd, posting.Meta.URL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job description stored",
		zap.Int64("job_description_id", rec.ID),
		zap.String("role", rec.Data.RoleTitle),
		zap.String("source", posting.Meta.URL))
	return &JobResult{Record: rec, Meta: posting.Meta, Issues: issues}, nil
}

func (s *Service) ingest(ctx context.Context, in JobInput) (*ingestion.Posting, error) {
	hasText := strings.TrimSpace(in.Text) != ""
	hasURL := strings.TrimSpace(in.URL) != ""
	switch {
	case hasText && hasURL:
		return nil, &InputError{Message: "provide either text or url, not both"}
	case hasURL:
		if s.pages == nil {
			return nil, &InputError{Field: "url", Message: "URL ingestion is not enabled"}
		}
		return ingestion.FromURL(ctx, s.pages, strings.TrimSpace(in.URL))
	case hasText:
		return ingestion.FromText(in.Text)
	default:
		return nil, &InputError{Message: "job description text or url is required"}
	}
}

// JobDescription returns a stored job description
func (s *Service) JobDescription(ctx context.Context, id int64) (*db.JobDescription, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	return s.store.GetJobDescription(ctx, id)
}

// ScoreResult is a stored session after scoring
type ScoreResult struct {
	SessionID        int64 `json:"session_id"`
	ResumeID         int64 `json:"resume_id"`
	JobDescriptionID int64 `json:"job_description_id"`
	Evaluation
}

// pair loads the résumé (default when resumeID is 0) and the job description
func (s *Service) pair(ctx context.Context, resumeID, jdID int64) (*db.Resume, *db.JobDescription, error) {
	if err := s.requireStore(); err != nil {
		return nil, nil, err
	}
	if jdID <= 0 {
		return nil, nil, &InputError{Field: "job_description_id", Message: "is required"}
	}
	resume, err := s.Resume(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}
	jd, err := s.store.GetJobDescription(ctx, jdID)
	if err != nil {
		return nil, nil, err
	}
	return resume, jd, nil
}

// Score evaluates a stored résumé against a stored job description and
// records the result on their session
func (s *Service) Score(ctx context.Context, resumeID, jdID int64) (*ScoreResult, error) {
	resume, jd, err := s.pair(ctx, resumeID, jdID)
	if err != nil {
		return nil, err
	}
	return s.score(ctx, resume, jd)
}

func (s *Service) score(ctx context.Context, resume *db.Resume, jd *db.JobDescription) (*ScoreResult, error) {
	start := time.Now()
	ev, err := Evaluate(ctx, s.matcher, &resume.Data, &jd.Data, s.logger)
	if err != nil {
		return nil, err
	}
	session, err := s.store.UpsertSession(ctx, resume.ID, jd.ID, &ev.Breakdown, ev.SemanticFit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("pair scored",
		zap.Int64("session_id", session.ID),
		zap.Float64("ats_score", ev.Breakdown.ATSScore),
		zap.String("fit", string(ev.FitLevel())),
		zap.Duration("elapsed", time.Since(start)))
	return &ScoreResult{
		SessionID:        session.ID,
		ResumeID:         resume.ID,
		JobDescriptionID: jd.ID,
		Evaluation:       *ev,
	}, nil
}

// FitResult is the narrative fit report for a pair
type FitResult struct {
	ScoreResult
	Role        string           `json:"role"`
	Company     string           `json:"company,omitempty"`
	Summary     types.FitSummary `json:"fit_summary"`
	TopSkills   []string         `json:"top_skills"`
	TopKeywords []string         `json:"top_keywords"`
}

// Sizes of the requirement previews in a fit report
const (
	fitTopSkills   = 10
	fitTopKeywords = 15
)

// FitSummary scores the pair and explains the fit
func (s *Service) FitSummary(ctx context.Context, resumeID, jdID int64) (*FitResult, error) {
	resume, jd, err := s.pair(ctx, resumeID, jdID)
	if err != nil {
		return nil, err
	}
	scored, err := s.score(ctx, resume, jd)
	if err != nil {
		return nil, err
	}

	return s.fitReport(ctx, resume, jd, scored), nil
}

func (s *Service) fitReport(ctx context.Context, resume *db.Resume, jd *db.JobDescription, scored *ScoreResult) *FitResult {
	summary := s.suggester.FitSummary(ctx, &resume.Data, &jd.Data, scored.Breakdown.ATSScore, scored.FitLevel())
	return &FitResult{
		ScoreResult: *scored,
		Role:        jd.Data.RoleTitle,
		Company:     jd.Data.Company,
		Summary:     summary,
		TopSkills:   head(jd.Data.AllSkills(), fitTopSkills),
		TopKeywords: head(jd.Data.Keywords, fitTopKeywords),
	}
}

// SuggestResult is a freshly generated and stored batch of suggestions
type SuggestResult struct {
	SessionID   int64              `json:"session_id"`
	ATSScore    float64            `json:"ats_score"`
	Summary     string             `json:"summary,omitempty"`
	Suggestions []types.Suggestion `json:"suggestions"`
}

// Suggest generates suggestions for the pair and stores them on its session.
// maxCount <= 0 uses the configured maximum.
func (s *Service) Suggest(ctx context.Context, resumeID, jdID int64, maxCount int, feedback string) (*SuggestResult, error) {
	resume, jd, err := s.pair(ctx, resumeID, jdID)
	if err != nil {
		return nil, err
	}
	scored, err := s.score(ctx, resume, jd)
	if err != nil {
		return nil, err
	}
	return s.suggest(ctx, resume, jd, scored, maxCount, feedback)
}

func (s *Service) suggest(ctx context.Context, resume *db.Resume, jd *db.JobDescription, scored *ScoreResult, maxCount int, feedback string) (*SuggestResult, error) {
	if maxCount <= 0 {
		maxCount = s.maxSuggests
	}

	set, err := s.suggester.GenerateWithFeedback(ctx, &resume.Data, &jd.Data, maxCount, feedback)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSuggestions(ctx, scored.SessionID, set.Suggestions); err != nil {
		return nil, err
	}

	s.logger.Info("suggestions stored",
		zap.Int64("session_id", scored.SessionID),
		zap.Int("count", len(set.Suggestions)))
	return &SuggestResult{
		SessionID:   scored.SessionID,
		ATSScore:    scored.Breakdown.ATSScore,
		Summary:     set.Summary,
		Suggestions: set.Suggestions,
	}, nil
}

// Suggestions lists the stored suggestions of a session, optionally by status
func (s *Service) Suggestions(ctx context.Context, sessionID int64, status types.Status) ([]db.SuggestionRecord, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if status != "" && !validStatus(status) {
		return nil, &InputError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return s.store.ListSuggestions(ctx, sessionID, status)
}

func validStatus(st types.Status) bool {
	switch st {
	case types.StatusPending, types.StatusAccepted, types.StatusRejected, types.StatusEdited:
		return true
	}
	return false
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// isNotFound reports whether err is a missing-record error from the store
func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
