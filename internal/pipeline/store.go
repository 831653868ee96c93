package pipeline

import (
	"context"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Store is the persistence the service needs. *db.DB implements it.
type Store interface {
	SaveResume(ctx context.Context, filename string, data *types.ResumeData) (*db.Resume, error)
	GetResume(ctx context.Context, id int64) (*db.Resume, error)
	GetDefaultResume(ctx context.Context) (*db.Resume, error)

	SaveJobDescription(ctx context.Context, jd *types.JobDescription, sourceURL string) (*db.JobDescription, error)
	GetJobDescription(ctx context.Context, id int64) (*db.JobDescription, error)

	UpsertSession(ctx context.Context, resumeID, jdID int64, score *types.ScoreBreakdown, fit *types.SemanticFit) (*db.Session, error)
	GetSession(ctx context.Context, id int64) (*db.Session, error)

	SaveSuggestions(ctx context.Context, sessionID int64, list []types.Suggestion) error
	GetSuggestion(ctx context.Context, id string) (*db.SuggestionRecord, error)
	ListSuggestions(ctx context.Context, sessionID int64, status types.Status) ([]db.SuggestionRecord, error)
	UpdateSuggestion(ctx context.Context, s *types.Suggestion) error
	ResolveSuggestion(ctx context.Context, id string, fn func(resume *types.ResumeData, s *types.Suggestion) error) (*db.Resume, *db.SuggestionRecord, error)
}

var _ Store = (*db.DB)(nil)
