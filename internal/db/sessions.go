package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

const sessionColumns = `id, resume_id, job_description_id, score, semantic_fit, created_at, updated_at`

// UpsertSession records the latest scores for a résumé and job description pair.
// A nil fit keeps the previously stored one.
func (db *DB) UpsertSession(ctx context.Context, resumeID, jdID int64, score *types.ScoreBreakdown, fit *types.SemanticFit) (*Session, error) {
	scoreBlob, err := nullableJSON(score, score == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score: %w", err)
	}
	fitBlob, err := nullableJSON(fit, fit == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal semantic fit: %w", err)
	}

	s, err := scanSession(db.pool.QueryRow(ctx,
		`INSERT INTO match_sessions (resume_id, job_description_id, score, semantic_fit)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (resume_id, job_description_id) DO UPDATE SET
			score = COALESCE(EXCLUDED.score, match_sessions.score),
			semantic_fit = COALESCE(EXCLUDED.semantic_fit, match_sessions.semantic_fit),
			updated_at = NOW()
		 RETURNING `+sessionColumns,
		resumeID, jdID, scoreBlob, fitBlob))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert session: %w", err)
	}
	return s, nil
}

// GetSession retrieves a session by ID
func (db *DB) GetSession(ctx context.Context, id int64) (*Session, error) {
	s, err := scanSession(db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM match_sessions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("session %d", id))
	}
	return s, nil
}

// GetSessionByPair retrieves the session for a résumé and job description
func (db *DB) GetSessionByPair(ctx context.Context, resumeID, jdID int64) (*Session, error) {
	s, err := scanSession(db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM match_sessions
		 WHERE resume_id = $1 AND job_description_id = $2`, resumeID, jdID))
	if err != nil {
		return nil, notFound(err, "session")
	}
	return s, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	var scoreRaw, fitRaw []byte
	if err := row.Scan(&s.ID, &s.ResumeID, &s.JobDescriptionID, &scoreRaw, &fitRaw, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(scoreRaw) > 0 {
		s.Score = &types.ScoreBreakdown{}
		if err := decodeJSON(scoreRaw, s.Score, "score"); err != nil {
			return nil, err
		}
	}
	if len(fitRaw) > 0 {
		s.SemanticFit = &types.SemanticFit{}
		if err := decodeJSON(fitRaw, s.SemanticFit, "semantic fit"); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
