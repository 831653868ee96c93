package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

const suggestionColumns = `id::text, session_id, data, created_at, updated_at`

// SaveSuggestions stores a generated suggestion list for a session, keeping
// the given order. Suggestions that already exist are overwritten.
func (db *DB) SaveSuggestions(ctx context.Context, sessionID int64, list []types.Suggestion) error {
	if len(list) == 0 {
		return nil
	}
	if err := schemas.ValidateDocument(schemas.KindSuggestions, &types.SuggestionSet{Suggestions: list}); err != nil {
		return fmt.Errorf("refusing to store suggestions: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range list {
		if _, err := uuid.Parse(list[i].ID); err != nil {
			return fmt.Errorf("suggestion %q has an invalid id: %w", list[i].ID, err)
		}
		blob, err := json.Marshal(&list[i])
		if err != nil {
			return fmt.Errorf("failed to marshal suggestion: %w", err)
		}
		batch.Queue(
			`INSERT INTO suggestions (id, session_id, position, status, data)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
				position = EXCLUDED.position,
				status = EXCLUDED.status,
				data = EXCLUDED.data,
				updated_at = NOW()`,
			list[i].ID, sessionID, i, string(list[i].Status), blob)
	}

	return db.inTx(ctx, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for range list {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to insert suggestion: %w", err)
			}
		}
		return br.Close()
	})
}

// GetSuggestion retrieves a suggestion by ID
func (db *DB) GetSuggestion(ctx context.Context, id string) (*SuggestionRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("suggestion %q: %w", id, ErrNotFound)
	}
	rec, err := scanSuggestion(db.pool.QueryRow(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("suggestion %s", id))
	}
	return rec, nil
}

// ListSuggestions returns a session's suggestions in generation order.
// An empty status returns every suggestion.
func (db *DB) ListSuggestions(ctx context.Context, sessionID int64, status types.Status) ([]SuggestionRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions
		 WHERE session_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY created_at, position`,
		sessionID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var out []SuggestionRecord
	for rows.Next() {
		rec, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return out, nil
}

// ResolveSuggestion locks a suggestion together with the résumé of its
// session and lets fn update both. The two rows are written back in the same
// transaction, so a suggestion is never marked applied without its edit.
func (db *DB) ResolveSuggestion(ctx context.Context, id string, fn func(resume *types.ResumeData, s *types.Suggestion) error) (*Resume, *SuggestionRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, fmt.Errorf("suggestion %q: %w", id, ErrNotFound)
	}

	var (
		resume *Resume
		rec    *SuggestionRecord
	)
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var resumeID int64
		var err error
		rec, err = scanSuggestionWithResume(tx.QueryRow(ctx,
			`SELECT s.id::text, s.session_id, s.data, s.created_at, s.updated_at, ms.resume_id
			 FROM suggestions s
			 JOIN match_sessions ms ON ms.id = s.session_id
			 WHERE s.id = $1
			 FOR UPDATE OF s`, id), &resumeID)
		if err != nil {
			return notFound(err, fmt.Sprintf("suggestion %s", id))
		}

		resume, err = lockResume(ctx, tx, resumeID)
		if err != nil {
			return err
		}
		if err := fn(&resume.Data, &rec.Suggestion); err != nil {
			return err
		}
		if err := writeResume(ctx, tx, resume); err != nil {
			return err
		}
		return writeSuggestion(ctx, tx, rec)
	})
	if err != nil {
		return nil, nil, err
	}
	return resume, rec, nil
}

func writeSuggestion(ctx context.Context, tx pgx.Tx, rec *SuggestionRecord) error {
	blob, err := json.Marshal(&rec.Suggestion)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}
	err = tx.QueryRow(ctx,
		`UPDATE suggestions SET status = $2, data = $3, updated_at = NOW()
		 WHERE id = $1 RETURNING updated_at`,
		rec.ID, string(rec.Status), blob).Scan(&rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	return nil
}

// UpdateSuggestion overwrites a stored suggestion without touching the résumé
func (db *DB) UpdateSuggestion(ctx context.Context, s *types.Suggestion) error {
	if _, err := uuid.Parse(s.ID); err != nil {
		return fmt.Errorf("suggestion %q: %w", s.ID, ErrNotFound)
	}
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE suggestions SET status = $2, data = $3, updated_at = NOW() WHERE id = $1`,
		s.ID, string(s.Status), blob)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suggestion %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func scanSuggestion(row pgx.Row) (*SuggestionRecord, error) {
	return scanSuggestionWithResume(row)
}

func scanSuggestionWithResume(row pgx.Row, extra ...any) (*SuggestionRecord, error) {
	var rec SuggestionRecord
	var id string
	var raw []byte
	dest := append([]any{&id, &rec.SessionID, &raw, &rec.CreatedAt, &rec.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &rec.Suggestion, "suggestion"); err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}
