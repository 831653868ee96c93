package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

const resumeColumns = `id, filename, data, is_default, created_at, updated_at`

// SaveResume validates and stores a résumé and makes it the default one
func (db *DB) SaveResume(ctx context.Context, filename string, data *types.ResumeData) (*Resume, error) {
	if err := schemas.ValidateDocument(schemas.KindResume, data); err != nil {
		return nil, fmt.Errorf("refusing to store resume: %w", err)
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	var r *Resume
	err = db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE resumes SET is_default = FALSE, updated_at = NOW() WHERE is_default`); err != nil {
			return fmt.Errorf("failed to clear default resume: %w", err)
		}
		row := tx.QueryRow(ctx,
			`INSERT INTO resumes (filename, data, is_default)
			 VALUES ($1, $2, TRUE)
			 RETURNING `+resumeColumns,
			filename, blob)
		var scanErr error
		r, scanErr = scanResume(row)
		if scanErr != nil {
			return fmt.Errorf("failed to insert resume: %w", scanErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetResume retrieves a résumé by ID
func (db *DB) GetResume(ctx context.Context, id int64) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("resume %d", id))
	}
	return r, nil
}

// GetDefaultResume retrieves the résumé most recently saved
func (db *DB) GetDefaultResume(ctx context.Context) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 ORDER BY is_default DESC, updated_at DESC
		 LIMIT 1`))
	if err != nil {
		return nil, notFound(err, "default resume")
	}
	return r, nil
}

// UpdateResume locks a résumé row, lets fn modify its data and writes it back.
// The result is validated before it is stored.
func (db *DB) UpdateResume(ctx context.Context, id int64, fn func(data *types.ResumeData) error) (*Resume, error) {
	var r *Resume
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		r, err = lockResume(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(&r.Data); err != nil {
			return err
		}
		return writeResume(ctx, tx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func lockResume(ctx context.Context, tx pgx.Tx, id int64) (*Resume, error) {
	r, err := scanResume(tx.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("resume %d", id))
	}
	return r, nil
}

func writeResume(ctx context.Context, tx pgx.Tx, r *Resume) error {
	if err := schemas.ValidateDocument(schemas.KindResume, &r.Data); err != nil {
		return fmt.Errorf("refusing to store resume: %w", err)
	}
	blob, err := json.Marshal(&r.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	err = tx.QueryRow(ctx,
		`UPDATE resumes SET data = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		r.ID, blob).Scan(&r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var raw []byte
	if err := row.Scan(&r.ID, &r.Filename, &raw, &r.IsDefault, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &r.Data, "resume"); err != nil {
		return nil, err
	}
	return &r, nil
}
