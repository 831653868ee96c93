package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

const jobDescriptionColumns = `id, COALESCE(source_url, ''), content_hash, data, created_at, updated_at`

// SaveJobDescription stores a job description, or refreshes the existing row
// when a posting with the same content was saved before.
func (db *DB) SaveJobDescription(ctx context.Context, jd *types.JobDescription, sourceURL string) (*JobDescription, error) {
	if err := schemas.ValidateDocument(schemas.KindJobDescription, jd); err != nil {
		return nil, fmt.Errorf("refusing to store job description: %w", err)
	}
	blob, err := json.Marshal(jd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job description: %w", err)
	}

	hash := HashJobContent(jd.RawText)
	record, err := scanJobDescription(db.pool.QueryRow(ctx,
		`INSERT INTO job_descriptions (source_url, content_hash, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (content_hash) DO UPDATE SET
			source_url = COALESCE(EXCLUDED.source_url, job_descriptions.source_url),
			data = EXCLUDED.data,
			updated_at = NOW()
		 RETURNING `+jobDescriptionColumns,
		nilIfEmpty(sourceURL), hash, blob))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job description: %w", err)
	}
	return record, nil
}

// GetJobDescription retrieves a job description by ID
func (db *DB) GetJobDescription(ctx context.Context, id int64) (*JobDescription, error) {
	record, err := scanJobDescription(db.pool.QueryRow(ctx,
		`SELECT `+jobDescriptionColumns+` FROM job_descriptions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("job description %d", id))
	}
	return record, nil
}

func scanJobDescription(row pgx.Row) (*JobDescription, error) {
	var jd JobDescription
	var raw []byte
	if err := row.Scan(&jd.ID, &jd.SourceURL, &jd.ContentHash, &raw, &jd.CreatedAt, &jd.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &jd.Data, "job description"); err != nil {
		return nil, err
	}
	return &jd, nil
}
