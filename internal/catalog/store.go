// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records conversion outcomes in a SQLite database and writes
// run manifests for the heatmap viewer.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/heatframe/pkg/types"
)

const defaultListLimit = 100

const upsertSQL = `INSERT INTO conversions (input, output, frames, status, error, converted_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(input) DO UPDATE SET
		output = excluded.output,
		frames = excluded.frames,
		status = excluded.status,
		error = excluded.error,
		converted_at = excluded.converted_at`

// Store manages the conversion catalog database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			input TEXT PRIMARY KEY,
			output TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec, replacing any earlier record for the same input.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if _, err := s.db.ExecContext(ctx, upsertSQL, recordArgs(rec)...); err != nil {
		return fmt.Errorf("recording %s: %w", rec.Input, err)
	}
	return nil
}

// RecordAll stores every record inside one transaction.
func (s *Store) RecordAll(ctx context.Context, recs []types.ConversionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx, recordArgs(rec)...); err != nil {
			return fmt.Errorf("recording %s: %w", rec.Input, err)
		}
	}
	return tx.Commit()
}

// QueryOptions filters List results.
type QueryOptions struct {
	// Status restricts results to one conversion status. Empty means any.
	Status types.ConversionStatus

	// Limit caps the number of results (0 = default of 100).
	Limit int
}

// List returns catalog records ordered by input path.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.ConversionRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT input, output, frames, status, error, converted_at FROM conversions`
	var args []any
	if opts.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(opts.Status))
	}
	query += ` ORDER BY input LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var out []types.ConversionRecord
	for rows.Next() {
		var (
			rec     types.ConversionRecord
			status  string
			errText sql.NullString
			ts      string
		)
		if err := rows.Scan(&rec.Input, &rec.Output, &rec.Frames, &status, &errText, &ts); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.ConvertedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func recordArgs(rec types.ConversionRecord) []any {
	return []any{
		rec.Input, rec.Output, rec.Frames, string(rec.Status), nullString(rec.Error),
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
