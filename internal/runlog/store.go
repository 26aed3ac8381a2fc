package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"autopost/internal/config"
	"autopost/internal/post"
	"autopost/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases must be deleted.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was written by a different
// version of this tool.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run is one recorded session.
type Run struct {
	ID          string
	Spreadsheet string
	StartedAt   time.Time
	FinishedAt  time.Time
	Published   int
	Drafted     int
	Skipped     int
	Failed      int
}

// RowRecord is one row's stored outcome.
type RowRecord struct {
	Row      int
	Section  string
	Title    string
	Outcome  string
	PostID   int
	PostLink string
	Detail   string
}

// Store manages the run journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "autopost.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// BeginRun records the start of a session and returns its ID.
func (s *Store) BeginRun(ctx context.Context, spreadsheet string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, spreadsheet, started_at) VALUES (?, ?, ?)",
		id, spreadsheet, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// RecordRow stores one row's outcome under a run.
func (s *Store) RecordRow(ctx context.Context, runID string, status post.RowStatus) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_rows (run_id, row, section, title, outcome, post_id, post_link, detail)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, status.Row, status.Section, status.Title, string(status.Outcome),
		status.PostID, status.PostLink, status.ErrorDetail)
	if err != nil {
		return fmt.Errorf("insert row outcome: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its outcome counts.
func (s *Store) FinishRun(ctx context.Context, runID string, results []post.RowStatus) error {
	var published, drafted, skipped, failed int
	for _, status := range results {
		switch status.Outcome {
		case post.OutcomePublished:
			published++
		case post.OutcomeDraft:
			drafted++
		case post.OutcomeSkipped:
			skipped++
		case post.OutcomeFailed:
			failed++
		}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, published = ?, drafted = ?, skipped = ?, failed = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), published, drafted, skipped, failed, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, spreadsheet, started_at, COALESCE(finished_at, ''), published, drafted, skipped, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Spreadsheet, &started, &finished,
			&run.Published, &run.Drafted, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunRows returns the stored outcomes for one run in row order.
func (s *Store) RunRows(ctx context.Context, runID string) ([]RowRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("look up run: %w", err)
	}
	if exists == 0 {
		return nil, services.Wrap(services.ErrNotFound, "runlog", "list run rows",
			fmt.Sprintf("no run with id %s", runID), nil)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row, section, title, outcome, post_id, post_link, detail
         FROM run_rows WHERE run_id = ? ORDER BY row`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run rows: %w", err)
	}
	defer rows.Close()

	var records []RowRecord
	for rows.Next() {
		var record RowRecord
		if err := rows.Scan(&record.Row, &record.Section, &record.Title, &record.Outcome,
			&record.PostID, &record.PostLink, &record.Detail); err != nil {
			return nil, fmt.Errorf("scan row outcome: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
