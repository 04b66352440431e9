package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"photorganiser/internal/failure"
	"photorganiser/internal/mover"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 2

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store is an open journal database.
type Store struct {
	db   *sql.DB
	path string
}

// RunRecord is everything persisted for one run.
type RunRecord struct {
	ID          string
	Root        string
	StartedAt   time.Time
	FinishedAt  time.Time
	RenameFiles bool
	Found       int
	Excluded    int
	Cancelled   bool
	Outcomes    mover.Outcomes
}

// RunSummary is a row of the runs table.
type RunSummary struct {
	ID          string
	Root        string
	StartedAt   time.Time
	FinishedAt  time.Time
	RenameFiles bool
	Found       int
	Excluded    int
	Moved       int
	Failed      int
	Cancelled   bool
}

// MoveRow is a row of the moves table.
type MoveRow struct {
	OldPath   string
	NewPath   string
	Token     string
	ErrorKind string
	Error     string
}

// Open initializes or connects to the journal database.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset the journal)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun stores a run and all its move outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run RunRecord) error {
	if run.ID == "" {
		return errors.New("record run: empty id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, started_at, finished_at, rename_files, found, excluded, moved, failed, cancelled)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Root,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.RenameFiles,
		run.Found,
		run.Excluded,
		len(run.Outcomes.Moved),
		len(run.Outcomes.Failed),
		run.Cancelled,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO moves (run_id, seq, old_path, new_path, token, error_kind, error) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare move insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range run.Outcomes.InOrder() {
		_, err := stmt.ExecContext(ctx,
			run.ID,
			o.Seq,
			o.OldPath,
			nullableString(o.NewPath),
			nullableString(o.Token),
			nullableString(string(failure.KindOf(o.Err))),
			nullableString(failure.Message(o.Err)),
		)
		if err != nil {
			return fmt.Errorf("insert move %s: %w", o.OldPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, finished_at, rename_files, found, excluded, moved, failed, cancelled
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r                 RunSummary
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Root, &started, &finished, &r.RenameFiles,
			&r.Found, &r.Excluded, &r.Moved, &r.Failed, &r.Cancelled); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Moves returns the move rows of a run in the order the files were visited.
func (s *Store) Moves(ctx context.Context, runID string) ([]MoveRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT old_path, new_path, token, error_kind, error FROM moves WHERE run_id = ? ORDER BY seq, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var out []MoveRow
	for rows.Next() {
		var (
			m                                  MoveRow
			newPath, token, errorKind, message sql.NullString
		)
		if err := rows.Scan(&m.OldPath, &newPath, &token, &errorKind, &message); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.NewPath = newPath.String
		m.Token = token.String
		m.ErrorKind = errorKind.String
		m.Error = message.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// timeLayout is fixed width so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
