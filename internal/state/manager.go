package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// Run statuses
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Manager persists the rename journal: one row per run and one per rename
type Manager struct {
	db *sql.DB
}

// RunRecord represents a single photostamp invocation
type RunRecord struct {
	ID            int64
	StartTime     time.Time
	EndTime       time.Time // zero while running
	Status        string
	OffsetSeconds int64
	TimeSource    string
	Renamed       int
	Failed        int
}

// RenameRecord represents one performed rename
type RenameRecord struct {
	ID        int64
	RunID     int64
	OldPath   string
	NewPath   string
	Timestamp time.Time
	Checksum  string    // empty when the file was too large to hash
	UndoneAt  time.Time // zero until undone

	// SkippedAt is set when undo gave up on the rename; SkipReason says why
	SkippedAt  time.Time
	SkipReason string
}

// Undone reports whether the rename was reverted
func (r RenameRecord) Undone() bool {
	return !r.UndoneAt.IsZero()
}

// Skipped reports whether undo gave up on the rename
func (r RenameRecord) Skipped() bool {
	return !r.SkippedAt.IsZero()
}

// Pending reports whether undo should still act on the rename
func (r RenameRecord) Pending() bool {
	return !r.Undone() && !r.Skipped()
}

// NewManager opens (or creates) the journal database at dbPath
func NewManager(dbPath string) (*Manager, error) {
	if dbPath == "" {
		return nil, domain.ErrJournalDisabled
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Limit connection pool to prevent "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	manager := &Manager{db: db}

	if err := manager.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return manager, nil
}

// initSchema creates the database schema
func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP,
		status TEXT NOT NULL,
		offset_seconds INTEGER NOT NULL DEFAULT 0,
		time_source TEXT NOT NULL,
		renamed INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS renames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		old_path TEXT NOT NULL,
		new_path TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		checksum TEXT NOT NULL DEFAULT '',
		undone_at TIMESTAMP,
		skipped_at TIMESTAMP,
		skip_reason TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_renames_run ON renames(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start_time DESC);
	`

	_, err := m.db.Exec(schema)
	return err
}

// BeginRun records the start of a run and returns its id
func (m *Manager) BeginRun(opts domain.RenameOptions) (int64, error) {
	res, err := m.db.Exec(
		`INSERT INTO runs (start_time, status, offset_seconds, time_source) VALUES (?, ?, ?, ?)`,
		time.Now().UTC(),
		StatusRunning,
		opts.OffsetSeconds,
		opts.Source.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return res.LastInsertId()
}

// RecordRename stores one performed rename for runID
func (m *Manager) RecordRename(runID int64, record RenameRecord) (int64, error) {
	res, err := m.db.Exec(
		`INSERT INTO renames (run_id, old_path, new_path, timestamp, checksum) VALUES (?, ?, ?, ?, ?)`,
		runID,
		record.OldPath,
		record.NewPath,
		record.Timestamp.UTC(),
		record.Checksum,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record rename: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stores the outcome counts of a run
func (m *Manager) FinishRun(runID int64, summary domain.RunSummary) error {
	renamed := summary.Count(domain.ResultRenamed)
	failed := summary.Failures()

	status := StatusSuccess
	switch {
	case failed > 0 && renamed == 0:
		status = StatusFailed
	case failed > 0:
		status = StatusPartial
	}

	_, err := m.db.Exec(
		`UPDATE runs SET end_time = ?, status = ?, renamed = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), status, renamed, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// ListRuns returns the newest runs first
func (m *Manager) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	rows, err := m.db.Query(`
		SELECT id, start_time, end_time, status, offset_seconds, time_source, renamed, failed
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return records, nil
}

// LastUndoableRun returns the newest run that still has pending renames
// (neither undone nor skipped).
// Returns domain.ErrJournalEmpty when there is none.
func (m *Manager) LastUndoableRun() (*RunRecord, error) {
	row := m.db.QueryRow(`
		SELECT id, start_time, end_time, status, offset_seconds, time_source, renamed, failed
		FROM runs
		WHERE EXISTS (SELECT 1 FROM renames WHERE renames.run_id = runs.id AND undone_at IS NULL AND skipped_at IS NULL)
		ORDER BY id DESC
		LIMIT 1
	`)

	record, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrJournalEmpty
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRenames returns the renames of a run in the order they happened
func (m *Manager) GetRenames(runID int64) ([]RenameRecord, error) {
	rows, err := m.db.Query(`
		SELECT id, run_id, old_path, new_path, timestamp, checksum, undone_at, skipped_at, skip_reason
		FROM renames
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query renames: %w", err)
	}
	defer rows.Close()

	var records []RenameRecord
	for rows.Next() {
		var (
			record  RenameRecord
			undone  sql.NullTime
			skipped sql.NullTime
		)
		err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.OldPath,
			&record.NewPath,
			&record.Timestamp,
			&record.Checksum,
			&undone,
			&skipped,
			&record.SkipReason,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rename: %w", err)
		}
		if undone.Valid {
			record.UndoneAt = undone.Time
		}
		if skipped.Valid {
			record.SkippedAt = skipped.Time
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating renames: %w", err)
	}

	return records, nil
}

// MarkUndone flags a rename as reverted
func (m *Manager) MarkUndone(renameID int64) error {
	res, err := m.db.Exec(`UPDATE renames SET undone_at = ? WHERE id = ? AND undone_at IS NULL`, time.Now().UTC(), renameID)
	if err != nil {
		return fmt.Errorf("failed to mark rename undone: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rename %d not found or already undone", renameID)
	}
	return nil
}

// MarkSkipped records that undo gave up on a rename, so later undo calls
// move on to older runs
func (m *Manager) MarkSkipped(renameID int64, reason string) error {
	res, err := m.db.Exec(
		`UPDATE renames SET skipped_at = ?, skip_reason = ? WHERE id = ? AND undone_at IS NULL AND skipped_at IS NULL`,
		time.Now().UTC(), reason, renameID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark rename skipped: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rename %d not found or no longer pending", renameID)
	}
	return nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		record RunRecord
		end    sql.NullTime
	)
	err := s.Scan(
		&record.ID,
		&record.StartTime,
		&end,
		&record.Status,
		&record.OffsetSeconds,
		&record.TimeSource,
		&record.Renamed,
		&record.Failed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return record, err
	}
	if err != nil {
		return record, fmt.Errorf("failed to scan run: %w", err)
	}
	if end.Valid {
		record.EndTime = end.Time
	}
	return record, nil
}
