// Package storage provides SQLite-based persistence for built sketches and
// run outcomes. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a sketch ID is unknown.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Sketch is a stored GameSpec together with the digest of the program
// synthesized from it.
type Sketch struct {
	ID        string
	Title     string
	SpecJSON  []byte
	SourceSHA string
	CreatedAt time.Time
}

// SketchSummary is a sketch with aggregated run statistics.
type SketchSummary struct {
	Sketch
	Runs    int
	Faults  int
	LastRun time.Time
}

// Run records how one activation of a sketch ended.
type Run struct {
	ID           int64
	SketchID     string
	Frames       int
	FaultKind    string // Empty if the run ended without a fault
	FaultMessage string
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sketches (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			spec_json TEXT NOT NULL,
			source_sha TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sketch_id TEXT NOT NULL REFERENCES sketches(id),
			frames INTEGER NOT NULL DEFAULT 0,
			fault_kind TEXT NOT NULL DEFAULT '',
			fault_message TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sketch_id ON runs(sketch_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSketch stores a sketch and returns its ID. Saving the same program
// again returns the existing ID.
func (s *Store) SaveSketch(title string, specJSON []byte, sourceSHA string) (string, error) {
	var existing string
	err := s.db.QueryRow("SELECT id FROM sketches WHERE source_sha = ?", sourceSHA).Scan(&existing)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("storage: cannot look up sketch: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		"INSERT INTO sketches (id, title, spec_json, source_sha) VALUES (?, ?, ?, ?)",
		id, title, string(specJSON), sourceSHA,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save sketch: %w", err)
	}
	return id, nil
}

// Sketch retrieves a sketch by ID. Returns ErrNotFound for unknown IDs.
func (s *Store) Sketch(id string) (*Sketch, error) {
	var sk Sketch
	var spec string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, title, spec_json, source_sha, created_at
		 FROM sketches
		 WHERE id = ?`,
		id,
	).Scan(&sk.ID, &sk.Title, &spec, &sk.SourceSHA, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sketch: %w", err)
	}

	sk.SpecJSON = []byte(spec)
	sk.CreatedAt = parseTime(createdAt)
	return &sk, nil
}

// RecentSketches lists the most recently saved sketches with run statistics.
func (s *Store) RecentSketches(limit int) ([]SketchSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.title, s.source_sha, s.created_at,
		        COUNT(r.id), COALESCE(SUM(r.fault_kind != ''), 0), MAX(r.created_at)
		 FROM sketches s
		 LEFT JOIN runs r ON r.sketch_id = s.id
		 GROUP BY s.id
		 ORDER BY s.created_at DESC, s.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sketches: %w", err)
	}
	defer rows.Close()

	var result []SketchSummary
	for rows.Next() {
		var sum SketchSummary
		var createdAt, lastRun any
		if err := rows.Scan(
			&sum.ID,
			&sum.Title,
			&sum.SourceSHA,
			&createdAt,
			&sum.Runs,
			&sum.Faults,
			&lastRun,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		sum.LastRun = parseTime(lastRun)
		result = append(result, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// RecordRun stores the outcome of a run and returns its ID.
func (s *Store) RecordRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (sketch_id, frames, fault_kind, fault_message) VALUES (?, ?, ?, ?)",
		run.SketchID, run.Frames, run.FaultKind, run.FaultMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Runs retrieves the most recent runs of a sketch, newest first.
func (s *Store) Runs(sketchID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, sketch_id, frames, fault_kind, fault_message, created_at
		 FROM runs
		 WHERE sketch_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sketchID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SketchID, &r.Frames, &r.FaultKind, &r.FaultMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
