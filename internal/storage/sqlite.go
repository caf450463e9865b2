// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/dodgesim/internal/sim"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one stored simulation run.
type RunRecord struct {
	ID              int64
	RunID           string // UUID assigned on save
	Executor        string
	Workers         int
	Sections        bool
	Config          sim.Config
	Seed            int64
	TotalCollisions int
	Outcome         sim.Outcome
	Elapsed         time.Duration
	CreatedAt       time.Time
}

// ExecutorStats aggregates timings for one executor.
type ExecutorStats struct {
	Executor    string
	Runs        int
	AvgElapsed  time.Duration
	BestElapsed time.Duration
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			executor TEXT NOT NULL,
			workers INTEGER NOT NULL DEFAULT 0,
			sections INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL,
			obstacles INTEGER NOT NULL,
			jump_height REAL NOT NULL,
			jump_probability REAL NOT NULL,
			seed INTEGER NOT NULL,
			total_collisions INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			elapsed_us INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_executor ON runs(executor);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its generated run ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	runID := uuid.NewString()

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, executor, workers, sections, frames, obstacles, jump_height, jump_probability,
		  seed, total_collisions, outcome, elapsed_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.Executor,
		rec.Workers,
		rec.Sections,
		rec.Config.Frames,
		rec.Config.Obstacles,
		rec.Config.JumpHeight,
		rec.Config.JumpProb,
		rec.Seed,
		rec.TotalCollisions,
		rec.Outcome.String(),
		rec.Elapsed.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return runID, nil
}

const runColumns = `id, run_id, executor, workers, sections, frames, obstacles, jump_height,
		 jump_probability, seed, total_collisions, outcome, elapsed_us, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var rec RunRecord
	var outcome string
	var elapsedUS int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.Executor,
		&rec.Workers,
		&rec.Sections,
		&rec.Config.Frames,
		&rec.Config.Obstacles,
		&rec.Config.JumpHeight,
		&rec.Config.JumpProb,
		&rec.Seed,
		&rec.TotalCollisions,
		&outcome,
		&elapsedUS,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}

	rec.Outcome, err = sim.ParseOutcome(outcome)
	if err != nil {
		return rec, err
	}
	rec.Elapsed = time.Duration(elapsedUS) * time.Microsecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
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

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RunByID retrieves a run by its run ID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	rec, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &rec, nil
}

// ExecutorStats returns timing aggregates per executor, sorted by executor.
func (s *Store) ExecutorStats() ([]ExecutorStats, error) {
	rows, err := s.db.Query(
		`SELECT executor, COUNT(*), AVG(elapsed_us), MIN(elapsed_us)
		 FROM runs
		 GROUP BY executor
		 ORDER BY executor`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query executor stats: %w", err)
	}
	defer rows.Close()

	var stats []ExecutorStats
	for rows.Next() {
		var st ExecutorStats
		var avgUS float64
		var minUS int64
		if err := rows.Scan(&st.Executor, &st.Runs, &avgUS, &minUS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.AvgElapsed = time.Duration(avgUS * float64(time.Microsecond))
		st.BestElapsed = time.Duration(minUS) * time.Microsecond
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes every stored run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RecordOf builds the record for a loop that produced res.
func RecordOf(l *sim.Loop, res sim.Result) RunRecord {
	rec := RunRecord{
		Executor:        l.Executor().Name(),
		Sections:        l.Sections(),
		Config:          l.Config(),
		Seed:            l.Seed(),
		TotalCollisions: res.TotalCollisions,
		Outcome:         res.Outcome,
		Elapsed:         res.Elapsed,
	}
	if p, ok := l.Executor().(sim.Parallel); ok {
		rec.Workers = p.Workers
	}
	return rec
}
