// Package history records block evaluations in a local SQLite database so
// past runs can be inspected without re-running the solver.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID          int64
	Document    string
	BlockName   string
	StartedAt   time.Time
	Duration    time.Duration
	ExitCode    int
	Failed      bool
	Stderr      string
	StdoutBytes int
}

// Store is an append-only evaluation log backed by SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database path.
func DefaultPath() string {
	return filepath.Join(".blocksolve", "history.db")
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	document     TEXT NOT NULL,
	block        TEXT NOT NULL,
	started_at   INTEGER NOT NULL,
	duration_ns  INTEGER NOT NULL,
	exit_code    INTEGER NOT NULL,
	failed       INTEGER NOT NULL,
	stderr       TEXT NOT NULL DEFAULT '',
	stdout_bytes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_evaluations_started ON evaluations(started_at);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one evaluation.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO evaluations (document, block, started_at, duration_ns, exit_code, failed, stderr, stdout_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Document, e.BlockName, e.StartedAt.UnixNano(), int64(e.Duration),
		e.ExitCode, boolInt(e.Failed), e.Stderr, e.StdoutBytes,
	)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, document, block, started_at, duration_ns, exit_code, failed, stderr, stdout_bytes
		 FROM evaluations ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, durNS int64
		var failed int
		if err := rows.Scan(&e.ID, &e.Document, &e.BlockName, &started, &durNS,
			&e.ExitCode, &failed, &e.Stderr, &e.StdoutBytes); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.StartedAt = time.Unix(0, started)
		e.Duration = time.Duration(durNS)
		e.Failed = failed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all recorded evaluations.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
