package record

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteRecorder persists traces to SQLite.
// It is suitable for single-process production use.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteRecorder creates a new SQLite trace recorder.
// The path should be a file path (e.g., "./traces.db") or ":memory:" for testing.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS traces (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			op_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			trace TEXT NOT NULL,
			scheduled_at TEXT NOT NULL,
			destroyed_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_traces_kind
		ON traces(kind)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record implements Recorder.
func (s *SQLiteRecorder) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrRecorderClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO traces (op_id, kind, trace, scheduled_at, destroyed_at)
		VALUES (?, ?, ?, ?, ?)
	`, int64(e.OpID), e.Kind, e.Trace,
		e.ScheduledAt.UTC().Format(time.RFC3339Nano),
		e.DestroyedAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("record trace: %w", err)
	}
	return nil
}

// List implements Recorder.
func (s *SQLiteRecorder) List(kind string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrRecorderClosed
	}

	query := `
		SELECT op_id, kind, trace, scheduled_at, destroyed_at
		FROM traces
	`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list traces: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var opID int64
		var scheduledAt, destroyedAt string
		if err := rows.Scan(&opID, &e.Kind, &e.Trace, &scheduledAt, &destroyedAt); err != nil {
			return nil, fmt.Errorf("scan trace entry: %w", err)
		}
		e.OpID = uint64(opID)
		if e.ScheduledAt, err = time.Parse(time.RFC3339Nano, scheduledAt); err != nil {
			return nil, fmt.Errorf("parse scheduled_at: %w", err)
		}
		if e.DestroyedAt, err = time.Parse(time.RFC3339Nano, destroyedAt); err != nil {
			return nil, fmt.Errorf("parse destroyed_at: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate traces: %w", err)
	}
	return entries, nil
}

// Close implements Recorder.
func (s *SQLiteRecorder) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
