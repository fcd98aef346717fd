package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/i474232898/travel-checker/internal/planner"
)

// SQLiteStore keeps the run history in a SQLite database so it survives restarts.
type SQLiteStore struct {
	db         *sql.DB
	maxHistory int
	maxAge     time.Duration
	now        func() time.Time
}

var _ planner.RunStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
// Retention limits follow NewMemoryStore.
func NewSQLiteStore(path string, maxHistory int, maxAge time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Printf("INFO: could not set WAL mode: %v", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS runs_started_at ON runs(started_at);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply run store schema: %w", err)
	}

	return &SQLiteStore{db: db, maxHistory: maxHistory, maxAge: maxAge, now: time.Now}, nil
}

// SaveRun inserts the run and enforces retention. Write failures are logged.
func (s *SQLiteStore) SaveRun(run planner.Run) {
	payload, err := json.Marshal(run)
	if err != nil {
		log.Printf("ERROR: encode run %s: %v", run.ID, err)
		return
	}

	if _, err := s.db.Exec(`INSERT OR REPLACE INTO runs(id, started_at, payload) VALUES(?,?,?)`,
		run.ID, run.StartedAt.UnixNano(), string(payload)); err != nil {
		log.Printf("ERROR: save run %s: %v", run.ID, err)
		return
	}

	if err := s.prune(); err != nil {
		log.Printf("ERROR: prune runs: %v", err)
	}
}

// prune drops runs beyond maxHistory and older than maxAge, always keeping the newest.
func (s *SQLiteStore) prune() error {
	if s.maxHistory > 0 {
		if _, err := s.db.Exec(`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?)`, s.maxHistory); err != nil {
			return err
		}
	}
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge).UnixNano()
		if _, err := s.db.Exec(`DELETE FROM runs WHERE started_at < ? AND id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT 1)`, cutoff); err != nil {
			return err
		}
	}
	return nil
}

// Latest returns the most recent run.
func (s *SQLiteStore) Latest() (planner.Run, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return planner.Run{}, ErrNotFound
	}
	if err != nil {
		return planner.Run{}, err
	}
	return decodeRun(payload)
}

// Range returns all runs started between from and to (inclusive), oldest first.
func (s *SQLiteStore) Range(from, to time.Time) ([]planner.Run, error) {
	rows, err := s.db.Query(`SELECT payload FROM runs WHERE started_at >= ? AND started_at <= ? ORDER BY started_at`,
		from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planner.Run
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		run, err := decodeRun(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodeRun(payload string) (planner.Run, error) {
	var run planner.Run
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return planner.Run{}, fmt.Errorf("decode run: %w", err)
	}
	return run, nil
}
