package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a SQLite-backed Checkpointer, grounded on the teacher's
// graph/store.SQLiteStore: single-file database, WAL mode for concurrent
// reads, one snapshot row per run overwritten on each Save.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a SQLite database at path —
// use ":memory:" for an ephemeral database — and ensures its schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("pregel/store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pregel/store: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pregel/store: set busy_timeout: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS pregel_checkpoints (
			run_id TEXT NOT NULL PRIMARY KEY,
			step INTEGER NOT NULL,
			snapshot TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("pregel/store: create pregel_checkpoints: %w", err)
	}
	return nil
}

// Save persists snapshot as the latest checkpoint for runID, overwriting
// any previous row.
func (s *SQLiteStore) Save(ctx context.Context, runID string, step int, snapshot map[string][]byte) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("pregel/store: marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pregel_checkpoints (run_id, step, snapshot, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(run_id) DO UPDATE SET step = excluded.step, snapshot = excluded.snapshot, updated_at = CURRENT_TIMESTAMP
	`, runID, step, string(data))
	if err != nil {
		return fmt.Errorf("pregel/store: save checkpoint: %w", err)
	}
	return nil
}

// Load returns the most recently saved snapshot for runID.
func (s *SQLiteStore) Load(ctx context.Context, runID string) (int, map[string][]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var step int
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT step, snapshot FROM pregel_checkpoints WHERE run_id = ?", runID,
	).Scan(&step, &data)
	if err == sql.ErrNoRows {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, fmt.Errorf("pregel/store: load checkpoint: %w", err)
	}

	var snapshot map[string][]byte
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return 0, nil, false, fmt.Errorf("pregel/store: unmarshal snapshot: %w", err)
	}
	return step, snapshot, true, nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
