package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a MySQL/MariaDB-backed Checkpointer, grounded on the
// teacher's graph/store.MySQLStore: connection pooling and a single
// upserted row per run, for production workflows that must survive process
// restarts.
//
// DSN format: [user[:password]@][proto[(addr)]]/dbname[?param=value...],
// e.g. "user:password@tcp(127.0.0.1:3306)/pregel?parseTime=true". Never
// hardcode credentials; read the DSN from configuration.
type MySQLStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewMySQLStore opens a connection pool against dsn and ensures its schema
// exists.
func NewMySQLStore(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("pregel/store: open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pregel/store: ping mysql: %w", err)
	}

	s := &MySQLStore{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *MySQLStore) createTables(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS pregel_checkpoints (
			run_id VARCHAR(255) NOT NULL PRIMARY KEY,
			step INT NOT NULL,
			snapshot JSON NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("pregel/store: create pregel_checkpoints: %w", err)
	}
	return nil
}

// Save persists snapshot as the latest checkpoint for runID.
func (s *MySQLStore) Save(ctx context.Context, runID string, step int, snapshot map[string][]byte) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("pregel/store: marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pregel_checkpoints (run_id, step, snapshot)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE step = VALUES(step), snapshot = VALUES(snapshot)
	`, runID, step, data)
	if err != nil {
		return fmt.Errorf("pregel/store: save checkpoint: %w", err)
	}
	return nil
}

// Load returns the most recently saved snapshot for runID.
func (s *MySQLStore) Load(ctx context.Context, runID string) (int, map[string][]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var step int
	var data []byte
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
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, nil, false, fmt.Errorf("pregel/store: unmarshal snapshot: %w", err)
	}
	return step, snapshot, true, nil
}

// Close releases the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
