// Package runlog keeps the append-only history of insight analysis passes,
// one row per run, for trend review and debugging.
package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one persisted analysis pass.
type Record struct {
	ID         int64           `json:"id"`
	TraceID    string          `json:"trace_id"`
	TradeCount int             `json:"trade_count"`
	Tier       string          `json:"tier"`
	Insights   json.RawMessage `json:"insights"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store manages the run history table.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	ownsDB bool
}

// New opens a dedicated SQLite file for the run log.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("run log path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, ownsDB: true}, nil
}

// UseExternalDB reuses an existing SQLite connection (for example the one
// the trade store opened) so both stores share a single write lock.
func UseExternalDB(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("external db cannot be nil")
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db, ownsDB: false}, nil
}

// Close closes the underlying DB when this store owns it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	if !s.ownsDB {
		s.db = nil
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS insight_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			trace_id TEXT NOT NULL,
			trade_count INTEGER NOT NULL,
			tier TEXT,
			insights_json TEXT,
			created_at INTEGER NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_insight_runs_trace ON insight_runs(trace_id);`,
		`CREATE INDEX IF NOT EXISTS idx_insight_runs_created ON insight_runs(created_at DESC, id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("run log schema: %w", err)
		}
	}
	return nil
}

// Append persists one run.
func (s *Store) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return fmt.Errorf("run log store is closed")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO insight_runs (trace_id, trade_count, tier, insights_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.TraceID, rec.TradeCount, rec.Tier, string(rec.Insights), createdAt.Unix(),
	)
	return err
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, fmt.Errorf("run log store is closed")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trace_id, trade_count, tier, insights_json, created_at
		 FROM insight_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var insights string
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.TraceID, &rec.TradeCount, &rec.Tier, &insights, &createdAt); err != nil {
			return nil, err
		}
		rec.Insights = json.RawMessage(insights)
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
