// Package store persists normalized trades and insight runs in SQLite via
// gorm.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	storemodel "tradescope/internal/store/model"
	"tradescope/internal/store/runlog"
	"tradescope/internal/types"
)

// Store wraps the journal database. Trades go through gorm; the run
// history reuses the same connection via the plain-SQL runlog store.
type Store struct {
	db   *gorm.DB
	runs *runlog.Store
}

// New opens (and migrates) the SQLite journal at path.
func New(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: database path cannot be empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&storemodel.TradeModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: keep the pool small so HTTP reads don't fight the
	// importer for the write lock.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	// sharing the connection keeps both stores behind one write lock
	runs, err := runlog.UseExternalDB(sqlDB)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, runs: runs}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.runs != nil {
		s.runs.Close()
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveTrades appends normalized trades to the journal.
func (s *Store) SaveTrades(ctx context.Context, trades []types.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	rows := make([]storemodel.TradeModel, 0, len(trades))
	for _, t := range trades {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("store: marshal trade: %w", err)
		}
		rows = append(rows, storemodel.TradeModel{
			Symbol:     t.Symbol,
			PnL:        decimal.NewFromFloat(t.PnL),
			Commission: decimal.NewFromFloat(t.Commission),
			Qty:        t.Qty,
			Price:      t.Price,
			ExecutedAt: t.Timestamp,
			Raw:        datatypes.JSON(raw),
		})
	}
	return s.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

// ListTrades returns every trade in execution order (trades without a
// timestamp sort first).
func (s *Store) ListTrades(ctx context.Context) ([]types.Trade, error) {
	var rows []storemodel.TradeModel
	if err := s.db.WithContext(ctx).Order("executed_at asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]types.Trade, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.Trade{
			Symbol:     r.Symbol,
			PnL:        r.PnL.InexactFloat64(),
			Commission: r.Commission.InexactFloat64(),
			Qty:        r.Qty,
			Price:      r.Price,
			Timestamp:  r.ExecutedAt,
		})
	}
	return out, nil
}

// CountTrades returns the journal size.
func (s *Store) CountTrades(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&storemodel.TradeModel{}).Count(&n).Error
	return n, err
}

// InsightRun is the persisted summary of one analysis pass.
type InsightRun struct {
	TraceID    string          `json:"trace_id"`
	TradeCount int             `json:"trade_count"`
	Tier       string          `json:"tier"`
	Insights   json.RawMessage `json:"insights"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RecordRun persists one analysis pass.
func (s *Store) RecordRun(ctx context.Context, run InsightRun) error {
	return s.runs.Append(ctx, runlog.Record{
		TraceID:    run.TraceID,
		TradeCount: run.TradeCount,
		Tier:       run.Tier,
		Insights:   run.Insights,
		CreatedAt:  run.CreatedAt,
	})
}

// RecentRuns returns the latest analysis passes, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]InsightRun, error) {
	recs, err := s.runs.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]InsightRun, 0, len(recs))
	for _, r := range recs {
		out = append(out, InsightRun{
			TraceID:    r.TraceID,
			TradeCount: r.TradeCount,
			Tier:       r.Tier,
			Insights:   r.Insights,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
