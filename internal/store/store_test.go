package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"tradescope/internal/types"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "journal.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStoreSaveAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	later := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	trades := []types.Trade{
		{Symbol: "BTCUSDT", PnL: 12.5, Commission: 0.3, Qty: 0.1, Price: 60000, Timestamp: later},
		{Symbol: "ETHUSDT", PnL: -4.25, Timestamp: earlier},
	}
	assert.NoError(t, st.SaveTrades(ctx, trades))

	got, err := st.ListTrades(ctx)
	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		// execution order, not insertion order
		assert.Equal(t, "ETHUSDT", got[0].Symbol)
		assert.Equal(t, "BTCUSDT", got[1].Symbol)
		assert.InDelta(t, 12.5, got[1].PnL, 1e-9)
		assert.InDelta(t, 0.3, got[1].Commission, 1e-9)
		assert.True(t, got[1].Timestamp.Equal(later))
	}

	n, err := st.CountTrades(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStoreSaveNothing(t *testing.T) {
	st := newTestStore(t)
	assert.NoError(t, st.SaveTrades(context.Background(), nil))

	n, err := st.CountTrades(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestStoreRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	insights, _ := json.Marshal([]map[string]any{{"title": "finding"}})
	assert.NoError(t, st.RecordRun(ctx, InsightRun{
		TraceID:    "trace-a",
		TradeCount: 12,
		Tier:       "Pattern Detection",
		Insights:   insights,
	}))
	assert.NoError(t, st.RecordRun(ctx, InsightRun{
		TraceID:    "trace-b",
		TradeCount: 13,
		Tier:       "Pattern Detection",
		Insights:   insights,
	}))

	runs, err := st.RecentRuns(ctx, 10)
	assert.NoError(t, err)
	if assert.Len(t, runs, 2) {
		assert.Equal(t, "Pattern Detection", runs[0].Tier)
		assert.JSONEq(t, string(insights), string(runs[0].Insights))
	}

	limited, err := st.RecentRuns(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, limited, 1)

	defaulted, err := st.RecentRuns(ctx, 0)
	assert.NoError(t, err)
	assert.Len(t, defaulted, 2)
}

func TestStoreRejectsEmptyPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
