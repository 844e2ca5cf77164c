package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTrades(t *testing.T) {
	payload := []byte(`[
		{"symbol": "BTCUSDT", "pnl": 42.5, "commission": 1.2, "qty": 0.5, "price": 60000, "timestamp": 1717200000000},
		{"symbol": "ETHUSDT", "realized": "-10.25", "fee": "0.8", "quantity": "2", "time": 1717200000},
		{"symbol": "SOLUSDT", "pnl": 5, "time": "2024-06-01T00:00:00Z"},
		{"symbol": "DOGEUSDT"}
	]`)

	trades, err := NormalizeTrades(payload)
	assert.NoError(t, err)
	if !assert.Len(t, trades, 4) {
		return
	}

	assert.Equal(t, "BTCUSDT", trades[0].Symbol)
	assert.InDelta(t, 42.5, trades[0].PnL, 1e-9)
	assert.InDelta(t, 1.2, trades[0].Commission, 1e-9)
	assert.InDelta(t, 0.5, trades[0].Qty, 1e-9)
	assert.InDelta(t, 60000, trades[0].Price, 1e-9)
	assert.Equal(t, time.UnixMilli(1717200000000).UTC(), trades[0].Timestamp)

	// alias fields and numeric strings
	assert.InDelta(t, -10.25, trades[1].PnL, 1e-9)
	assert.InDelta(t, 0.8, trades[1].Commission, 1e-9)
	assert.InDelta(t, 2, trades[1].Qty, 1e-9)
	assert.Equal(t, time.Unix(1717200000, 0).UTC(), trades[1].Timestamp)

	// RFC3339 strings
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), trades[2].Timestamp)

	// bare record: zero P&L, no timestamp
	assert.Zero(t, trades[3].PnL)
	assert.False(t, trades[3].HasTimestamp())
}

func TestNormalizeTradesSameInstant(t *testing.T) {
	// epoch millis and epoch seconds for the same moment normalize equally
	payload := []byte(`[
		{"symbol": "A", "timestamp": 1717200000000},
		{"symbol": "B", "timestamp": 1717200000}
	]`)
	trades, err := NormalizeTrades(payload)
	assert.NoError(t, err)
	assert.Equal(t, trades[0].Timestamp, trades[1].Timestamp)
}

func TestNormalizeTradesRejects(t *testing.T) {
	t.Run("Not JSON", func(t *testing.T) {
		_, err := NormalizeTrades([]byte(`{not json`))
		assert.Error(t, err)
	})
	t.Run("Not an array", func(t *testing.T) {
		_, err := NormalizeTrades([]byte(`{"symbol": "BTCUSDT"}`))
		assert.Error(t, err)
	})
	t.Run("Wrongly typed field", func(t *testing.T) {
		_, err := NormalizeTrades([]byte(`[{"symbol": 42}]`))
		assert.Error(t, err)
	})
	t.Run("Array items must be objects", func(t *testing.T) {
		_, err := NormalizeTrades([]byte(`[1, 2, 3]`))
		assert.Error(t, err)
	})
}

func TestNormalizeTradesEmptyArray(t *testing.T) {
	trades, err := NormalizeTrades([]byte(`[]`))
	assert.NoError(t, err)
	assert.Empty(t, trades)
}
