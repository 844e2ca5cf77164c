package insight

import (
	"testing"

	"tradescope/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestSavingsFloor(t *testing.T) {
	assert.InDelta(t, 50, savingsFloor(1001), 1e-9)
	assert.InDelta(t, 20, savingsFloor(1000), 1e-9)
	assert.InDelta(t, 20, savingsFloor(-300), 1e-9)
}

// stop-loss is the only calculator that can trigger here: no commission,
// no timestamps, no per-symbol volume.
func stopLossOnlySnapshot(lossPnL float64) types.AnalyticsSnapshot {
	return types.AnalyticsSnapshot{
		TotalTrades: 3,
		WinRate:     33,
		TotalPnL:    500,
		AllTrades: []types.Trade{
			{Symbol: "BTCUSDT", PnL: lossPnL, Qty: 1, Price: 1000},
			{Symbol: "BTCUSDT", PnL: 300},
			{Symbol: "BTCUSDT", PnL: -5},
		},
	}
}

func TestGenerateValueFirstFloorGating(t *testing.T) {
	t.Run("Savings below the floor are dropped", func(t *testing.T) {
		// loss 35 vs 2% cap of 20: savings 15, under the $20 floor
		out := GenerateValueFirst(stopLossOnlySnapshot(-35))
		assert.Empty(t, out)
	})

	t.Run("Savings above the floor are kept", func(t *testing.T) {
		// loss 45 vs cap 20: savings 25
		out := GenerateValueFirst(stopLossOnlySnapshot(-45))
		if assert.Len(t, out, 1) {
			assert.Equal(t, TypeWeakness, out[0].Type)
			assert.Equal(t, CategoryRiskManagement, out[0].Category)
			assert.InDelta(t, 25, out[0].PotentialSavings, 1e-9)
			assert.NotNil(t, out[0].Action)
		}
	})
}

func TestGenerateValueFirstSymbolEdge(t *testing.T) {
	trades := append(symbolRun("BTCUSDT", 20, 50), symbolRun("ETHUSDT", 15, 10)...)
	snap := types.AnalyticsSnapshot{
		TotalTrades: len(trades),
		WinRate:     55, // below the strength threshold
		TotalPnL:    1150,
		AllTrades:   trades,
	}

	out := GenerateValueFirst(snap)

	var focus *Insight
	for i := range out {
		if out[i].Type == TypeOpportunity && out[i].Category == CategoryOpportunity {
			focus = &out[i]
		}
	}
	if assert.NotNil(t, focus, "expected a symbol focus insight") {
		assert.Contains(t, focus.Title, "BTCUSDT")
		assert.InDelta(t, 420, focus.PotentialSavings, 1e-6)
		assert.Equal(t, ConfidenceHigh, focus.Confidence)
		if assert.NotNil(t, focus.CounterIntuitive) {
			assert.True(t, *focus.CounterIntuitive)
		}
	}
}

func TestGenerateValueFirstStrengths(t *testing.T) {
	snap := types.AnalyticsSnapshot{
		TotalTrades:  40,
		WinRate:      65,
		ProfitFactor: 2.1,
		TotalPnL:     900,
	}
	out := GenerateValueFirst(snap)

	strengths := findByType(out, TypeStrength)
	if assert.Len(t, strengths, 2) {
		metrics := []Metric{strengths[0].Metric, strengths[1].Metric}
		assert.Contains(t, metrics, MetricWinRate)
		assert.Contains(t, metrics, MetricProfitFactor)
		for _, s := range strengths {
			assert.Zero(t, s.PotentialSavings, "strengths carry no savings claim")
		}
	}
}

func TestGenerateValueFirstEmptyHistory(t *testing.T) {
	out := GenerateValueFirst(types.AnalyticsSnapshot{})
	assert.Empty(t, out)
}
