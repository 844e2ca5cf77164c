package analytics

import (
	"testing"

	"tradescope/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestComputeSnapshot(t *testing.T) {
	trades := []types.Trade{
		{Symbol: "BTCUSDT", PnL: 100, Commission: 2},
		{Symbol: "BTCUSDT", PnL: -40, Commission: 2},
		{Symbol: "ETHUSDT", PnL: 60, Commission: 1},
		{Symbol: "ETHUSDT", PnL: 0, Commission: 1}, // breakeven, neither win nor loss
	}

	snap := ComputeSnapshot(trades)

	assert.Equal(t, 4, snap.TotalTrades)
	assert.InDelta(t, 2.0/3*100, snap.WinRate, 1e-9, "breakeven trades are not decided")
	assert.InDelta(t, 120, snap.TotalPnL, 1e-9)
	assert.InDelta(t, 6, snap.TotalCommission, 1e-9)
	assert.InDelta(t, 80, snap.AvgWin, 1e-9)
	assert.InDelta(t, 40, snap.AvgLoss, 1e-9, "loss magnitude is positive")
	assert.InDelta(t, 160.0/40, snap.ProfitFactor, 1e-9)
	assert.Len(t, snap.AllTrades, 4)

	btc := snap.Symbols["BTCUSDT"]
	assert.Equal(t, 2, btc.Trades)
	assert.InDelta(t, 60, btc.NetPnL, 1e-9)
	assert.InDelta(t, 50, btc.WinRate, 1e-9)
	assert.InDelta(t, 30, btc.AvgPnL, 1e-9)

	eth := snap.Symbols["ETHUSDT"]
	assert.InDelta(t, 100, eth.WinRate, 1e-9, "breakeven excluded from win rate")
}

func TestComputeSnapshotAllWinners(t *testing.T) {
	snap := ComputeSnapshot([]types.Trade{
		{Symbol: "BTCUSDT", PnL: 10},
		{Symbol: "BTCUSDT", PnL: 20},
	})
	assert.InDelta(t, 100, snap.WinRate, 1e-9)
	assert.InDelta(t, 30, snap.ProfitFactor, 1e-9, "no losses: gross profit stands in")
	assert.Zero(t, snap.AvgLoss)
}

func TestComputeSnapshotEmpty(t *testing.T) {
	snap := ComputeSnapshot(nil)
	assert.Zero(t, snap.TotalTrades)
	assert.Zero(t, snap.WinRate)
	assert.Zero(t, snap.ProfitFactor)
	assert.Empty(t, snap.Symbols)
}

func TestComputeSnapshotDecimalStability(t *testing.T) {
	var trades []types.Trade
	for i := 0; i < 1000; i++ {
		trades = append(trades, types.Trade{Symbol: "BTCUSDT", PnL: 0.1})
	}
	snap := ComputeSnapshot(trades)
	assert.InDelta(t, 100, snap.TotalPnL, 1e-12, "accumulation must not drift")
}
