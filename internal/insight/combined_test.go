package insight

import (
	"fmt"
	"testing"
	"time"

	"tradescope/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCombinedEmptyInput(t *testing.T) {
	out := GenerateCombined(CombinedInput{}, DefaultScoringPolicy())
	assert.Empty(t, out, "an empty account is a valid zero-insight state")
}

func TestGenerateCombinedCapsAtFive(t *testing.T) {
	symbols := make(map[string]types.SymbolStats)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("ALT%dUSDT", i)
		symbols[name] = types.SymbolStats{
			Symbol:  name,
			Trades:  12,
			NetPnL:  -250,
			WinRate: 25,
		}
	}
	input := CombinedInput{
		Analytics: types.AnalyticsSnapshot{
			TotalTrades:  96,
			WinRate:      30,
			ProfitFactor: 0.6,
			TotalPnL:     -2000,
			Symbols:      symbols,
		},
		Psychology: types.PsychologyAssessment{
			Weaknesses: []types.PsychologyWeakness{
				{Title: "Revenge trading", Message: "sizing up after losses", Severity: types.SeverityHigh, Impact: 4},
			},
		},
		Drawdowns: []types.DrawdownSegment{
			{Peak: 1000, Trough: 700, Magnitude: 0.3, TradeCount: 20},
			{Peak: 900, Trough: 800, Magnitude: 0.11, TradeCount: 8},
			{Peak: 500, Trough: 490, Magnitude: 0.02, TradeCount: 3},
		},
	}

	out := GenerateCombined(input, DefaultScoringPolicy())
	assert.LessOrEqual(t, len(out), 5)
	assert.NotEmpty(t, out)

	// weaknesses lead the dashboard
	assert.Equal(t, TypeWeakness, out[0].Type)
	seenStrength := false
	for _, in := range out {
		if in.Type == TypeStrength {
			seenStrength = true
		} else {
			assert.False(t, seenStrength, "strengths must trail everything else")
		}
	}
}

func TestGenerateCombinedDrawdownSelection(t *testing.T) {
	input := CombinedInput{
		Drawdowns: []types.DrawdownSegment{
			{Peak: 1000, Trough: 960, Magnitude: 0.04, TradeCount: 5}, // under 5%, ignored
			{Peak: 1000, Trough: 800, Magnitude: 0.2, TradeCount: 15},
		},
	}
	out := GenerateCombined(input, DefaultScoringPolicy())
	if assert.Len(t, out, 1) {
		assert.Equal(t, SourceDrawdown, out[0].Source)
		assert.Equal(t, 4, out[0].Impact, "a 20% drawdown is maximum impact")
		assert.InDelta(t, 200, out[0].PotentialSavings, 1e-9)
	}
}

func TestGenerateCombinedWorstHour(t *testing.T) {
	base := time.Date(2025, 4, 7, 14, 0, 0, 0, time.UTC)
	var trades []types.Trade
	for i := 0; i < 6; i++ {
		trades = append(trades, types.Trade{Symbol: "BTCUSDT", PnL: -40, Timestamp: base})
	}
	// profitable hour with too few trades to matter
	trades = append(trades, types.Trade{Symbol: "BTCUSDT", PnL: 500, Timestamp: base.Add(2 * time.Hour)})

	out := GenerateCombined(CombinedInput{
		Analytics: types.AnalyticsSnapshot{
			TotalTrades: len(trades),
			WinRate:     14,
			TotalPnL:    260,
			AllTrades:   trades,
		},
	}, DefaultScoringPolicy())

	var timing *Insight
	for i := range out {
		if out[i].Source == SourceTiming {
			timing = &out[i]
		}
	}
	if assert.NotNil(t, timing, "expected the worst-hour insight") {
		assert.Contains(t, timing.Title, "14:00")
		assert.InDelta(t, 240, timing.PotentialSavings, 1e-9)
		assert.Equal(t, 6, timing.AffectedTrades)
	}
}

func TestGenerateCombinedAvoidSymbols(t *testing.T) {
	out := GenerateCombined(CombinedInput{
		Analytics: types.AnalyticsSnapshot{
			TotalTrades: 30,
			Symbols: map[string]types.SymbolStats{
				"DOGEUSDT": {Symbol: "DOGEUSDT", Trades: 12, NetPnL: -300, WinRate: 25},
				"BTCUSDT":  {Symbol: "BTCUSDT", Trades: 12, NetPnL: 500, WinRate: 70},
				"PEPEUSDT": {Symbol: "PEPEUSDT", Trades: 4, NetPnL: -900, WinRate: 0}, // sample too small
			},
		},
	}, DefaultScoringPolicy())

	var symbols []string
	for _, in := range out {
		if in.Source == SourceSymbol {
			symbols = append(symbols, in.Title)
		}
	}
	if assert.Len(t, symbols, 1) {
		assert.Contains(t, symbols[0], "DOGEUSDT")
	}
}

func TestGenerateCombinedPerformance(t *testing.T) {
	t.Run("Sub-1 profit factor is a weakness", func(t *testing.T) {
		out := GenerateCombined(CombinedInput{
			Analytics: types.AnalyticsSnapshot{TotalTrades: 50, ProfitFactor: 0.7},
		}, DefaultScoringPolicy())
		found := false
		for _, in := range out {
			if in.Source == SourcePerformance && in.Metric == MetricProfitFactor {
				found = true
				assert.Equal(t, TypeWeakness, in.Type)
			}
		}
		assert.True(t, found)
	})

	t.Run("Hourly rate needs ten distinct hours", func(t *testing.T) {
		base := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
		var trades []types.Trade
		for i := 0; i < 9; i++ {
			trades = append(trades, types.Trade{PnL: 10, Timestamp: base.Add(time.Duration(i) * time.Hour)})
		}
		rate, hours, ok := hourlyRate(trades, 90)
		assert.False(t, ok)
		assert.Zero(t, rate)
		assert.Zero(t, hours)

		trades = append(trades, types.Trade{PnL: 10, Timestamp: base.Add(9 * time.Hour)})
		rate, hours, ok = hourlyRate(trades, 100)
		assert.True(t, ok)
		assert.Equal(t, 10, hours)
		assert.InDelta(t, 10, rate, 1e-9)
	})
}

func TestGenerateCombinedPsychologyFilter(t *testing.T) {
	out := GenerateCombined(CombinedInput{
		Psychology: types.PsychologyAssessment{
			Weaknesses: []types.PsychologyWeakness{
				{Title: "Tilt", Severity: types.SeverityHigh, Impact: 2},
				{Title: "Mild overtrading", Severity: types.SeverityLow, Impact: 2}, // filtered
				{Title: "Oversizing", Severity: types.SeverityMedium, Impact: 3},
			},
		},
	}, DefaultScoringPolicy())

	var titles []string
	for _, in := range out {
		if in.Source == SourcePsychology {
			titles = append(titles, in.Title)
		}
	}
	assert.ElementsMatch(t, []string{"Tilt", "Oversizing"}, titles)
}
