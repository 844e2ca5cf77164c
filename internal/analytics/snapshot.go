// Package analytics derives the aggregate snapshot the insight engine
// consumes from a raw trade list.
package analytics

import (
	"github.com/shopspring/decimal"

	"tradescope/internal/types"
)

// ComputeSnapshot aggregates trades into an AnalyticsSnapshot. Sums are
// accumulated in decimal so that thousands of small P&L entries do not drift
// before the heuristic float math downstream.
func ComputeSnapshot(trades []types.Trade) types.AnalyticsSnapshot {
	snap := types.AnalyticsSnapshot{
		TotalTrades: len(trades),
		Symbols:     make(map[string]types.SymbolStats),
		AllTrades:   trades,
	}
	var (
		totalPnL   = decimal.Zero
		commission = decimal.Zero
		grossWin   = decimal.Zero
		grossLoss  = decimal.Zero
		wins       int
		losses     int
	)
	perSymbol := make(map[string]*symbolAccum)
	for _, t := range trades {
		pnl := decimal.NewFromFloat(t.PnL)
		totalPnL = totalPnL.Add(pnl)
		commission = commission.Add(decimal.NewFromFloat(t.Commission))
		switch {
		case t.IsWin():
			wins++
			grossWin = grossWin.Add(pnl)
		case t.IsLoss():
			losses++
			grossLoss = grossLoss.Add(pnl.Neg())
		}
		if t.Symbol != "" {
			acc, ok := perSymbol[t.Symbol]
			if !ok {
				acc = &symbolAccum{}
				perSymbol[t.Symbol] = acc
			}
			acc.add(t)
		}
	}

	decided := wins + losses
	if decided > 0 {
		snap.WinRate = float64(wins) / float64(decided) * 100
	}
	if wins > 0 {
		snap.AvgWin = grossWin.Div(decimal.NewFromInt(int64(wins))).InexactFloat64()
	}
	if losses > 0 {
		snap.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(losses))).InexactFloat64()
	}
	if grossLoss.IsPositive() {
		snap.ProfitFactor = grossWin.Div(grossLoss).InexactFloat64()
	} else if grossWin.IsPositive() {
		// all-winner history: report gross profit as the factor
		snap.ProfitFactor = grossWin.InexactFloat64()
	}
	snap.TotalPnL = totalPnL.InexactFloat64()
	snap.TotalCommission = commission.InexactFloat64()

	for name, acc := range perSymbol {
		snap.Symbols[name] = acc.stats(name)
	}
	return snap
}

type symbolAccum struct {
	trades    int
	pnl       decimal.Decimal
	grossWin  decimal.Decimal
	grossLoss decimal.Decimal
	wins      int
	decided   int
}

func (a *symbolAccum) add(t types.Trade) {
	a.trades++
	pnl := decimal.NewFromFloat(t.PnL)
	a.pnl = a.pnl.Add(pnl)
	switch {
	case t.IsWin():
		a.wins++
		a.decided++
		a.grossWin = a.grossWin.Add(pnl)
	case t.IsLoss():
		a.decided++
		a.grossLoss = a.grossLoss.Add(pnl.Neg())
	}
}

func (a *symbolAccum) stats(name string) types.SymbolStats {
	s := types.SymbolStats{
		Symbol:    name,
		Trades:    a.trades,
		NetPnL:    a.pnl.InexactFloat64(),
		GrossWin:  a.grossWin.InexactFloat64(),
		GrossLoss: a.grossLoss.InexactFloat64(),
	}
	if a.trades > 0 {
		s.AvgPnL = a.pnl.Div(decimal.NewFromInt(int64(a.trades))).InexactFloat64()
	}
	if a.decided > 0 {
		s.WinRate = float64(a.wins) / float64(a.decided) * 100
	}
	return s
}
