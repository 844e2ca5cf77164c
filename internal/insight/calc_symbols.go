package insight

import (
	"sort"

	"tradescope/internal/pkg/symbol"
	"tradescope/internal/types"
)

// SymbolFocusEstimate describes the projected gain from concentrating volume
// on the trader's demonstrably best symbol.
type SymbolFocusEstimate struct {
	BestSymbol        string  `json:"best_symbol"`
	BestAvgPnL        float64 `json:"best_avg_pnl"`
	BestWinRate       float64 `json:"best_win_rate"`
	OthersAvgPnL      float64 `json:"others_avg_pnl"`
	Opportunity       float64 `json:"opportunity"`
	QualifyingSymbols int     `json:"qualifying_symbols"`
	AffectedTrades    int     `json:"affected_trades"`
}

type symbolAgg struct {
	name    string
	trades  int
	pnl     float64
	wins    int
	decided int
}

// SymbolFocusOpportunity ranks symbols by average P&L per trade. Stablecoin
// pairs are excluded and a symbol needs minSymbolTrades executions to
// qualify. The best symbol must show positive average P&L, a win rate of at
// least 50%, and lead the mean of the other qualifying symbols by
// symbolEdgeMultiple — one hot symbol with nothing to compare against is not
// a signal. The projection reallocates reallocShare of qualifying volume to
// the best symbol; opportunities under symbolFocusFloorUSD are dropped.
func SymbolFocusOpportunity(trades []types.Trade) (SymbolFocusEstimate, bool) {
	byName := make(map[string]*symbolAgg)
	for _, t := range trades {
		if t.Symbol == "" || symbol.IsStablePair(t.Symbol) {
			continue
		}
		agg, ok := byName[t.Symbol]
		if !ok {
			agg = &symbolAgg{name: t.Symbol}
			byName[t.Symbol] = agg
		}
		agg.trades++
		agg.pnl += t.PnL
		if t.IsWin() {
			agg.wins++
			agg.decided++
		} else if t.IsLoss() {
			agg.decided++
		}
	}

	qualified := make([]*symbolAgg, 0, len(byName))
	for _, agg := range byName {
		if agg.trades >= minSymbolTrades {
			qualified = append(qualified, agg)
		}
	}
	if len(qualified) < 2 {
		return SymbolFocusEstimate{}, false
	}
	sort.Slice(qualified, func(i, j int) bool {
		ai := qualified[i].pnl / float64(qualified[i].trades)
		aj := qualified[j].pnl / float64(qualified[j].trades)
		if ai != aj {
			return ai > aj
		}
		return qualified[i].name < qualified[j].name
	})

	best := qualified[0]
	bestAvg := best.pnl / float64(best.trades)
	if bestAvg <= 0 {
		return SymbolFocusEstimate{}, false
	}
	bestWinRate := 0.0
	if best.decided > 0 {
		bestWinRate = float64(best.wins) / float64(best.decided) * 100
	}
	if bestWinRate < 50 {
		return SymbolFocusEstimate{}, false
	}

	var othersSum float64
	for _, agg := range qualified[1:] {
		othersSum += agg.pnl / float64(agg.trades)
	}
	othersAvg := othersSum / float64(len(qualified)-1)
	if bestAvg < symbolEdgeMultiple*othersAvg {
		return SymbolFocusEstimate{}, false
	}

	var totalTrades int
	var totalPnL float64
	for _, agg := range qualified {
		totalTrades += agg.trades
		totalPnL += agg.pnl
	}
	blendedAvg := totalPnL / float64(totalTrades)
	projected := reallocShare*float64(totalTrades)*bestAvg +
		(1-reallocShare)*float64(totalTrades)*blendedAvg
	opportunity := projected - totalPnL
	if opportunity <= symbolFocusFloorUSD {
		return SymbolFocusEstimate{}, false
	}

	return SymbolFocusEstimate{
		BestSymbol:        best.name,
		BestAvgPnL:        bestAvg,
		BestWinRate:       bestWinRate,
		OthersAvgPnL:      othersAvg,
		Opportunity:       opportunity,
		QualifyingSymbols: len(qualified),
		AffectedTrades:    totalTrades,
	}, true
}
