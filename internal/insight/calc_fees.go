package insight

import "tradescope/internal/types"

// FeeEstimate quantifies commission recoverable by switching taker volume
// to maker orders.
type FeeEstimate struct {
	TotalTakerFees   float64 `json:"total_taker_fees"`
	Savings          float64 `json:"savings"`
	AnnualizedSaving float64 `json:"annualized_saving"`
	TradingDays      int     `json:"trading_days"`
	AffectedTrades   int     `json:"affected_trades"`
}

// FeeOptimization treats every trade with commission > 0 as taker volume and
// assumes half of those fees are recoverable. The annualized figure scales
// by distinct trading days; with no dated trades it degrades to the raw sum.
func FeeOptimization(trades []types.Trade) (FeeEstimate, bool) {
	var est FeeEstimate
	days := make(map[string]bool)
	for _, t := range trades {
		if t.Commission <= 0 {
			continue
		}
		est.AffectedTrades++
		est.TotalTakerFees += t.Commission
		if t.HasTimestamp() {
			days[t.Timestamp.UTC().Format("2006-01-02")] = true
		}
	}
	if est.AffectedTrades == 0 || est.TotalTakerFees <= 0 {
		return FeeEstimate{}, false
	}
	est.Savings = est.TotalTakerFees * makerRecovery
	est.TradingDays = len(days)
	if est.TradingDays > 0 {
		est.AnnualizedSaving = est.Savings / float64(est.TradingDays) * 365
	} else {
		est.AnnualizedSaving = est.Savings
	}
	return est, true
}
