package insight

import "tradescope/internal/types"

// StopLossEstimate quantifies how much tighter stops would have saved.
type StopLossEstimate struct {
	Savings        float64 `json:"savings"`
	AffectedTrades int     `json:"affected_trades"`
	TargetPercent  float64 `json:"target_percent"`
}

// StopLossSavings sums, across every losing trade with a derivable entry
// value, the excess of the actual loss over targetPercent of entry notional.
// targetPercent <= 0 falls back to DefaultStopTarget.
func StopLossSavings(trades []types.Trade, targetPercent float64) (StopLossEstimate, bool) {
	if targetPercent <= 0 {
		targetPercent = DefaultStopTarget
	}
	est := StopLossEstimate{TargetPercent: targetPercent}
	for _, t := range trades {
		if !t.IsLoss() {
			continue
		}
		entry := t.EntryValue()
		if entry <= 0 {
			continue
		}
		est.AffectedTrades++
		actualLoss := -t.PnL
		targetLoss := entry * targetPercent
		if actualLoss > targetLoss {
			est.Savings += actualLoss - targetLoss
		}
	}
	if est.AffectedTrades == 0 {
		return StopLossEstimate{}, false
	}
	return est, true
}
