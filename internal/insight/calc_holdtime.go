package insight

import (
	"time"

	"tradescope/internal/types"
)

// HoldTimeEstimate quantifies the cost of sitting in losers longer than
// winners.
type HoldTimeEstimate struct {
	WinnerHold     time.Duration `json:"winner_hold"`
	LoserHold      time.Duration `json:"loser_hold"`
	Ratio          float64       `json:"ratio"`
	Savings        float64       `json:"savings"`
	AffectedTrades int           `json:"affected_trades"`
}

// LossCuttingSavings approximates hold time per symbol as the span from the
// first to the last timestamped trade of that symbol. This is a proxy, not
// position matching; see DESIGN.md before replacing it with FIFO pairing.
// Symbol groups are classified winner/loser by net P&L. When losing groups
// are held holdRatioGate times longer than winning ones, the estimated
// saving is (1 - 1/ratio) of the total losing-group loss.
func LossCuttingSavings(trades []types.Trade) (HoldTimeEstimate, bool) {
	type group struct {
		first, last time.Time
		pnl         float64
		trades      int
	}
	groups := make(map[string]*group)
	for _, t := range trades {
		if !t.HasTimestamp() || t.Symbol == "" {
			continue
		}
		g, ok := groups[t.Symbol]
		if !ok {
			g = &group{first: t.Timestamp, last: t.Timestamp}
			groups[t.Symbol] = g
		}
		if t.Timestamp.Before(g.first) {
			g.first = t.Timestamp
		}
		if t.Timestamp.After(g.last) {
			g.last = t.Timestamp
		}
		g.pnl += t.PnL
		g.trades++
	}

	var winSpan, lossSpan time.Duration
	var winGroups, lossGroups, lossTrades int
	var totalLoss float64
	for _, g := range groups {
		span := g.last.Sub(g.first)
		if span <= 0 {
			continue
		}
		switch {
		case g.pnl > 0:
			winSpan += span
			winGroups++
		case g.pnl < 0:
			lossSpan += span
			lossGroups++
			lossTrades += g.trades
			totalLoss += -g.pnl
		}
	}
	if winGroups == 0 || lossGroups == 0 {
		return HoldTimeEstimate{}, false
	}
	winnerHold := winSpan / time.Duration(winGroups)
	loserHold := lossSpan / time.Duration(lossGroups)
	if winnerHold <= 0 {
		return HoldTimeEstimate{}, false
	}
	ratio := float64(loserHold) / float64(winnerHold)
	if ratio < holdRatioGate {
		return HoldTimeEstimate{}, false
	}
	return HoldTimeEstimate{
		WinnerHold:     winnerHold,
		LoserHold:      loserHold,
		Ratio:          ratio,
		Savings:        (1 - 1/ratio) * totalLoss,
		AffectedTrades: lossTrades,
	}, true
}
