package types

import "time"

// Trade is a single normalized execution record. The ingest layer owns
// creation; everything downstream treats trades as read-only.
type Trade struct {
	Symbol     string    `json:"symbol"`
	PnL        float64   `json:"pnl"`
	Commission float64   `json:"commission"`
	Qty        float64   `json:"qty"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}

// HasTimestamp reports whether the trade carries a usable execution time.
// Trades without one are skipped by time-based calculators rather than
// aborting the whole pass.
func (t Trade) HasTimestamp() bool {
	return !t.Timestamp.IsZero()
}

// IsWin / IsLoss treat pnl == 0 as neither.
func (t Trade) IsWin() bool  { return t.PnL > 0 }
func (t Trade) IsLoss() bool { return t.PnL < 0 }

// EntryValue approximates the notional entered on this execution.
func (t Trade) EntryValue() float64 {
	if t.Qty <= 0 || t.Price <= 0 {
		return 0
	}
	return t.Qty * t.Price
}
