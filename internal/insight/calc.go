package insight

// Money-impact calculators. Each is a pure function over the trade list and
// returns (estimate, ok); ok=false means "not applicable" — no qualifying
// sample, zero denominator, or the signal gate was not met. Callers must not
// render anything for ok=false. "No data" and "computed but zero" are the
// same answer on purpose: neither produces an insight.

const (
	// DefaultStopTarget caps a single loss at 2% of entry notional.
	DefaultStopTarget = 0.02

	// makerRecovery is the share of taker fees assumed recoverable by
	// switching to maker orders.
	makerRecovery = 0.5

	// minHourTrades is the sample floor for an hour-of-day bucket.
	minHourTrades = 2

	// minSymbolTrades is the per-symbol floor for focus ranking.
	minSymbolTrades = 15

	// symbolEdgeMultiple is how far the best symbol must lead the rest.
	symbolEdgeMultiple = 2.0

	// symbolFocusFloorUSD is the minimum opportunity worth surfacing.
	symbolFocusFloorUSD = 100.0

	// reallocShare is the volume share moved to the best symbol in the
	// focus projection.
	reallocShare = 0.7

	// holdRatioGate triggers the loss-cutting insight when losers are held
	// this much longer than winners.
	holdRatioGate = 1.5
)
