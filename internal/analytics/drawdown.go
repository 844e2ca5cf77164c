package analytics

import (
	"sort"

	"tradescope/internal/types"
)

// DetectDrawdowns walks the cumulative P&L curve in execution order and
// returns every peak-to-trough segment, largest first. Magnitude is the drop
// as a fraction of peak equity; segments from a non-positive peak are
// skipped because a percentage of nothing is noise.
func DetectDrawdowns(trades []types.Trade) []types.DrawdownSegment {
	if len(trades) == 0 {
		return nil
	}
	ordered := append([]types.Trade(nil), trades...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var segments []types.DrawdownSegment
	equity := 0.0
	peak := 0.0
	trough := 0.0
	tradesSincePeak := 0
	inDrawdown := false

	flush := func() {
		if inDrawdown && peak > 0 && trough < peak {
			segments = append(segments, types.DrawdownSegment{
				Peak:       peak,
				Trough:     trough,
				Magnitude:  (peak - trough) / peak,
				TradeCount: tradesSincePeak,
			})
		}
		inDrawdown = false
		tradesSincePeak = 0
	}

	for _, t := range ordered {
		equity += t.PnL
		if equity >= peak {
			flush()
			peak = equity
			trough = equity
			continue
		}
		inDrawdown = true
		tradesSincePeak++
		if equity < trough {
			trough = equity
		}
	}
	flush()

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Magnitude > segments[j].Magnitude
	})
	return segments
}
