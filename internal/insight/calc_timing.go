package insight

import (
	"sort"

	"tradescope/internal/types"
)

// TimingEstimate contrasts the trader's best and worst hours of the day.
type TimingEstimate struct {
	WorstHours        []types.HourStats `json:"worst_hours"`
	BestHours         []types.HourStats `json:"best_hours"`
	LossFromBadTiming float64           `json:"loss_from_bad_timing"`
	BestHoursWinRate  float64           `json:"best_hours_win_rate"`
	OverallWinRate    float64           `json:"overall_win_rate"`
	AffectedTrades    int               `json:"affected_trades"`
}

// TimingEdge buckets trades by UTC hour of day. Buckets need at least
// minHourTrades executions to qualify; trades without a timestamp are
// skipped. Not applicable when no bucket qualifies.
func TimingEdge(trades []types.Trade) (TimingEstimate, bool) {
	buckets := HourBuckets(trades)
	qualified := make([]types.HourStats, 0, len(buckets))
	for _, b := range buckets {
		if b.Trades >= minHourTrades {
			qualified = append(qualified, b)
		}
	}
	if len(qualified) == 0 {
		return TimingEstimate{}, false
	}
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].AvgPnL != qualified[j].AvgPnL {
			return qualified[i].AvgPnL < qualified[j].AvgPnL
		}
		return qualified[i].Hour < qualified[j].Hour
	})

	worstN := len(qualified)
	if worstN > 3 {
		worstN = 3
	}
	est := TimingEstimate{
		WorstHours: append([]types.HourStats(nil), qualified[:worstN]...),
	}
	for _, b := range est.WorstHours {
		est.LossFromBadTiming += b.TotalPnL
		est.AffectedTrades += b.Trades
	}

	bestStart := len(qualified) - 3
	if bestStart < 0 {
		bestStart = 0
	}
	best := append([]types.HourStats(nil), qualified[bestStart:]...)
	// best-first order for rendering
	sort.Slice(best, func(i, j int) bool {
		if best[i].AvgPnL != best[j].AvgPnL {
			return best[i].AvgPnL > best[j].AvgPnL
		}
		return best[i].Hour < best[j].Hour
	})
	est.BestHours = best

	bestSet := make(map[int]bool, len(best))
	for _, b := range best {
		bestSet[b.Hour] = true
	}
	var bestWins, bestDecided, wins, decided int
	for _, t := range trades {
		if !t.IsWin() && !t.IsLoss() {
			continue
		}
		decided++
		inBest := t.HasTimestamp() && bestSet[t.Timestamp.UTC().Hour()]
		if inBest {
			bestDecided++
		}
		if t.IsWin() {
			wins++
			if inBest {
				bestWins++
			}
		}
	}
	if bestDecided > 0 {
		est.BestHoursWinRate = float64(bestWins) / float64(bestDecided) * 100
	}
	if decided > 0 {
		est.OverallWinRate = float64(wins) / float64(decided) * 100
	}
	return est, true
}

// HourBuckets aggregates timestamped trades per UTC hour of day, ordered by
// hour. Trades without timestamps are excluded.
func HourBuckets(trades []types.Trade) []types.HourStats {
	byHour := make(map[int]*types.HourStats)
	wins := make(map[int]int)
	decided := make(map[int]int)
	for _, t := range trades {
		if !t.HasTimestamp() {
			continue
		}
		h := t.Timestamp.UTC().Hour()
		b, ok := byHour[h]
		if !ok {
			b = &types.HourStats{Hour: h}
			byHour[h] = b
		}
		b.Trades++
		b.TotalPnL += t.PnL
		if t.IsWin() {
			wins[h]++
			decided[h]++
		} else if t.IsLoss() {
			decided[h]++
		}
	}
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	out := make([]types.HourStats, 0, len(hours))
	for _, h := range hours {
		b := byHour[h]
		b.AvgPnL = b.TotalPnL / float64(b.Trades)
		if decided[h] > 0 {
			b.WinRate = float64(wins[h]) / float64(decided[h]) * 100
		}
		out = append(out, *b)
	}
	return out
}
