package analytics

import (
	"fmt"
	"sort"
	"time"

	"tradescope/internal/types"
)

const (
	revengeWindow      = 30 * time.Minute
	revengeSizeFactor  = 1.5
	overtradePerDay    = 15
	tiltStreakMinimum  = 5
	minAssessmentTrade = 10
)

// AssessPsychology derives behavioral weaknesses from the execution record.
// Heuristics only fire with at least minAssessmentTrade trades; all of them
// need timestamps to say anything about sequencing.
func AssessPsychology(trades []types.Trade) types.PsychologyAssessment {
	if len(trades) < minAssessmentTrade {
		return types.PsychologyAssessment{}
	}
	ordered := make([]types.Trade, 0, len(trades))
	for _, t := range trades {
		if t.HasTimestamp() {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var weaknesses []types.PsychologyWeakness
	if w, ok := detectRevengeTrading(ordered); ok {
		weaknesses = append(weaknesses, w)
	}
	if w, ok := detectOvertrading(ordered); ok {
		weaknesses = append(weaknesses, w)
	}
	if w, ok := detectLossStreakTilt(ordered); ok {
		weaknesses = append(weaknesses, w)
	}
	return types.PsychologyAssessment{Weaknesses: weaknesses}
}

// detectRevengeTrading looks for a loss followed quickly by a much larger
// position.
func detectRevengeTrading(ordered []types.Trade) (types.PsychologyWeakness, bool) {
	count := 0
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if !prev.IsLoss() || prev.Qty <= 0 || cur.Qty <= 0 {
			continue
		}
		if cur.Timestamp.Sub(prev.Timestamp) <= revengeWindow && cur.Qty >= revengeSizeFactor*prev.Qty {
			count++
		}
	}
	if count < 2 {
		return types.PsychologyWeakness{}, false
	}
	return types.PsychologyWeakness{
		Title:    "Revenge trading pattern",
		Message:  fmt.Sprintf("%d times you followed a loss within 30 minutes with a position at least 1.5x larger. Sizing up to win it back is how small losses become large ones.", count),
		Severity: types.SeverityHigh,
		Impact:   4,
	}, true
}

func detectOvertrading(ordered []types.Trade) (types.PsychologyWeakness, bool) {
	days := make(map[string]int)
	for _, t := range ordered {
		days[t.Timestamp.UTC().Format("2006-01-02")]++
	}
	if len(days) == 0 {
		return types.PsychologyWeakness{}, false
	}
	avg := float64(len(ordered)) / float64(len(days))
	if avg <= overtradePerDay {
		return types.PsychologyWeakness{}, false
	}
	return types.PsychologyWeakness{
		Title:    "Overtrading",
		Message:  fmt.Sprintf("You average %.0f trades per active day. Commission and slippage compound quickly at that pace, and decision quality drops.", avg),
		Severity: types.SeverityMedium,
		Impact:   3,
	}, true
}

func detectLossStreakTilt(ordered []types.Trade) (types.PsychologyWeakness, bool) {
	longest, current := 0, 0
	for _, t := range ordered {
		if t.IsLoss() {
			current++
			if current > longest {
				longest = current
			}
		} else if t.IsWin() {
			current = 0
		}
	}
	if longest < tiltStreakMinimum {
		return types.PsychologyWeakness{}, false
	}
	return types.PsychologyWeakness{
		Title:    "Trading through losing streaks",
		Message:  fmt.Sprintf("Your longest losing streak is %d trades without a pause. Stepping away after 3 consecutive losses protects both capital and judgment.", longest),
		Severity: types.SeverityHigh,
		Impact:   3,
	}, true
}
