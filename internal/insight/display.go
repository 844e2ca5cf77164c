package insight

import (
	"fmt"
	"math"

	"tradescope/internal/types"
)

// Urgency is the severity label the UI renders on a card.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// VisualPriority selects the card treatment.
type VisualPriority string

const (
	PriorityHero     VisualPriority = "hero"
	PriorityFeatured VisualPriority = "featured"
	PriorityStandard VisualPriority = "standard"
)

// Enhance decorates scored insights for rendering: formatted dollar strings,
// urgency and visual tier from the score, and the user-vs-peer benchmark
// comparison for insights tagged with a metric. Pure formatting; no new
// signal is introduced here.
func Enhance(list []Insight, analytics types.AnalyticsSnapshot, table Table) []Insight {
	out := make([]Insight, len(list))
	for i, in := range list {
		if in.PotentialSavings > 0 {
			in.FormattedSavings = fmt.Sprintf("$%.0f", math.Round(in.PotentialSavings))
		}
		in.Urgency = urgencyForScore(in.Score)
		in.VisualPriority = priorityForScore(in.Score)
		if in.Metric != MetricNone {
			if value, ok := MetricValue(analytics, in.Metric); ok {
				if cmp, ok := table.Compare(value, in.Metric); ok {
					in.Benchmark = &cmp
				}
			}
		}
		out[i] = in
	}
	return out
}

func urgencyForScore(score int) Urgency {
	switch {
	case score >= 80:
		return UrgencyCritical
	case score >= 60:
		return UrgencyHigh
	case score >= 40:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func priorityForScore(score int) VisualPriority {
	switch {
	case score >= 80:
		return PriorityHero
	case score >= 60:
		return PriorityFeatured
	default:
		return PriorityStandard
	}
}

// MetricValue extracts the user's value for a benchmark metric from the
// analytics snapshot. ok=false when the snapshot cannot express it (for
// example commission efficiency with zero commission paid).
func MetricValue(analytics types.AnalyticsSnapshot, m Metric) (float64, bool) {
	switch m {
	case MetricWinRate:
		return analytics.WinRate, true
	case MetricProfitFactor:
		return analytics.ProfitFactor, analytics.ProfitFactor > 0
	case MetricAvgWin:
		return analytics.AvgWin, analytics.AvgWin > 0
	case MetricAvgLoss:
		if analytics.AvgLoss <= 0 {
			return 0, false
		}
		return analytics.AvgWin / analytics.AvgLoss, true
	case MetricCommissionEfficiency:
		if analytics.TotalCommission <= 0 {
			return 0, false
		}
		return analytics.TotalPnL / analytics.TotalCommission, true
	default:
		return 0, false
	}
}
