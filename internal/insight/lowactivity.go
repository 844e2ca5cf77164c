package insight

import (
	"fmt"
	"math"

	"tradescope/internal/types"
)

// UnlockProgress describes how close the user is to the next tier.
type UnlockProgress struct {
	NextTier     string  `json:"next_tier"`
	TradesNeeded int     `json:"trades_needed"`
	Progress     float64 `json:"progress"` // 0..100
}

// LowActivityReport is the output for sparse accounts (< 30 trades).
type LowActivityReport struct {
	Insights    []Insight    `json:"insights"`
	UnlockTiers []UnlockTier `json:"unlock_tiers"`
	CurrentTier UnlockTier   `json:"current_tier"`
}

// GenerateLowActivity produces benchmark comparisons and early-warning
// patterns for accounts with sparse history. Every insight carries an
// explicit confidence label; one unlock teaser is always appended.
func GenerateLowActivity(analytics types.AnalyticsSnapshot, table Table) LowActivityReport {
	n := analytics.TotalTrades
	conf := lowActivityConfidence(n)
	var insights []Insight

	for _, m := range []Metric{MetricWinRate, MetricProfitFactor} {
		value, ok := MetricValue(analytics, m)
		if !ok {
			continue
		}
		cmp, ok := table.Compare(value, m)
		if !ok {
			continue
		}
		insights = append(insights, Insight{
			Type:       TypeBenchmark,
			Category:   CategoryPerformance,
			Metric:     m,
			Title:      fmt.Sprintf("How your %s compares", metricLabel(m)),
			Message:    fmt.Sprintf("%s (%s: %.1f).", cmp.Message, metricLabel(m), value),
			DataPoints: n,
			Impact:     2,
			Confidence: conf,
		})
	}

	if n >= 10 && analytics.AvgWin > 0 && analytics.AvgLoss > 0 {
		insights = append(insights, earlyWarnings(analytics, conf)...)
	}

	if analytics.TotalCommission > 0 &&
		analytics.TotalCommission > 0.05*math.Abs(analytics.TotalPnL) {
		insights = append(insights, Insight{
			Type:             TypeWeakness,
			Category:         CategoryOptimization,
			Metric:           MetricCommissionEfficiency,
			Title:            "Fees are eating your edge",
			Message:          fmt.Sprintf("You have paid $%.2f in commission, more than 5%% of your total P&L. Maker orders or a cheaper fee tier would keep more of what you earn.", analytics.TotalCommission),
			PotentialSavings: analytics.TotalCommission * makerRecovery,
			Impact:           2,
			DataPoints:       n,
			Confidence:       conf,
			Action: &Action{
				Title:          "Reduce your fee drag",
				Steps:          []string{"Use limit (maker) orders where possible", "Check your exchange's fee-tier requirements"},
				ExpectedImpact: fmt.Sprintf("Recover roughly $%.0f", analytics.TotalCommission*makerRecovery),
			},
		})
	}

	if n >= 5 && n < 30 {
		insights = append(insights, Insight{
			Type:       TypeEducational,
			Category:   CategoryEducation,
			Title:      "What good numbers look like",
			Message:    "Profitable traders typically sustain a win rate above 50% with a profit factor above 1.5, or a lower win rate with winners at least 2x the size of losers.",
			Impact:     1,
			DataPoints: n,
			Confidence: ConfidenceHigh,
		})
	}

	if next, ok := NextTier(n); ok {
		progress := 0.0
		if next.MinTrades > 0 {
			progress = float64(n) / float64(next.MinTrades) * 100
		}
		insights = append(insights, Insight{
			Type:     TypeUnlock,
			Category: CategoryProgression,
			Title:    fmt.Sprintf("%d trades to unlock %s", next.MinTrades-n, next.Name),
			Message:  fmt.Sprintf("Log %d more trades to unlock %s: %s.", next.MinTrades-n, next.Name, joinFeatures(next.Features)),
			Impact:   1,
			Unlock: &UnlockProgress{
				NextTier:     next.Name,
				TradesNeeded: next.MinTrades - n,
				Progress:     progress,
			},
			DataPoints: n,
			Confidence: ConfidenceHigh,
		})
	}

	return LowActivityReport{
		Insights:    insights,
		UnlockTiers: Tiers(),
		CurrentTier: CurrentTier(n),
	}
}

func earlyWarnings(analytics types.AnalyticsSnapshot, conf Confidence) []Insight {
	var out []Insight
	n := analytics.TotalTrades
	wins := int(math.Round(analytics.WinRate / 100 * float64(n)))
	losses := n - wins
	ratio := analytics.AvgWin / analytics.AvgLoss

	if ratio < 1.5 && analytics.WinRate > 50 {
		savings := 0.20 * analytics.AvgWin * float64(wins)
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryRiskManagement,
			Metric:           MetricAvgLoss,
			Title:            "You may be cutting winners early",
			Message:          fmt.Sprintf("You win %.0f%% of the time but your average win is only %.1fx your average loss. Letting winners run further usually pays for itself.", analytics.WinRate, ratio),
			PotentialSavings: savings,
			Impact:           3,
			DataPoints:       n,
			Confidence:       conf,
			Action: &Action{
				Title:          "Let winners run",
				Steps:          []string{"Set a minimum target of 1.5x your typical loss", "Scale out instead of closing the full position"},
				ExpectedImpact: fmt.Sprintf("Roughly $%.0f more from the same trades", savings),
			},
		})
	}

	if analytics.AvgLoss > 1.5*analytics.AvgWin {
		savings := 0.30 * analytics.AvgLoss * float64(losses)
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryRiskManagement,
			Metric:           MetricAvgLoss,
			Title:            "Your losses are too large",
			Message:          fmt.Sprintf("Your average loss ($%.2f) is more than 1.5x your average win ($%.2f). A few oversized losers can undo weeks of progress.", analytics.AvgLoss, analytics.AvgWin),
			PotentialSavings: savings,
			Impact:           4,
			DataPoints:       n,
			Confidence:       conf,
			Action: &Action{
				Title:          "Cap your downside",
				Steps:          []string{"Decide your exit before entering", "Size positions so a stop-out costs under 2% of account"},
				ExpectedImpact: fmt.Sprintf("Avoid roughly $%.0f of outsized losses", savings),
			},
		})
	}
	return out
}

func lowActivityConfidence(n int) Confidence {
	switch {
	case n >= 20:
		return ConfidenceHigh
	case n >= 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func joinFeatures(features []string) string {
	switch len(features) {
	case 0:
		return "more insights"
	case 1:
		return features[0]
	default:
		out := features[0]
		for _, f := range features[1:] {
			out += ", " + f
		}
		return out
	}
}
