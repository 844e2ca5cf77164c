package insight

import (
	"fmt"

	"tradescope/internal/types"
)

// savingsFloor scales the minimum interesting dollar impact with account
// size: small accounts care about smaller numbers.
func savingsFloor(totalPnL float64) float64 {
	if totalPnL > 1000 {
		return 50
	}
	return 20
}

// GenerateValueFirst runs every money-impact calculator over accounts with
// enough history (>= 30 trades) and emits one candidate insight per
// triggered calculator, plus strength insights for exceptional metrics.
// Ordering is the prioritizer's job; the returned slice is unscored.
func GenerateValueFirst(analytics types.AnalyticsSnapshot) []Insight {
	trades := analytics.AllTrades
	floor := savingsFloor(analytics.TotalPnL)
	var out []Insight

	if est, ok := StopLossSavings(trades, DefaultStopTarget); ok && est.Savings > floor {
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryRiskManagement,
			Title:            "Tighter stops would have saved you money",
			Message:          fmt.Sprintf("Capping each loss at %.0f%% of entry value would have saved $%.0f across %d losing trades.", est.TargetPercent*100, est.Savings, est.AffectedTrades),
			PotentialSavings: est.Savings,
			Impact:           4,
			AffectedTrades:   est.AffectedTrades,
			Confidence:       confidenceForSamples(est.AffectedTrades),
			ActionDifficulty: DifficultyMedium,
			Action: &Action{
				Title:          "Tighten your stop losses",
				Steps:          []string{"Place a stop at 2% of entry value on every position", "Never widen a stop after entry"},
				ExpectedImpact: fmt.Sprintf("Save roughly $%.0f", est.Savings),
			},
		})
	}

	if est, ok := FeeOptimization(trades); ok && est.Savings > floor {
		out = append(out, Insight{
			Type:             TypeOpportunity,
			Category:         CategoryOptimization,
			Metric:           MetricCommissionEfficiency,
			Title:            "Half your fees are avoidable",
			Message:          fmt.Sprintf("You paid $%.0f in taker fees across %d trades. Maker orders could recover about $%.0f — roughly $%.0f a year at your pace.", est.TotalTakerFees, est.AffectedTrades, est.Savings, est.AnnualizedSaving),
			PotentialSavings: est.Savings,
			Impact:           2,
			AffectedTrades:   est.AffectedTrades,
			Confidence:       confidenceForSamples(est.AffectedTrades),
			ActionDifficulty: DifficultyEasy,
			Action: &Action{
				Title:          "Switch to maker orders",
				Steps:          []string{"Enter with limit orders instead of market orders"},
				ExpectedImpact: fmt.Sprintf("About $%.0f a year", est.AnnualizedSaving),
			},
		})
	}

	if est, ok := TimingEdge(trades); ok && -est.LossFromBadTiming > floor {
		badTiming := -est.LossFromBadTiming
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryTiming,
			Title:            "Certain hours are costing you money",
			Message:          fmt.Sprintf("Your three worst hours (%s UTC) cost you $%.0f, while your best hours win %.0f%% of the time versus %.0f%% overall.", hourList(est.WorstHours), badTiming, est.BestHoursWinRate, est.OverallWinRate),
			PotentialSavings: badTiming,
			Impact:           3,
			AffectedTrades:   est.AffectedTrades,
			Confidence:       confidenceForSamples(est.AffectedTrades),
			CounterIntuitive: boolPtr(true),
			Action: &Action{
				Title:          "Trade your best hours",
				Steps:          []string{fmt.Sprintf("Avoid opening positions during %s UTC", hourList(est.WorstHours)), fmt.Sprintf("Concentrate activity around %s UTC", hourList(est.BestHours))},
				ExpectedImpact: fmt.Sprintf("Avoid roughly $%.0f of poorly-timed losses", badTiming),
			},
		})
	}

	if est, ok := SymbolFocusOpportunity(trades); ok && est.Opportunity > symbolFocusFloorUSD {
		out = append(out, Insight{
			Type:             TypeOpportunity,
			Category:         CategoryOpportunity,
			Title:            fmt.Sprintf("%s is your edge", est.BestSymbol),
			Message:          fmt.Sprintf("%s averages $%.2f per trade with a %.0f%% win rate — more than 2x your other symbols ($%.2f). Shifting 70%% of your volume there projects $%.0f of extra P&L.", est.BestSymbol, est.BestAvgPnL, est.BestWinRate, est.OthersAvgPnL, est.Opportunity),
			PotentialSavings: est.Opportunity,
			Impact:           3,
			AffectedTrades:   est.AffectedTrades,
			Confidence:       confidenceForSamples(est.AffectedTrades),
			CounterIntuitive: boolPtr(true),
			ActionDifficulty: DifficultyMedium,
			Action: &Action{
				Title:          fmt.Sprintf("Concentrate on %s", est.BestSymbol),
				Steps:          []string{fmt.Sprintf("Allocate the bulk of new positions to %s", est.BestSymbol), "Cut the symbols where you have no demonstrated edge"},
				ExpectedImpact: fmt.Sprintf("Roughly $%.0f of additional P&L", est.Opportunity),
			},
		})
	}

	if est, ok := LossCuttingSavings(trades); ok && est.Savings > floor {
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryBehavioral,
			Title:            "You hold losers too long",
			Message:          fmt.Sprintf("You sit in losing symbols %.1fx longer than winning ones. Cutting losses at your winner pace would have kept roughly $%.0f.", est.Ratio, est.Savings),
			PotentialSavings: est.Savings,
			Impact:           3,
			AffectedTrades:   est.AffectedTrades,
			Confidence:       confidenceForSamples(est.AffectedTrades),
			Action: &Action{
				Title:          "Cut losses at winner pace",
				Steps:          []string{"Review open losers at the hold time of your average winner", "Exit anything without a thesis at that point"},
				ExpectedImpact: fmt.Sprintf("Keep roughly $%.0f", est.Savings),
			},
		})
	}

	if analytics.WinRate >= 60 {
		out = append(out, Insight{
			Type:       TypeStrength,
			Category:   CategoryPerformance,
			Metric:     MetricWinRate,
			Title:      "Your win rate is a real strength",
			Message:    fmt.Sprintf("A %.0f%% win rate over %d trades puts you well above the typical trader.", analytics.WinRate, analytics.TotalTrades),
			Impact:     2,
			DataPoints: analytics.TotalTrades,
			Confidence: confidenceForSamples(analytics.TotalTrades),
		})
	}
	if analytics.ProfitFactor >= 1.8 {
		out = append(out, Insight{
			Type:       TypeStrength,
			Category:   CategoryPerformance,
			Metric:     MetricProfitFactor,
			Title:      "Strong profit factor",
			Message:    fmt.Sprintf("A profit factor of %.2f means you earn $%.2f for every dollar you lose.", analytics.ProfitFactor, analytics.ProfitFactor),
			Impact:     2,
			DataPoints: analytics.TotalTrades,
			Confidence: confidenceForSamples(analytics.TotalTrades),
		})
	}

	return out
}

func hourList(hours []types.HourStats) string {
	out := ""
	for i, h := range hours {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%02d:00", h.Hour)
	}
	return out
}
