package insight

import (
	"fmt"
	"sort"

	"tradescope/internal/logger"
	"tradescope/internal/types"
)

// Source tags for the combined dashboard feed.
const (
	SourceValueFirst  = "value_first"
	SourceDrawdown    = "drawdown"
	SourceTiming      = "timing"
	SourceSymbol      = "symbol"
	SourcePerformance = "performance"
	SourcePsychology  = "psychology"
)

// CombinedInput carries everything the dashboard summary merges.
type CombinedInput struct {
	Analytics  types.AnalyticsSnapshot
	Psychology types.PsychologyAssessment
	Drawdowns  []types.DrawdownSegment
}

// GenerateCombined merges value-first insights with drawdown, timing,
// symbol, performance and psychology signals into one re-ranked top-5 list.
// A panic in any contributing analyzer degrades to an empty list — the
// dashboard always renders, with zero insights as a valid state.
func GenerateCombined(input CombinedInput, policy ScoringPolicy) (out []Insight) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("combined insight generation failed: %v", r)
			out = nil
		}
	}()

	candidates := tagSource(GenerateValueFirst(input.Analytics), SourceValueFirst)
	candidates = append(candidates, drawdownInsights(input.Drawdowns)...)
	candidates = append(candidates, worstHourInsight(input.Analytics.AllTrades)...)
	candidates = append(candidates, avoidSymbolInsights(input.Analytics)...)
	candidates = append(candidates, performanceInsights(input.Analytics)...)
	candidates = append(candidates, psychologyInsights(input.Psychology)...)

	ranked := Prioritize(candidates, policy)

	var firsts, strengths []Insight
	for _, in := range ranked.AllScored {
		if in.Type == TypeStrength {
			if meaningfulStrength(in) {
				strengths = append(strengths, in)
			}
			continue
		}
		firsts = append(firsts, in)
	}
	merged := append(firsts, strengths...)
	sort.SliceStable(merged, func(i, j int) bool {
		wi, wj := merged[i].Type == TypeWeakness, merged[j].Type == TypeWeakness
		if wi != wj {
			return wi
		}
		if merged[i].Impact != merged[j].Impact {
			return merged[i].Impact > merged[j].Impact
		}
		return merged[i].Score > merged[j].Score
	})
	if len(merged) > 5 {
		merged = merged[:5]
	}
	return merged
}

// meaningfulStrength keeps only strengths worth a dashboard slot.
func meaningfulStrength(in Insight) bool {
	if in.PotentialSavings > 0 {
		return true
	}
	if in.Action != nil && len(in.Action.Steps) > 0 {
		return true
	}
	return in.Score >= 65 || in.Impact >= 3
}

func tagSource(list []Insight, source string) []Insight {
	for i := range list {
		list[i].Source = source
	}
	return list
}

func drawdownInsights(drawdowns []types.DrawdownSegment) []Insight {
	significant := make([]types.DrawdownSegment, 0, len(drawdowns))
	for _, d := range drawdowns {
		if d.Magnitude > 0.05 {
			significant = append(significant, d)
		}
	}
	sort.Slice(significant, func(i, j int) bool {
		return significant[i].Magnitude > significant[j].Magnitude
	})
	if len(significant) > 2 {
		significant = significant[:2]
	}
	out := make([]Insight, 0, len(significant))
	for _, d := range significant {
		impact := 3
		if d.Magnitude > 0.15 {
			impact = 4
		}
		out = append(out, Insight{
			Type:             TypeWeakness,
			Category:         CategoryRiskManagement,
			Source:           SourceDrawdown,
			Title:            fmt.Sprintf("A %.0f%% drawdown hit your account", d.Magnitude*100),
			Message:          fmt.Sprintf("Your equity fell %.1f%% from $%.0f to $%.0f over %d trades. Drawdowns this deep take disproportionate gains to recover.", d.Magnitude*100, d.Peak, d.Trough, d.TradeCount),
			PotentialSavings: d.Peak - d.Trough,
			Impact:           impact,
			AffectedTrades:   d.TradeCount,
			Confidence:       confidenceForSamples(d.TradeCount),
		})
	}
	return out
}

// worstHourInsight flags an hour bucket with at least 5 trades and a
// negative total.
func worstHourInsight(trades []types.Trade) []Insight {
	buckets := HourBuckets(trades)
	var worst *types.HourStats
	for i := range buckets {
		b := &buckets[i]
		if b.Trades < 5 || b.TotalPnL >= 0 {
			continue
		}
		if worst == nil || b.TotalPnL < worst.TotalPnL {
			worst = b
		}
	}
	if worst == nil {
		return nil
	}
	return []Insight{{
		Type:             TypeWeakness,
		Category:         CategoryTiming,
		Source:           SourceTiming,
		Title:            fmt.Sprintf("The %02d:00 hour works against you", worst.Hour),
		Message:          fmt.Sprintf("Trades opened in the %02d:00 UTC hour have lost $%.0f in total across %d executions.", worst.Hour, -worst.TotalPnL, worst.Trades),
		PotentialSavings: -worst.TotalPnL,
		Impact:           3,
		AffectedTrades:   worst.Trades,
		Confidence:       confidenceForSamples(worst.Trades),
	}}
}

func avoidSymbolInsights(analytics types.AnalyticsSnapshot) []Insight {
	names := make([]string, 0, len(analytics.Symbols))
	for name := range analytics.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	var out []Insight
	for _, name := range names {
		s := analytics.Symbols[name]
		if s.Trades < 10 || s.NetPnL >= 0 || s.WinRate >= 40 {
			continue
		}
		out = append(out, Insight{
			Type:             TypeRecommendation,
			Category:         CategoryOpportunity,
			Source:           SourceSymbol,
			Title:            fmt.Sprintf("Consider dropping %s", name),
			Message:          fmt.Sprintf("%s has lost you $%.0f over %d trades with a %.0f%% win rate. You have no demonstrated edge there.", name, -s.NetPnL, s.Trades, s.WinRate),
			PotentialSavings: -s.NetPnL,
			Impact:           3,
			AffectedTrades:   s.Trades,
			Confidence:       confidenceForSamples(s.Trades),
		})
	}
	return out
}

func performanceInsights(analytics types.AnalyticsSnapshot) []Insight {
	var out []Insight
	if analytics.ProfitFactor > 0 && analytics.ProfitFactor < 1 {
		out = append(out, Insight{
			Type:       TypeWeakness,
			Category:   CategoryPerformance,
			Source:     SourcePerformance,
			Metric:     MetricProfitFactor,
			Title:      "You are losing more than you make",
			Message:    fmt.Sprintf("A profit factor of %.2f means every dollar won costs more than a dollar in losses. Fixing this comes before optimizing anything else.", analytics.ProfitFactor),
			Impact:     4,
			DataPoints: analytics.TotalTrades,
			Confidence: confidenceForSamples(analytics.TotalTrades),
		})
	}
	if rate, hours, ok := hourlyRate(analytics.AllTrades, analytics.TotalPnL); ok {
		in := Insight{
			Category:   CategoryPerformance,
			Source:     SourcePerformance,
			DataPoints: analytics.TotalTrades,
			Confidence: confidenceForSamples(analytics.TotalTrades),
			Impact:     2,
		}
		if rate < 0 {
			in.Type = TypeWeakness
			in.Title = "Your screen time is losing money"
			in.Message = fmt.Sprintf("Across %d active trading hours you averaged -$%.2f per hour.", hours, -rate)
			in.Impact = 3
		} else {
			in.Type = TypeStrength
			in.Title = "Your trading hour pays"
			in.Message = fmt.Sprintf("Across %d active trading hours you averaged $%.2f per hour.", hours, rate)
		}
		out = append(out, in)
	}
	return out
}

// hourlyRate needs at least 10 distinct active hours to say anything.
func hourlyRate(trades []types.Trade, totalPnL float64) (float64, int, bool) {
	seen := make(map[string]bool)
	for _, t := range trades {
		if !t.HasTimestamp() {
			continue
		}
		seen[t.Timestamp.UTC().Format("2006-01-02T15")] = true
	}
	if len(seen) < 10 {
		return 0, 0, false
	}
	return totalPnL / float64(len(seen)), len(seen), true
}

func psychologyInsights(psych types.PsychologyAssessment) []Insight {
	var out []Insight
	for _, w := range psych.Weaknesses {
		if w.Severity != types.SeverityHigh && w.Impact < 3 {
			continue
		}
		impact := w.Impact
		if impact < 1 {
			impact = 3
		}
		if impact > 4 {
			impact = 4
		}
		out = append(out, Insight{
			Type:       TypeWeakness,
			Category:   CategoryBehavioral,
			Source:     SourcePsychology,
			Title:      w.Title,
			Message:    w.Message,
			Impact:     impact,
			Confidence: ConfidenceMedium,
		})
	}
	return out
}
