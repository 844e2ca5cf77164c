package insight

import "fmt"

// Level buckets a user metric against the peer distribution.
type Level string

const (
	LevelTop10       Level = "top10"
	LevelTop25       Level = "top25"
	LevelMedian      Level = "median"
	LevelBelowMedian Level = "belowMedian"
	LevelBottom25    Level = "bottom25"
)

// Bands holds the percentile thresholds for one metric. All metrics are
// oriented so that higher is better; avgLoss is expressed as the win/loss
// ratio and commissionEfficiency as net P&L per fee dollar.
type Bands struct {
	Bottom25 float64 `yaml:"bottom25"`
	Median   float64 `yaml:"median"`
	Top25    float64 `yaml:"top25"`
	Top10    float64 `yaml:"top10"`
}

// Table maps metric names to their percentile bands.
type Table map[Metric]Bands

// DefaultTable returns the built-in peer benchmark bands.
func DefaultTable() Table {
	return Table{
		MetricWinRate:              {Bottom25: 35, Median: 50, Top25: 60, Top10: 70},
		MetricProfitFactor:         {Bottom25: 0.8, Median: 1.2, Top25: 1.8, Top10: 2.5},
		MetricAvgWin:               {Bottom25: 20, Median: 50, Top25: 120, Top10: 250},
		MetricAvgLoss:              {Bottom25: 0.6, Median: 1.0, Top25: 1.5, Top10: 2.0},
		MetricCommissionEfficiency: {Bottom25: 1, Median: 5, Top25: 12, Top10: 25},
	}
}

// Comparison is the result of placing a user value inside the bands.
type Comparison struct {
	Metric     Metric   `json:"metric"`
	Level      Level    `json:"level"`
	Message    string   `json:"message"`
	Percentile int      `json:"percentile"`
	Color      string   `json:"color"`
	Gap        *float64 `json:"gap,omitempty"`
}

// Compare places value inside the bands for metric, checking the highest
// threshold first. Returns ok=false for metrics not present in the table;
// callers must treat that as "no comparison", not an error.
func (t Table) Compare(value float64, metric Metric) (Comparison, bool) {
	bands, ok := t[metric]
	if !ok {
		return Comparison{}, false
	}
	cmp := Comparison{Metric: metric}
	switch {
	case value >= bands.Top10:
		cmp.Level = LevelTop10
		cmp.Percentile = 90
		cmp.Color = "green"
		cmp.Message = fmt.Sprintf("Your %s is in the top 10%% of traders", metricLabel(metric))
	case value >= bands.Top25:
		cmp.Level = LevelTop25
		cmp.Percentile = 75
		cmp.Color = "green"
		cmp.Message = fmt.Sprintf("Your %s beats 3 out of 4 traders", metricLabel(metric))
	case value >= bands.Median:
		cmp.Level = LevelMedian
		cmp.Percentile = 50
		cmp.Color = "yellow"
		cmp.Message = fmt.Sprintf("Your %s is around the middle of the pack", metricLabel(metric))
	case value >= bands.Bottom25:
		cmp.Level = LevelBelowMedian
		cmp.Percentile = 35
		cmp.Color = "orange"
		cmp.Message = fmt.Sprintf("Your %s trails the typical trader", metricLabel(metric))
	default:
		cmp.Level = LevelBottom25
		cmp.Percentile = 15
		cmp.Color = "red"
		gap := bands.Top25 - value
		cmp.Gap = &gap
		cmp.Message = fmt.Sprintf("Your %s is in the bottom 25%% of traders", metricLabel(metric))
	}
	return cmp, true
}

func metricLabel(m Metric) string {
	switch m {
	case MetricWinRate:
		return "win rate"
	case MetricProfitFactor:
		return "profit factor"
	case MetricAvgWin:
		return "average win"
	case MetricAvgLoss:
		return "win/loss ratio"
	case MetricCommissionEfficiency:
		return "commission efficiency"
	default:
		return string(m)
	}
}
