// Package report renders the journal dashboard page with go-echarts.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tradescope/internal/insight"
	"tradescope/internal/types"
)

// RenderDashboard writes an HTML page with the hourly P&L profile and the
// current top insights by score.
func RenderDashboard(w io.Writer, snap types.AnalyticsSnapshot, insights []insight.Insight) error {
	page := components.NewPage()
	page.PageTitle = "tradescope journal"
	page.AddCharts(hourlyChart(snap.AllTrades), insightChart(insights), symbolChart(snap))
	return page.Render(w)
}

func hourlyChart(trades []types.Trade) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "P&L by hour of day (UTC)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	buckets := insight.HourBuckets(trades)
	labels := make([]string, 0, len(buckets))
	values := make([]opts.BarData, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, fmt.Sprintf("%02d:00", b.Hour))
		values = append(values, opts.BarData{Value: round2(b.TotalPnL)})
	}
	bar.SetXAxis(labels).AddSeries("total P&L", values)
	return bar
}

func insightChart(insights []insight.Insight) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Insight scores"}),
	)
	n := len(insights)
	if n > 8 {
		n = 8
	}
	labels := make([]string, 0, n)
	values := make([]opts.BarData, 0, n)
	for _, in := range insights[:n] {
		labels = append(labels, in.Title)
		values = append(values, opts.BarData{Value: in.Score})
	}
	bar.SetXAxis(labels).AddSeries("score", values)
	return bar
}

func symbolChart(snap types.AnalyticsSnapshot) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Net P&L by symbol"}),
	)
	names := make([]string, 0, len(snap.Symbols))
	for name := range snap.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	labels := make([]string, 0, len(names))
	values := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		labels = append(labels, name)
		values = append(values, opts.BarData{Value: round2(snap.Symbols[name].NetPnL)})
	}
	bar.SetXAxis(labels).AddSeries("net P&L", values)
	return bar
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}
