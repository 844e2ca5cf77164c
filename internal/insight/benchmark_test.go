package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCompare(t *testing.T) {
	table := DefaultTable()

	t.Run("Top10 boundary is inclusive", func(t *testing.T) {
		cmp, ok := table.Compare(70, MetricWinRate)
		assert.True(t, ok)
		assert.Equal(t, LevelTop10, cmp.Level)
		assert.Equal(t, 90, cmp.Percentile)
		assert.Equal(t, "green", cmp.Color)
		assert.Nil(t, cmp.Gap)
	})

	t.Run("Just under top10 lands in top25", func(t *testing.T) {
		cmp, ok := table.Compare(69.9, MetricWinRate)
		assert.True(t, ok)
		assert.Equal(t, LevelTop25, cmp.Level)
		assert.Equal(t, 75, cmp.Percentile)
	})

	t.Run("Median band", func(t *testing.T) {
		cmp, ok := table.Compare(55, MetricWinRate)
		assert.True(t, ok)
		assert.Equal(t, LevelMedian, cmp.Level)
		assert.Equal(t, "yellow", cmp.Color)
	})

	t.Run("Below median band", func(t *testing.T) {
		cmp, ok := table.Compare(40, MetricWinRate)
		assert.True(t, ok)
		assert.Equal(t, LevelBelowMedian, cmp.Level)
	})

	t.Run("Bottom25 carries the gap to top25", func(t *testing.T) {
		cmp, ok := table.Compare(30, MetricWinRate)
		assert.True(t, ok)
		assert.Equal(t, LevelBottom25, cmp.Level)
		assert.Equal(t, "red", cmp.Color)
		if assert.NotNil(t, cmp.Gap) {
			assert.InDelta(t, 30.0, *cmp.Gap, 1e-9)
		}
	})

	t.Run("Unknown metric is not an error, just no comparison", func(t *testing.T) {
		_, ok := table.Compare(50, Metric("sharpe"))
		assert.False(t, ok)
	})

	t.Run("Profit factor bands", func(t *testing.T) {
		cmp, ok := table.Compare(2.5, MetricProfitFactor)
		assert.True(t, ok)
		assert.Equal(t, LevelTop10, cmp.Level)

		cmp, ok = table.Compare(0.5, MetricProfitFactor)
		assert.True(t, ok)
		assert.Equal(t, LevelBottom25, cmp.Level)
	})
}

func TestDefaultTableCoversAllMetrics(t *testing.T) {
	table := DefaultTable()
	for _, m := range []Metric{
		MetricWinRate, MetricProfitFactor, MetricAvgWin,
		MetricAvgLoss, MetricCommissionEfficiency,
	} {
		_, ok := table[m]
		assert.True(t, ok, "missing bands for %s", m)
	}
}
