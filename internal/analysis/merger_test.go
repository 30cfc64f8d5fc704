package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fptr(v float64) *float64 { return &v }

// barSeries builds consecutive daily bars with the given closes.
func barSeries(start string, closes []float64) []model.DailyBar {
	bars := make([]model.DailyBar, len(closes))
	d := day(start)
	for i, c := range closes {
		bars[i] = model.DailyBar{
			Date:   d.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func TestMerge_OrderPreservingJoin(t *testing.T) {
	prices := barSeries("2024-01-01", []float64{10, 11, 12, 13})
	merged, used, err := Merge(prices, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SourceNone, used)
	require.Len(t, merged, len(prices))
	for i, m := range merged {
		assert.True(t, m.Date.Equal(prices[i].Date), "row %d date changed", i)
		assert.Equal(t, prices[i].Close, m.Close)
		assert.Nil(t, m.TotalEquity)
		assert.Nil(t, m.SharesOutstanding)
		assert.Equal(t, model.SourceNone, m.Source)
	}
}

func TestMerge_ForwardFill(t *testing.T) {
	prices := barSeries("2024-01-01", []float64{10, 11, 12, 13, 14, 15})
	fundamentals := []model.Snapshot{
		{ReportDate: day("2024-01-03"), Source: model.SourceQuarterly, TotalEquity: fptr(1000), SharesOutstanding: fptr(100)},
		{ReportDate: day("2024-01-05"), Source: model.SourceQuarterly, TotalEquity: fptr(1200)},
	}

	merged, used, err := Merge(prices, fundamentals)
	require.NoError(t, err)
	assert.Equal(t, model.SourceQuarterly, used)

	// Days before the first snapshot stay absent.
	for _, m := range merged[:2] {
		assert.Nil(t, m.TotalEquity)
		assert.Equal(t, model.SourceNone, m.Source)
	}
	// First snapshot applies from its report date onward.
	for _, m := range merged[2:4] {
		require.NotNil(t, m.TotalEquity)
		assert.Equal(t, 1000.0, *m.TotalEquity)
		require.NotNil(t, m.SharesOutstanding)
		assert.Equal(t, 100.0, *m.SharesOutstanding)
		assert.Equal(t, model.SourceQuarterly, m.Source)
	}
	// Second snapshot replaces equity but shares carry forward.
	for _, m := range merged[4:] {
		require.NotNil(t, m.TotalEquity)
		assert.Equal(t, 1200.0, *m.TotalEquity)
		require.NotNil(t, m.SharesOutstanding)
		assert.Equal(t, 100.0, *m.SharesOutstanding)
	}
}

func TestMerge_PerFieldFallback(t *testing.T) {
	prices := barSeries("2024-01-10", []float64{20, 21})
	fundamentals := []model.Snapshot{
		{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly, TotalEquity: fptr(500)},
		{ReportDate: day("2024-01-01"), Source: model.SourceAnnual, TotalEquity: fptr(480), TotalDebt: fptr(200)},
		{ReportDate: day("2024-01-01"), Source: model.SourceInfo, SharesOutstanding: fptr(50), Cash: fptr(30)},
	}

	merged, used, err := Merge(prices, fundamentals)
	require.NoError(t, err)
	assert.Equal(t, model.SourceQuarterly, used)

	m := merged[0]
	// Equity comes from the primary source, the rest fall back field-by-field.
	require.NotNil(t, m.TotalEquity)
	assert.Equal(t, 500.0, *m.TotalEquity)
	require.NotNil(t, m.TotalDebt)
	assert.Equal(t, 200.0, *m.TotalDebt)
	require.NotNil(t, m.SharesOutstanding)
	assert.Equal(t, 50.0, *m.SharesOutstanding)
	require.NotNil(t, m.Cash)
	assert.Equal(t, 30.0, *m.Cash)
	assert.Equal(t, model.SourceQuarterly, m.Source)
}

func TestMerge_SourcePriority(t *testing.T) {
	tests := []struct {
		name         string
		fundamentals []model.Snapshot
		want         model.Source
	}{
		{
			name: "annual wins when no quarterly",
			fundamentals: []model.Snapshot{
				{ReportDate: day("2024-01-01"), Source: model.SourceAnnual, TotalEquity: fptr(100)},
				{ReportDate: day("2024-01-01"), Source: model.SourceInfo, TotalEquity: fptr(90)},
			},
			want: model.SourceAnnual,
		},
		{
			name: "info wins when alone",
			fundamentals: []model.Snapshot{
				{ReportDate: day("2024-01-01"), Source: model.SourceInfo, SharesOutstanding: fptr(10)},
			},
			want: model.SourceInfo,
		},
		{
			name: "empty snapshot contributes nothing",
			fundamentals: []model.Snapshot{
				{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly},
				{ReportDate: day("2024-01-01"), Source: model.SourceAnnual, TotalEquity: fptr(100)},
			},
			want: model.SourceAnnual,
		},
		{
			name: "no fundamentals",
			want: model.SourceNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := barSeries("2024-02-01", []float64{10, 11})
			_, used, err := Merge(prices, tt.fundamentals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, used)
		})
	}
}

func TestMerge_OrderingViolations(t *testing.T) {
	good := barSeries("2024-01-01", []float64{10, 11, 12})
	dup := append([]model.DailyBar{}, good...)
	dup[2].Date = dup[1].Date
	unsorted := append([]model.DailyBar{}, good...)
	unsorted[1], unsorted[2] = unsorted[2], unsorted[1]

	tests := []struct {
		name         string
		prices       []model.DailyBar
		fundamentals []model.Snapshot
	}{
		{name: "duplicate price date", prices: dup},
		{name: "prices out of order", prices: unsorted},
		{
			name:   "duplicate snapshot per source",
			prices: good,
			fundamentals: []model.Snapshot{
				{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly, TotalEquity: fptr(1)},
				{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly, TotalEquity: fptr(2)},
			},
		},
		{
			name:   "fundamentals out of order",
			prices: good,
			fundamentals: []model.Snapshot{
				{ReportDate: day("2024-01-05"), Source: model.SourceQuarterly},
				{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Merge(tt.prices, tt.fundamentals)
			var ordErr *InputOrderingError
			require.Error(t, err)
			assert.True(t, errors.As(err, &ordErr), "want InputOrderingError, got %v", err)
		})
	}
}

func TestMerge_SameDateDifferentSourcesAllowed(t *testing.T) {
	prices := barSeries("2024-01-02", []float64{10})
	fundamentals := []model.Snapshot{
		{ReportDate: day("2024-01-01"), Source: model.SourceQuarterly, TotalEquity: fptr(1)},
		{ReportDate: day("2024-01-01"), Source: model.SourceAnnual, TotalEquity: fptr(2)},
	}
	_, _, err := Merge(prices, fundamentals)
	assert.NoError(t, err)
}
