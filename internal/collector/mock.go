package collector

import (
	"time"

	"StockAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars      []model.DailyBar
	Snapshots []model.Snapshot
	BarsErr   error
	SnapsErr  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, _ string) ([]model.DailyBar, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(100, 300), nil
}

func (m *MockFetcher) FetchFundamentals(_ string) ([]model.Snapshot, error) {
	if m.SnapsErr != nil {
		return nil, m.SnapsErr
	}
	return m.Snapshots, nil
}

// GenerateBars builds a synthetic daily series drifting around basePrice.
func GenerateBars(basePrice float64, count int) []model.DailyBar {
	bars := make([]model.DailyBar, count)
	start := time.Now().UTC().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		d := start.AddDate(0, 0, i)
		bars[i] = model.DailyBar{
			Date:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return bars
}
