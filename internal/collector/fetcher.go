package collector

import "StockAnalyzer/internal/model"

// Fetcher defines the interface for fetching raw market data. Both
// methods return series already ordered ascending by date; validating
// deeper preconditions is the analysis layer's job.
type Fetcher interface {
	// FetchDailyBars returns daily OHLCV history over a lookback
	// period such as "1y", "2y", "5y" or "max".
	FetchDailyBars(ticker, period string) ([]model.DailyBar, error)
	// FetchFundamentals returns fundamental snapshots across all
	// available sources (quarterly, annual, info).
	FetchFundamentals(ticker string) ([]model.Snapshot, error)
	Name() string
}
