package analysis

import (
	"github.com/markcheno/go-talib"

	"StockAnalyzer/internal/model"
)

// week52Window is the number of trading days in a 52-week lookback.
const week52Window = 252

// MetricsConfig controls the rolling-window metrics.
type MetricsConfig struct {
	ShortWindow int // short SMA window, 50 trading days
	LongWindow  int // long SMA window, 200 trading days
	// MinTradingDays is the floor below which the long SMA (and any
	// signal depending on it) is never computed. Lets short-history
	// tickers (recent IPOs) produce partial results instead of errors.
	MinTradingDays int
}

// DefaultMetricsConfig returns the standard 50/200 crossover setup.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{ShortWindow: 50, LongWindow: 200, MinTradingDays: 200}
}

// ComputeMetrics derives per-day technical and fundamental metrics from
// a merged daily series in a single forward pass. A value at day i uses
// only days <= i. Metrics whose inputs are missing or whose window has
// not filled stay nil.
func ComputeMetrics(days []model.MergedDay, cfg MetricsConfig) []model.DailyMetrics {
	closes := make([]float64, len(days))
	for i, d := range days {
		closes[i] = d.Close
	}

	shortSMA := smaSeries(closes, cfg.ShortWindow)
	// The floor suppresses the long SMA for the whole series, not day by
	// day: a history shorter than MinTradingDays gets no long SMA at all,
	// a longer one follows the normal window rule.
	var longSMA []*float64
	if len(closes) < cfg.MinTradingDays {
		longSMA = make([]*float64, len(closes))
	} else {
		longSMA = smaSeries(closes, cfg.LongWindow)
	}

	metrics := make([]model.DailyMetrics, len(days))
	for i, d := range days {
		m := model.DailyMetrics{MergedDay: d}
		m.SMA50 = shortSMA[i]
		m.SMA200 = longSMA[i]

		m.Week52High = trailingHigh(closes, i, week52Window)
		m.PctFrom52wHigh = (d.Close - m.Week52High) / m.Week52High

		m.BVPS = bookValuePerShare(d.TotalEquity, d.SharesOutstanding)
		m.PriceToBook = priceToBook(d.Close, m.BVPS)
		m.EnterpriseValue = enterpriseValue(d.Close, d.SharesOutstanding, d.TotalDebt, d.Cash)

		metrics[i] = m
	}
	return metrics
}

// smaSeries computes a simple moving average series, nil before the
// window has filled.
func smaSeries(closes []float64, window int) []*float64 {
	out := make([]*float64, len(closes))
	if window <= 0 || len(closes) < window {
		return out
	}
	sma := talib.Sma(closes, window)
	for i := range closes {
		if i+1 < window {
			continue
		}
		v := sma[i]
		out[i] = &v
	}
	return out
}

// trailingHigh returns the maximum close over the trailing window
// ending at i, inclusive, using fewer days when fewer exist.
func trailingHigh(closes []float64, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	high := closes[start]
	for j := start + 1; j <= i; j++ {
		if closes[j] > high {
			high = closes[j]
		}
	}
	return high
}

func bookValuePerShare(equity, shares *float64) *float64 {
	if equity == nil || shares == nil || *shares == 0 {
		return nil
	}
	v := *equity / *shares
	return &v
}

func priceToBook(close float64, bvps *float64) *float64 {
	// A zero or negative book value makes the ratio meaningless;
	// propagate absence rather than an infinite or negative number.
	if bvps == nil || *bvps <= 0 {
		return nil
	}
	v := close / *bvps
	return &v
}

func enterpriseValue(close float64, shares, debt, cash *float64) *float64 {
	if shares == nil {
		return nil
	}
	v := close * *shares
	if debt != nil {
		v += *debt
	}
	if cash != nil {
		v -= *cash
	}
	return &v
}
