package analysis

import (
	"time"

	"github.com/rs/zerolog"

	"StockAnalyzer/internal/model"
)

// Analyzer runs the merge, metrics, and signal-detection passes for one
// ticker. It is stateless and reentrant: callers may analyze many
// tickers concurrently with one shared Analyzer.
type Analyzer struct {
	cfg MetricsConfig
	log zerolog.Logger
}

// NewAnalyzer creates an Analyzer with the given metrics configuration.
func NewAnalyzer(cfg MetricsConfig, log zerolog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log.With().Str("component", "analyzer").Logger()}
}

// Analyze produces the analysis result and the full per-day metrics
// series for one ticker. Missing fundamentals or a history shorter than
// the SMA windows yield a partial result with absent metrics, not an
// error; only an empty price series fails, with InsufficientDataError.
func (a *Analyzer) Analyze(ticker string, prices []model.DailyBar, fundamentals []model.Snapshot) (*model.AnalysisResult, []model.DailyMetrics, error) {
	if len(prices) == 0 {
		return nil, nil, &InsufficientDataError{Ticker: ticker}
	}

	merged, used, err := Merge(prices, fundamentals)
	if err != nil {
		return nil, nil, err
	}

	metrics := ComputeMetrics(merged, a.cfg)
	signals := DetectSignals(metrics)

	a.log.Info().
		Str("ticker", ticker).
		Int("price_rows", len(prices)).
		Str("fundamentals_used", string(used)).
		Int("signals", len(signals)).
		Msg("analysis complete")

	result := &model.AnalysisResult{
		Ticker:           ticker,
		GeneratedAt:      time.Now().UTC(),
		PriceRowsCount:   len(prices),
		FundamentalsUsed: used,
		Signals:          signals,
	}
	return result, metrics, nil
}
