package store

import "StockAnalyzer/internal/model"

// Store persists analysis output. All writes are idempotent: re-running
// analysis for the same ticker and day replaces rows instead of
// duplicating them.
type Store interface {
	SaveMetrics(ticker string, metrics []model.DailyMetrics) error
	SaveSignals(ticker string, events []model.SignalEvent) error
	SaveRun(runID string, result *model.AnalysisResult) error
	Close() error
}
