package store

import "StockAnalyzer/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveMetrics(_ string, _ []model.DailyMetrics) error { return nil }
func (n *NoopStore) SaveSignals(_ string, _ []model.SignalEvent) error  { return nil }
func (n *NoopStore) SaveRun(_ string, _ *model.AnalysisResult) error    { return nil }
func (n *NoopStore) Close() error                                       { return nil }
