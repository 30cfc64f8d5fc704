package model

import "time"

// SignalType identifies a crossover signal.
type SignalType string

const (
	SignalGoldenCross SignalType = "golden_cross"
	SignalDeathCross  SignalType = "death_cross"
)

// SignalEvent marks the day a crossover occurred. Events exist only at
// transition days, never one per day.
type SignalEvent struct {
	Date time.Time
	Type SignalType
}

// AnalysisResult is the terminal artifact of one ticker's analysis,
// handed to persistence and export.
type AnalysisResult struct {
	Ticker           string
	GeneratedAt      time.Time
	PriceRowsCount   int
	FundamentalsUsed Source
	Signals          []SignalEvent
}
