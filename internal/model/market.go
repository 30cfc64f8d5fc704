package model

import "time"

// DailyBar represents one trading day of OHLCV data.
// Bars are keyed by calendar day; the series is ordered ascending and
// need not be contiguous (no bars on weekends/holidays).
type DailyBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
