package model

// MergedDay is one trading day carrying the price bar plus the most
// recently known fundamental values as of that day (forward-filled).
// Source labels the highest-priority source that populated any field;
// SourceNone when no snapshot precedes the day.
type MergedDay struct {
	DailyBar
	TotalEquity       *float64
	SharesOutstanding *float64
	TotalDebt         *float64
	Cash              *float64
	Source            Source
}

// DailyMetrics extends MergedDay with the derived technical and
// fundamental metrics. Pointer fields are nil until their inputs exist:
// a moving average stays nil until its full window of trading days has
// accumulated, and ratio metrics stay nil when a required fundamental
// field is missing or would divide by zero.
type DailyMetrics struct {
	MergedDay
	SMA50           *float64
	SMA200          *float64
	Week52High      float64
	PctFrom52wHigh  float64
	BVPS            *float64
	PriceToBook     *float64
	EnterpriseValue *float64
}
