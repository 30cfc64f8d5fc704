package model

import "time"

// Source identifies which fundamental disclosure a value came from.
type Source string

const (
	SourceQuarterly Source = "quarterly"
	SourceAnnual    Source = "annual"
	SourceInfo      Source = "info"
	// SourceNone means no fundamental source contributed any value.
	SourceNone Source = "none"
)

// SourcePriority lists fundamental sources from most to least preferred.
var SourcePriority = []Source{SourceQuarterly, SourceAnnual, SourceInfo}

// Snapshot is one fundamental disclosure as of ReportDate.
// Any numeric field may be nil: statements are sparse and absence is
// meaningful, never a zero value.
type Snapshot struct {
	ReportDate        time.Time
	Source            Source
	TotalEquity       *float64
	SharesOutstanding *float64
	TotalDebt         *float64
	Cash              *float64
}
