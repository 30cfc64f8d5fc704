package analysis

import (
	"fmt"

	"StockAnalyzer/internal/model"
)

// snapshotFields enumerates the fundamental fields subject to
// forward-fill and per-field source fallback. First defined wins, in
// model.SourcePriority order.
var snapshotFields = []struct {
	get func(*model.Snapshot) *float64
	set func(*model.MergedDay, float64)
}{
	{func(s *model.Snapshot) *float64 { return s.TotalEquity }, func(m *model.MergedDay, v float64) { m.TotalEquity = &v }},
	{func(s *model.Snapshot) *float64 { return s.SharesOutstanding }, func(m *model.MergedDay, v float64) { m.SharesOutstanding = &v }},
	{func(s *model.Snapshot) *float64 { return s.TotalDebt }, func(m *model.MergedDay, v float64) { m.TotalDebt = &v }},
	{func(s *model.Snapshot) *float64 { return s.Cash }, func(m *model.MergedDay, v float64) { m.Cash = &v }},
}

// Merge aligns a daily price series with lower-frequency fundamental
// snapshots into one gap-free daily series: one output row per input
// price row, in the same order. Walking prices in ascending date order,
// each day receives the latest snapshot values with report date <= that
// day; days before the first snapshot keep nil fundamental fields.
//
// The returned source is the highest-priority source that contributed
// at least one field value anywhere in the series, or model.SourceNone.
func Merge(prices []model.DailyBar, fundamentals []model.Snapshot) ([]model.MergedDay, model.Source, error) {
	if err := validatePrices(prices); err != nil {
		return nil, model.SourceNone, err
	}
	if err := validateFundamentals(fundamentals); err != nil {
		return nil, model.SourceNone, err
	}

	// Bucket snapshots per source, preserving report-date order.
	bySource := make([][]model.Snapshot, len(model.SourcePriority))
	for _, snap := range fundamentals {
		for i, src := range model.SourcePriority {
			if snap.Source == src {
				bySource[i] = append(bySource[i], snap)
				break
			}
		}
	}

	merged := make([]model.MergedDay, 0, len(prices))
	latest := make([]*model.Snapshot, len(model.SourcePriority))
	cursors := make([]int, len(model.SourcePriority))
	usedIdx := -1

	for _, bar := range prices {
		// Advance each source's cursor to the last snapshot known as of this day.
		for i := range bySource {
			for cursors[i] < len(bySource[i]) && !bySource[i][cursors[i]].ReportDate.After(bar.Date) {
				latest[i] = &bySource[i][cursors[i]]
				cursors[i]++
			}
		}

		day := model.MergedDay{DailyBar: bar, Source: model.SourceNone}
		dayIdx := -1
		for _, f := range snapshotFields {
			for i, snap := range latest {
				if snap == nil {
					continue
				}
				if v := f.get(snap); v != nil {
					f.set(&day, *v)
					if dayIdx == -1 || i < dayIdx {
						dayIdx = i
					}
					break
				}
			}
		}
		if dayIdx >= 0 {
			day.Source = model.SourcePriority[dayIdx]
			if usedIdx == -1 || dayIdx < usedIdx {
				usedIdx = dayIdx
			}
		}
		merged = append(merged, day)
	}

	used := model.SourceNone
	if usedIdx >= 0 {
		used = model.SourcePriority[usedIdx]
	}
	return merged, used, nil
}

func validatePrices(prices []model.DailyBar) error {
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1].Date, prices[i].Date
		if cur.Equal(prev) {
			return &InputOrderingError{Reason: fmt.Sprintf("duplicate price date %s", cur.Format("2006-01-02"))}
		}
		if cur.Before(prev) {
			return &InputOrderingError{Reason: fmt.Sprintf("prices out of order at %s", cur.Format("2006-01-02"))}
		}
	}
	return nil
}

func validateFundamentals(fundamentals []model.Snapshot) error {
	type key struct {
		date   string
		source model.Source
	}
	seen := make(map[key]bool, len(fundamentals))
	for i, snap := range fundamentals {
		if i > 0 && snap.ReportDate.Before(fundamentals[i-1].ReportDate) {
			return &InputOrderingError{Reason: fmt.Sprintf("fundamentals out of order at %s", snap.ReportDate.Format("2006-01-02"))}
		}
		k := key{snap.ReportDate.Format("2006-01-02"), snap.Source}
		if seen[k] {
			return &InputOrderingError{Reason: fmt.Sprintf("duplicate %s snapshot on %s", snap.Source, k.date)}
		}
		seen[k] = true
	}
	return nil
}
