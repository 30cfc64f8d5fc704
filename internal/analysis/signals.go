package analysis

import "StockAnalyzer/internal/model"

// DetectSignals scans the metrics series left to right and emits a
// crossover event at each day where the short SMA moves strictly across
// the long SMA. Detection state is the previous relative ordering of
// the two averages, starting as "not yet crossed": equality, like an
// unknown prior day, never counts as already being on a side, so a
// transition through equality into a strict inequality triggers. Days
// where either SMA is undefined are skipped without resetting state.
//
// At most one event type can fire per day; two consecutive days
// strictly on the same side never emit. Output is chronological.
func DetectSignals(days []model.DailyMetrics) []model.SignalEvent {
	var events []model.SignalEvent
	prev := 0 // -1 short below long, 0 not yet crossed, +1 short above
	for _, d := range days {
		if d.SMA50 == nil || d.SMA200 == nil {
			continue
		}
		cur := 0
		switch {
		case *d.SMA50 > *d.SMA200:
			cur = 1
		case *d.SMA50 < *d.SMA200:
			cur = -1
		}
		if cur > 0 && prev <= 0 {
			events = append(events, model.SignalEvent{Date: d.Date, Type: model.SignalGoldenCross})
		} else if cur < 0 && prev >= 0 {
			events = append(events, model.SignalEvent{Date: d.Date, Type: model.SignalDeathCross})
		}
		prev = cur
	}
	return events
}
