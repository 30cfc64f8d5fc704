package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

// smaDays builds a metrics series from (short, long) SMA pairs; a nil
// pair marks a day where the averages are undefined.
func smaDays(pairs [][2]*float64) []model.DailyMetrics {
	start := day("2023-06-01")
	days := make([]model.DailyMetrics, len(pairs))
	for i, p := range pairs {
		days[i] = model.DailyMetrics{
			MergedDay: model.MergedDay{DailyBar: model.DailyBar{Date: start.AddDate(0, 0, i)}},
			SMA50:     p[0],
			SMA200:    p[1],
		}
	}
	return days
}

func pair(short, long float64) [2]*float64 { return [2]*float64{&short, &long} }

var undefined = [2]*float64{nil, nil}

func TestDetectSignals_Crossovers(t *testing.T) {
	tests := []struct {
		name  string
		pairs [][2]*float64
		want  []model.SignalType
		at    []int // indexes of emitting days
	}{
		{
			name:  "golden cross on strict upward crossing",
			pairs: [][2]*float64{pair(9, 10), pair(9.5, 10), pair(11, 10)},
			want:  []model.SignalType{model.SignalDeathCross, model.SignalGoldenCross},
			at:    []int{0, 2},
		},
		{
			name:  "death cross on strict downward crossing",
			pairs: [][2]*float64{pair(11, 10), pair(9, 10)},
			want:  []model.SignalType{model.SignalGoldenCross, model.SignalDeathCross},
			at:    []int{0, 1},
		},
		{
			name:  "no event while stuck on one side",
			pairs: [][2]*float64{pair(11, 10), pair(12, 10), pair(13, 10)},
			want:  []model.SignalType{model.SignalGoldenCross},
			at:    []int{0},
		},
		{
			name:  "equality is not yet crossed",
			pairs: [][2]*float64{pair(10, 10), pair(10, 10), pair(9, 10)},
			want:  []model.SignalType{model.SignalDeathCross},
			at:    []int{2},
		},
		{
			name:  "transition through equality triggers",
			pairs: [][2]*float64{pair(11, 10), pair(10, 10), pair(9, 10)},
			want:  []model.SignalType{model.SignalGoldenCross, model.SignalDeathCross},
			at:    []int{0, 2},
		},
		{
			name:  "undefined days skip without resetting state",
			pairs: [][2]*float64{pair(11, 10), undefined, undefined, pair(12, 10)},
			want:  []model.SignalType{model.SignalGoldenCross},
			at:    []int{0},
		},
		{
			name:  "crossing hidden behind undefined gap still detected",
			pairs: [][2]*float64{pair(11, 10), undefined, pair(9, 10)},
			want:  []model.SignalType{model.SignalGoldenCross, model.SignalDeathCross},
			at:    []int{0, 2},
		},
		{
			name:  "all undefined",
			pairs: [][2]*float64{undefined, undefined},
		},
		{
			name: "empty series",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := smaDays(tt.pairs)
			events := DetectSignals(days)
			require.Len(t, events, len(tt.want))
			for i, ev := range events {
				assert.Equal(t, tt.want[i], ev.Type)
				assert.True(t, ev.Date.Equal(days[tt.at[i]].Date), "event %d date", i)
			}
		})
	}
}

func TestDetectSignals_ChronologicalAndExclusive(t *testing.T) {
	pairs := [][2]*float64{
		pair(9, 10), pair(11, 10), pair(9, 10), pair(11, 10), pair(11, 10),
	}
	events := DetectSignals(smaDays(pairs))

	require.Len(t, events, 4)
	var last time.Time
	seen := map[string]model.SignalType{}
	for _, ev := range events {
		assert.True(t, ev.Date.After(last), "events must be chronological")
		last = ev.Date
		// No day may emit both signal types.
		key := ev.Date.Format("2006-01-02")
		if prev, ok := seen[key]; ok {
			t.Fatalf("day %s emitted both %s and %s", key, prev, ev.Type)
		}
		seen[key] = ev.Type
	}
}
