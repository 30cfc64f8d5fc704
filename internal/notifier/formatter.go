package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockAnalyzer/internal/model"
)

// FormatRunReport builds the Telegram message for one batch run.
// Returns "" when no ticker produced a signal, so nothing is sent.
func FormatRunReport(results []*model.AnalysisResult) string {
	withSignals := 0
	for _, r := range results {
		if len(r.Signals) > 0 {
			withSignals++
		}
	}
	if withSignals == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Crossover signals</b> | %s\n", time.Now().Format("2006-01-02")))

	for _, r := range results {
		if len(r.Signals) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n<b>%s</b> (%d rows, fundamentals: %s)\n",
			r.Ticker, r.PriceRowsCount, r.FundamentalsUsed))
		for _, ev := range r.Signals {
			b.WriteString(fmt.Sprintf("  %s %s on %s\n",
				signalEmoji(ev.Type), ev.Type, ev.Date.Format("2006-01-02")))
		}
	}
	return b.String()
}

func signalEmoji(t model.SignalType) string {
	if t == model.SignalGoldenCross {
		return "🟢"
	}
	return "🔴"
}
