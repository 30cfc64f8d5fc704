package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockAnalyzer/internal/model"
)

// summary is the JSON shape of the exported analysis document.
type summary struct {
	Ticker           string          `json:"ticker"`
	GeneratedAt      string          `json:"generated_at"`
	PriceRowsCount   int             `json:"price_rows_count"`
	FundamentalsUsed string          `json:"fundamentals_used"`
	Signals          []summarySignal `json:"signals"`
}

type summarySignal struct {
	Date       string `json:"date"`
	SignalType string `json:"signal_type"`
}

// Write serializes an analysis result to path as an indented JSON
// summary, creating parent directories as needed.
func Write(path string, result *model.AnalysisResult) error {
	doc := summary{
		Ticker:           result.Ticker,
		GeneratedAt:      result.GeneratedAt.UTC().Format(time.RFC3339),
		PriceRowsCount:   result.PriceRowsCount,
		FundamentalsUsed: string(result.FundamentalsUsed),
		Signals:          make([]summarySignal, 0, len(result.Signals)),
	}
	for _, ev := range result.Signals {
		doc.Signals = append(doc.Signals, summarySignal{
			Date:       ev.Date.Format("2006-01-02"),
			SignalType: string(ev.Type),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
