package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"StockAnalyzer/internal/analysis"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/export"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/store"
)

// Pipeline runs fetch, analysis, persistence, and export per ticker.
type Pipeline struct {
	Fetcher  collector.Fetcher
	Analyzer *analysis.Analyzer
	Store    store.Store
	Notifier notifier.Notifier
	Period   string
	OutDir   string
	log      zerolog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(f collector.Fetcher, a *analysis.Analyzer, s store.Store, n notifier.Notifier, period, outDir string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Fetcher:  f,
		Analyzer: a,
		Store:    s,
		Notifier: n,
		Period:   period,
		OutDir:   outDir,
		log:      log.With().Str("component", "pipeline").Logger(),
	}
}

// Run analyzes every ticker in the batch under one run id. A failure in
// one ticker is logged and skipped; the rest of the batch continues.
// Returns the successful results and the number of failed tickers.
func (p *Pipeline) Run(ctx context.Context, tickers []string) ([]*model.AnalysisResult, int) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	log.Info().Int("tickers", len(tickers)).Str("source", p.Fetcher.Name()).Msg("starting batch run")

	var results []*model.AnalysisResult
	failed := 0
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("batch run cancelled")
			break
		}
		result, err := p.runTicker(runID, ticker)
		if err != nil {
			log.Error().Err(err).Str("ticker", ticker).Msg("ticker analysis failed")
			failed++
			continue
		}
		results = append(results, result)
	}

	if report := notifier.FormatRunReport(results); report != "" {
		if err := p.Notifier.Notify(ctx, report); err != nil {
			log.Error().Err(err).Msg("send run report")
		}
	}

	log.Info().Int("ok", len(results)).Int("failed", failed).Msg("batch run finished")
	return results, failed
}

func (p *Pipeline) runTicker(runID, ticker string) (*model.AnalysisResult, error) {
	log := p.log.With().Str("run_id", runID).Str("ticker", ticker).Logger()

	prices, err := p.Fetcher.FetchDailyBars(ticker, p.Period)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	// Missing fundamentals degrade the result, they don't fail it.
	fundamentals, err := p.Fetcher.FetchFundamentals(ticker)
	if err != nil {
		log.Warn().Err(err).Msg("fundamentals unavailable, analyzing prices only")
		fundamentals = nil
	}

	result, metrics, err := p.Analyzer.Analyze(ticker, prices, fundamentals)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	if err := p.Store.SaveMetrics(ticker, metrics); err != nil {
		return nil, fmt.Errorf("save metrics: %w", err)
	}
	if err := p.Store.SaveSignals(ticker, result.Signals); err != nil {
		return nil, fmt.Errorf("save signals: %w", err)
	}
	if err := p.Store.SaveRun(runID, result); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	outPath := filepath.Join(p.OutDir, ticker+".json")
	if err := export.Write(outPath, result); err != nil {
		return nil, fmt.Errorf("export summary: %w", err)
	}
	log.Info().Str("output", outPath).Int("signals", len(result.Signals)).Msg("ticker analyzed")
	return result, nil
}
