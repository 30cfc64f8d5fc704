package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockAnalyzer/internal/pipeline"
)

// Scheduler re-runs the analysis batch on a cron schedule in daemon mode.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Tickers  []string
	ctx      context.Context
	log      zerolog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, tickers []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(),
		Pipeline: p,
		Tickers:  tickers,
		ctx:      ctx,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register registers the batch run under the given cron expression.
func (s *Scheduler) Register(cronExpr string) error {
	if _, err := s.Cron.AddFunc(cronExpr, s.runBatch); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the batch immediately (manual trigger / run-on-start).
func (s *Scheduler) RunNow() {
	s.runBatch()
}

func (s *Scheduler) runBatch() {
	_, failed := s.Pipeline.Run(s.ctx, s.Tickers)
	if failed > 0 {
		s.log.Warn().Int("failed", failed).Msg("scheduled run had failures")
	}
}
