package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"StockAnalyzer/internal/analysis"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/logger"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/pipeline"
	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/store"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "Configuration file path")
	tickers := flag.String("ticker", "", "Comma-separated tickers (overrides config)")
	outDir := flag.String("output", "", "Output directory for JSON summaries (overrides config)")
	once := flag.Bool("once", false, "Run a single batch and exit even when a schedule is configured")
	skipInitDB := flag.Bool("skip-initdb", false, "Skip database schema initialization on startup")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	if v := os.Getenv("CONFIG_PATH"); v != "" && *cfgPath == "configs/config.yaml" {
		*cfgPath = v
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if *tickers != "" {
		cfg.Tickers = cfg.Tickers[:0]
		for _, t := range strings.Split(*tickers, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.Tickers = append(cfg.Tickers, t)
			}
		}
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config validation:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	log.Info().Str("config", *cfgPath).Strs("tickers", cfg.Tickers).Msg("stock analyzer starting")

	// Persistence
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath, !*skipInitDB, log)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite store unavailable, persistence disabled")
			st = store.NewNoopStore()
		} else {
			st = sq
			defer sq.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Data source
	var fetcher collector.Fetcher
	switch {
	case os.Getenv("USE_MOCK_DATA") == "true":
		fetcher = &collector.MockFetcher{}
	case cfg.DataSource.BaseURL != "":
		fetcher = collector.NewAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	// Notifications
	var notify notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notify = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
	} else {
		notify = notifier.NewNoopNotifier()
	}

	analyzer := analysis.NewAnalyzer(analysis.MetricsConfig{
		ShortWindow:    cfg.Analysis.SMAShort,
		LongWindow:     cfg.Analysis.SMALong,
		MinTradingDays: cfg.Analysis.MinTradingDaysForSMA,
	}, log)

	p := pipeline.NewPipeline(fetcher, analyzer, st, notify,
		cfg.Analysis.HistoricalPeriod, cfg.Output.Dir, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once || cfg.Schedule.Cron == "" {
		_, failed := p.Run(ctx, cfg.Tickers)
		if failed == len(cfg.Tickers) {
			log.Error().Msg("all tickers failed")
			os.Exit(1)
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, p, cfg.Tickers, log)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register schedule")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing batch now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("running in daemon mode, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
}
