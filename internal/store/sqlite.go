package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockAnalyzer/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists analysis output to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database. With initSchema
// set it also runs the schema migrations; pass false to reuse a database
// known to be initialized already.
func NewSQLiteStore(dbPath string, initSchema bool, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.With().Str("component", "store").Logger()}
	if initSchema {
		if err := s.migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tickers (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker   TEXT NOT NULL UNIQUE,
			added_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS daily_metrics (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker            TEXT NOT NULL,
			date              TEXT NOT NULL,
			open              REAL,
			high              REAL,
			low               REAL,
			close             REAL,
			volume            REAL,
			fundamentals_src  TEXT,
			sma50             REAL,
			sma200            REAL,
			week52_high       REAL,
			pct_from_52w_high REAL,
			bvps              REAL,
			price_to_book     REAL,
			enterprise_value  REAL,
			UNIQUE(ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_ticker_date ON daily_metrics(ticker, date)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker      TEXT NOT NULL,
			date        TEXT NOT NULL,
			signal_type TEXT NOT NULL,
			UNIQUE(ticker, date, signal_type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ticker ON signal_events(ticker)`,

		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			ticker           TEXT NOT NULL,
			generated_at     TEXT NOT NULL,
			price_rows_count INTEGER NOT NULL,
			fundamentals_used TEXT NOT NULL,
			signal_count     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ticker ON analysis_runs(ticker)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveMetrics upserts the full metrics series, keyed on (ticker, date).
func (s *SQLiteStore) SaveMetrics(ticker string, metrics []model.DailyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO daily_metrics
		(ticker, date, open, high, low, close, volume, fundamentals_src,
		 sma50, sma200, week52_high, pct_from_52w_high,
		 bvps, price_to_book, enterprise_value)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, m := range metrics {
		if _, err := stmt.Exec(
			ticker, m.Date.Format(dateLayout),
			m.Open, m.High, m.Low, m.Close, m.Volume, string(m.Source),
			m.SMA50, m.SMA200, m.Week52High, m.PctFrom52wHigh,
			m.BVPS, m.PriceToBook, m.EnterpriseValue,
		); err != nil {
			return fmt.Errorf("insert metrics row %s: %w", m.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// SaveSignals upserts signal events, keyed on (ticker, date, signal_type).
func (s *SQLiteStore) SaveSignals(ticker string, events []model.SignalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range events {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO signal_events (ticker, date, signal_type) VALUES (?,?,?)`,
			ticker, ev.Date.Format(dateLayout), string(ev.Type),
		); err != nil {
			return fmt.Errorf("insert signal %s: %w", ev.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

// SaveRun registers the ticker and appends one row to the run log.
func (s *SQLiteStore) SaveRun(runID string, result *model.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO tickers (ticker, added_at) VALUES (?,?)`,
		result.Ticker, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert ticker: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO analysis_runs (run_id, ticker, generated_at, price_rows_count, fundamentals_used, signal_count)
		VALUES (?,?,?,?,?,?)`,
		runID, result.Ticker, result.GeneratedAt.Format(time.RFC3339),
		result.PriceRowsCount, string(result.FundamentalsUsed), len(result.Signals),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
