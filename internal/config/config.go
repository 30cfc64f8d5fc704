package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Tickers    []string `yaml:"tickers"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Analysis struct {
		HistoricalPeriod     string `yaml:"historical_period"`
		SMAShort             int    `yaml:"sma_short"`
		SMALong              int    `yaml:"sma_long"`
		MinTradingDaysForSMA int    `yaml:"min_trading_days_for_sma"`
	} `yaml:"analysis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANALYZER_TICKERS"); v != "" {
		cfg.Tickers = splitTickers(v)
	}
	if v := os.Getenv("DATA_API_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HISTORICAL_PERIOD"); v != "" {
		cfg.Analysis.HistoricalPeriod = v
	}
	if v := os.Getenv("MIN_TRADING_DAYS_FOR_SMA"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MinTradingDaysForSMA = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Analysis.HistoricalPeriod == "" {
		cfg.Analysis.HistoricalPeriod = "2y"
	}
	if cfg.Analysis.SMAShort == 0 {
		cfg.Analysis.SMAShort = 50
	}
	if cfg.Analysis.SMALong == 0 {
		cfg.Analysis.SMALong = 200
	}
	if cfg.Analysis.MinTradingDaysForSMA == 0 {
		cfg.Analysis.MinTradingDaysForSMA = cfg.Analysis.SMALong
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/analyzer.db"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers: at least one ticker is required")
	}
	if c.Analysis.SMAShort <= 0 || c.Analysis.SMALong <= 0 {
		return fmt.Errorf("analysis: SMA windows must be positive")
	}
	if c.Analysis.SMAShort >= c.Analysis.SMALong {
		return fmt.Errorf("analysis: sma_short (%d) must be below sma_long (%d)", c.Analysis.SMAShort, c.Analysis.SMALong)
	}
	if c.Analysis.MinTradingDaysForSMA < 0 {
		return fmt.Errorf("analysis: min_trading_days_for_sma must not be negative")
	}
	return nil
}

func splitTickers(v string) []string {
	var tickers []string
	for _, t := range strings.Split(v, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}
