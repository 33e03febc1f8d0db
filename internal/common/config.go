// Package common provides shared utilities for AShareScope
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for AShareScope
type Config struct {
	Environment string         `toml:"environment"`
	Market      MarketConfig   `toml:"market"`
	Universe    UniverseConfig `toml:"universe"`
	Clients     ClientsConfig  `toml:"clients"`
	Output      OutputConfig   `toml:"output"`
	Logging     LoggingConfig  `toml:"logging"`
}

// MarketConfig holds the analysis window configuration
type MarketConfig struct {
	WindowDays int    `toml:"window_days"`
	Adjust     string `toml:"adjust"` // equity adjustment: "qfq" or "none"; indices are always unadjusted
}

// DateRange returns the analysis window endpoints formatted YYYYMMDD.
func (c *MarketConfig) DateRange(now time.Time) (string, string) {
	days := c.WindowDays
	if days <= 0 {
		days = 365
	}
	start := now.AddDate(0, 0, -days)
	return start.Format("20060102"), now.Format("20060102")
}

// UniverseConfig holds equity universe selection configuration
type UniverseConfig struct {
	TopN    int `toml:"top_n"`   // number of equities by market cap
	Workers int `toml:"workers"` // concurrent kline fetches
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EastMoney EastMoneyConfig `toml:"eastmoney"`
}

// EastMoneyConfig holds EastMoney API configuration
type EastMoneyConfig struct {
	KlineBaseURL  string  `toml:"kline_base_url"`
	SpotBaseURL   string  `toml:"spot_base_url"`
	Timeout       string  `toml:"timeout"`
	RatePerSecond float64 `toml:"rate_per_second"`
	Burst         int     `toml:"burst"`
	PageSize      int     `toml:"page_size"` // listing pagination size
}

// GetTimeout parses and returns the timeout duration
func (c *EastMoneyConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Charts bool   `toml:"charts"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Market: MarketConfig{
			WindowDays: 365,
			Adjust:     "qfq",
		},
		Universe: UniverseConfig{
			TopN:    100,
			Workers: 4,
		},
		Clients: ClientsConfig{
			EastMoney: EastMoneyConfig{
				KlineBaseURL:  "https://push2his.eastmoney.com",
				SpotBaseURL:   "https://push2.eastmoney.com",
				Timeout:       "30s",
				RatePerSecond: 3,
				Burst:         1,
				PageSize:      200,
			},
		},
		Output: OutputConfig{
			Dir:    "a_stock_data",
			Charts: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	// Clamp selection and concurrency to usable values
	validateConfig(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ASHARESCOPE_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("ASHARESCOPE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if dir := os.Getenv("ASHARESCOPE_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}

	if n := os.Getenv("ASHARESCOPE_TOP_N"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			config.Universe.TopN = v
		}
	}

	if days := os.Getenv("ASHARESCOPE_WINDOW_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil {
			config.Market.WindowDays = v
		}
	}

	if workers := os.Getenv("ASHARESCOPE_WORKERS"); workers != "" {
		if v, err := strconv.Atoi(workers); err == nil {
			config.Universe.Workers = v
		}
	}
}

// validateConfig normalizes values that would otherwise break the run
func validateConfig(config *Config) {
	if config.Market.WindowDays <= 0 {
		config.Market.WindowDays = 365
	}
	if config.Market.Adjust != "qfq" && config.Market.Adjust != "none" {
		config.Market.Adjust = "qfq"
	}
	if config.Universe.TopN <= 0 {
		config.Universe.TopN = 100
	}
	if config.Universe.Workers <= 0 {
		config.Universe.Workers = 1
	}
	if config.Clients.EastMoney.PageSize <= 0 {
		config.Clients.EastMoney.PageSize = 200
	}
}
