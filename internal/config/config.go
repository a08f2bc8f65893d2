// Package config handles configuration loading for finpulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Data        DataConfig        `mapstructure:"data"        yaml:"data"`
	Cleaning    CleaningConfig    `mapstructure:"cleaning"    yaml:"cleaning"`
	Sentiment   SentimentConfig   `mapstructure:"sentiment"   yaml:"sentiment"`
	Indicators  IndicatorsConfig  `mapstructure:"indicators"  yaml:"indicators"`
	Correlation CorrelationConfig `mapstructure:"correlation" yaml:"correlation"`
	Prices      PricesConfig      `mapstructure:"prices"      yaml:"prices"`
	Feeds       FeedsConfig       `mapstructure:"feeds"       yaml:"feeds"`
	Report      ReportConfig      `mapstructure:"report"      yaml:"report"`
	Logging     LoggingConfig     `mapstructure:"logging"     yaml:"logging"`
}

// DataConfig holds dataset file locations.
type DataConfig struct {
	NewsCSV    string `mapstructure:"news_csv"    yaml:"news_csv"`
	Snapshot   string `mapstructure:"snapshot"    yaml:"snapshot"`
	SampleSize int    `mapstructure:"sample_size" yaml:"sample_size"` // 0 = full file
}

// CleaningConfig selects the cleaning policies. Missing-value handling is
// per column; columns absent from the map use the default policy.
type CleaningConfig struct {
	Duplicates     string            `mapstructure:"duplicates"      yaml:"duplicates"`      // "drop" or "report"
	MissingDefault string            `mapstructure:"missing_default" yaml:"missing_default"` // "report", "drop", "fill"
	Missing        map[string]string `mapstructure:"missing"         yaml:"missing"`
	Dates          string            `mapstructure:"dates"           yaml:"dates"`    // "drop" or "flag"
	Outliers       string            `mapstructure:"outliers"        yaml:"outliers"` // "flag" or "drop"
}

// SentimentConfig holds scorer thresholds.
type SentimentConfig struct {
	PositiveThreshold float64 `mapstructure:"positive_threshold" yaml:"positive_threshold"`
	NegativeThreshold float64 `mapstructure:"negative_threshold" yaml:"negative_threshold"`
}

// IndicatorsConfig holds technical indicator parameters.
type IndicatorsConfig struct {
	SMAPeriods []int `mapstructure:"sma_periods" yaml:"sma_periods"`
	EMAPeriods []int `mapstructure:"ema_periods" yaml:"ema_periods"`
	RSIPeriod  int   `mapstructure:"rsi_period"  yaml:"rsi_period"`
	MACDFast   int   `mapstructure:"macd_fast"   yaml:"macd_fast"`
	MACDSlow   int   `mapstructure:"macd_slow"   yaml:"macd_slow"`
	MACDSignal int   `mapstructure:"macd_signal" yaml:"macd_signal"`
}

// CorrelationConfig holds aligner/correlator settings.
type CorrelationConfig struct {
	MinSamples  int `mapstructure:"min_samples" yaml:"min_samples"`
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// PricesConfig selects and configures the price-bar provider.
type PricesConfig struct {
	Provider     string `mapstructure:"provider"      yaml:"provider"` // "yahoo", "alpaca", "csv"
	CSVDir       string `mapstructure:"csv_dir"       yaml:"csv_dir"`
	AlpacaKey    string `mapstructure:"alpaca_key"    yaml:"alpaca_key"`
	AlpacaSecret string `mapstructure:"alpaca_secret" yaml:"alpaca_secret"`
	LookbackDays int    `mapstructure:"lookback_days" yaml:"lookback_days"`
}

// FeedsConfig lists RSS sources for the fetch-news command.
type FeedsConfig struct {
	Sources      []FeedSource `mapstructure:"sources"       yaml:"sources"`
	FetchBodies  bool         `mapstructure:"fetch_bodies"  yaml:"fetch_bodies"`
	OutputDir    string       `mapstructure:"output_dir"    yaml:"output_dir"`
	RequestsPerS int          `mapstructure:"requests_per_s" yaml:"requests_per_s"`
}

// FeedSource is a single named RSS feed.
type FeedSource struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// ReportConfig holds output locations and chart styling.
type ReportConfig struct {
	OutDir      string `mapstructure:"out_dir"      yaml:"out_dir"`
	ChartWidth  int    `mapstructure:"chart_width"  yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.finpulse/config.yaml (home directory)
//  3. /etc/finpulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: FINPULSE_<SECTION>_<KEY>, e.g., FINPULSE_PRICES_PROVIDER.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".finpulse"))
	v.AddConfigPath("/etc/finpulse")

	v.SetEnvPrefix("FINPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FINPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("data.news_csv", "data/raw_analyst_ratings.csv")
	v.SetDefault("data.snapshot", "data/processed/news_snapshot.json")
	v.SetDefault("data.sample_size", 0)

	// Cleaning defaults mirror the exploratory workflow: report everything,
	// drop only what cannot be used downstream.
	v.SetDefault("cleaning.duplicates", "drop")
	v.SetDefault("cleaning.missing_default", "report")
	// The date column follows cleaning.dates, not the missing map.
	v.SetDefault("cleaning.missing", map[string]string{
		"headline": "drop",
	})
	v.SetDefault("cleaning.dates", "drop")
	v.SetDefault("cleaning.outliers", "flag")

	// Sentiment defaults
	v.SetDefault("sentiment.positive_threshold", 0.05)
	v.SetDefault("sentiment.negative_threshold", -0.05)

	// Indicator defaults
	v.SetDefault("indicators.sma_periods", []int{20, 50, 200})
	v.SetDefault("indicators.ema_periods", []int{12, 26})
	v.SetDefault("indicators.rsi_period", 14)
	v.SetDefault("indicators.macd_fast", 12)
	v.SetDefault("indicators.macd_slow", 26)
	v.SetDefault("indicators.macd_signal", 9)

	// Correlation defaults
	v.SetDefault("correlation.min_samples", 2)
	v.SetDefault("correlation.concurrency", 4)

	// Price provider defaults
	v.SetDefault("prices.provider", "yahoo")
	v.SetDefault("prices.csv_dir", "data/prices")
	v.SetDefault("prices.lookback_days", 365)

	// Feed defaults
	v.SetDefault("feeds.fetch_bodies", false)
	v.SetDefault("feeds.output_dir", "data/fetched")
	v.SetDefault("feeds.requests_per_s", 2)

	// Report defaults
	v.SetDefault("report.out_dir", "out")
	v.SetDefault("report.chart_width", 800)
	v.SetDefault("report.chart_height", 400)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("FINPULSE_ALPACA_API_KEY"); key != "" {
		cfg.Prices.AlpacaKey = key
	}
	if key := os.Getenv("FINPULSE_ALPACA_API_SECRET"); key != "" {
		cfg.Prices.AlpacaSecret = key
	}
	// Standard Alpaca SDK variable names work too.
	if cfg.Prices.AlpacaKey == "" {
		cfg.Prices.AlpacaKey = os.Getenv("APCA_API_KEY_ID")
	}
	if cfg.Prices.AlpacaSecret == "" {
		cfg.Prices.AlpacaSecret = os.Getenv("APCA_API_SECRET_KEY")
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
