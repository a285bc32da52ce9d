// Package config provides configuration management for the journal
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"tradejournal/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Journal   JournalConfig   `mapstructure:"journal"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	UI        UIConfig        `mapstructure:"ui"`
}

// JournalConfig holds journal-level defaults.
type JournalConfig struct {
	DefaultAccount    string  `mapstructure:"default_account"`
	DefaultMarketType string  `mapstructure:"default_market_type"`
	StartingBalance   float64 `mapstructure:"starting_balance"`
}

// AnalyticsConfig holds the scalar inputs to the analytics engine.
type AnalyticsConfig struct {
	RiskFreeRate  float64 `mapstructure:"risk_free_rate"`
	SortinoTarget float64 `mapstructure:"sortino_target"`
	StartDate     string  `mapstructure:"start_date"` // YYYY-MM-DD, CAGR reference
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradejournal"
	}
	return filepath.Join(home, ".config", "tradejournal")
}

// Load loads configuration from the specified directory. If configDir
// is empty, uses the default config directory. A missing config file
// writes the annotated template and loads defaults.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := writeTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("journal.default_market_type", "FOREX")
	v.SetDefault("journal.starting_balance", 10000.0)
	v.SetDefault("analytics.risk_free_rate", 0.0)
	v.SetDefault("analytics.sortino_target", 0.0)
	v.SetDefault("database.path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "journal.log"))
	v.SetDefault("logging.max_size_mb", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADEJOURNAL_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TRADEJOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.StartingBalance < 0 {
		return fmt.Errorf("starting_balance must be non-negative")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Analytics.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.Analytics.StartDate); err != nil {
			return fmt.Errorf("invalid analytics start_date %q: %w", c.Analytics.StartDate, err)
		}
	}
	return nil
}

// AnalyticsStartDate parses the configured CAGR reference date.
// Nil when unset.
func (c *Config) AnalyticsStartDate() *time.Time {
	if c.Analytics.StartDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", c.Analytics.StartDate)
	if err != nil {
		return nil
	}
	return &t
}

// LogConfig converts the logging section into the logger's config.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		Level:      c.Logging.Level,
		Console:    c.Logging.Console,
		File:       c.Logging.File,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAgeDays,
	}
}
