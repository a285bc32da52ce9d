package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template config was not written: %v", err)
	}

	// Defaults apply on first run.
	if cfg.Journal.DefaultMarketType != "FOREX" {
		t.Errorf("DefaultMarketType = %q, want FOREX", cfg.Journal.DefaultMarketType)
	}
	if cfg.Journal.StartingBalance != 10000 {
		t.Errorf("StartingBalance = %v, want 10000", cfg.Journal.StartingBalance)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path is empty")
	}
}

func TestLoadReadsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[journal]
default_account = "A-1"
starting_balance = 25000.0

[analytics]
start_date = "2024-01-01"

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Journal.DefaultAccount != "A-1" {
		t.Errorf("DefaultAccount = %q, want A-1", cfg.Journal.DefaultAccount)
	}
	if cfg.Journal.StartingBalance != 25000 {
		t.Errorf("StartingBalance = %v, want 25000", cfg.Journal.StartingBalance)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}

	start := cfg.AnalyticsStartDate()
	if start == nil || start.Year() != 2024 || start.Month() != 1 {
		t.Errorf("AnalyticsStartDate = %v, want 2024-01-01", start)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADEJOURNAL_DB", "/tmp/override.db")
	t.Setenv("TRADEJOURNAL_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want the env override", cfg.Database.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("bad log level accepted")
	}

	cfg = &Config{}
	cfg.Journal.StartingBalance = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative starting balance accepted")
	}

	cfg = &Config{}
	cfg.Analytics.StartDate = "03/05/2024"
	if err := cfg.Validate(); err == nil {
		t.Error("malformed start date accepted")
	}
}
