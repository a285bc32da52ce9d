package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# Trade Journal Configuration

[journal]
# Account selected when no --account flag is given
default_account = ""
# Default market type for new trades: FOREX, INDICES, FUTURES, CRYPTO, STOCKS
default_market_type = "FOREX"
# Starting balance used for equity curve and drawdown when the account
# record carries none
starting_balance = 10000.0

[analytics]
# Risk-free rate subtracted in the Sharpe ratio (per-trade P&L units)
risk_free_rate = 0.0
# Target return for the Sortino downside deviation
sortino_target = 0.0
# Reference start date for CAGR (YYYY-MM-DD); empty uses the first
# closed trade's entry date
start_date = ""

[database]
# SQLite database file
# path = "~/.config/tradejournal/journal.db"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
max_size_mb = 50
max_backups = 5
max_age_days = 30

[ui]
color_enabled = true
date_format = "02-Jan-2006"
time_format = "15:04:05"
`

// writeTemplateConfig writes the annotated default config file so a
// fresh install has something to edit.
func writeTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
