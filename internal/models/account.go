package models

// Account holds balances and loss-limit thresholds. The journal engine
// never mutates an account directly; a trade closing supplies the P&L
// delta and the caller applies it.
type Account struct {
	AccountID      string        `json:"account_id"`
	Name           string        `json:"account_name,omitempty"`
	Currency       string        `json:"currency,omitempty"`
	InitialBalance float64       `json:"initial_balance"`
	CurrentBalance float64       `json:"current_balance"`
	Limits         AccountLimits `json:"limits"`
}

// AccountLimits are account-level risk thresholds.
type AccountLimits struct {
	DailyLossPct    float64 `json:"daily_loss_pct,omitempty"`
	MaxDrawdownPct  float64 `json:"max_drawdown_pct,omitempty"`
	ProfitTargetPct float64 `json:"profit_target_pct,omitempty"`
}

// Rule is a per-account risk policy, read-only input to validation.
type Rule struct {
	RuleID             string           `json:"rule_id"`
	AccountID          string           `json:"account_id"`
	MaxRiskPerTradePct float64          `json:"max_risk_per_trade_pct,omitempty"`
	MaxDailyLossPct    float64          `json:"max_daily_loss_pct,omitempty"`
	MinimumRR          float64          `json:"minimum_rr,omitempty"`
	EnforcementLevel   EnforcementLevel `json:"enforcement_level"`
}

// Setup is a playbook entry. A trade referencing a setup that is not
// ACTIVE draws a validation warning.
type Setup struct {
	SetupID string      `json:"setup_id"`
	Name    string      `json:"setup_name"`
	Status  SetupStatus `json:"setup_status"`
}
