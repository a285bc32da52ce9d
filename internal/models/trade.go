package models

import "time"

// Trade is the central journal entity. Optional numeric fields are
// pointers: nil means the trader has not entered the value yet.
//
// The derived fields (PlannedRR, ActualRR, NetPL, HoldingHours) are
// projections of the source fields and are recomputed on every save;
// stored values are never treated as authoritative.
type Trade struct {
	TradeID   string      `json:"trade_id"`
	AccountID string      `json:"account_id"`
	SetupID   string      `json:"setup_id,omitempty"`
	State     TradeState  `json:"trade_state"`
	Status    TradeStatus `json:"trade_status"`

	MarketType MarketType `json:"market_type"`
	Instrument string     `json:"instrument"`
	Direction  Direction  `json:"direction"`
	Session    Session    `json:"session,omitempty"`
	EntryType  EntryType  `json:"entry_type,omitempty"`
	ExitType   ExitType   `json:"exit_type,omitempty"`

	PlannedEntryPrice *float64 `json:"planned_entry_price,omitempty"`
	StopLoss          *float64 `json:"stop_loss,omitempty"`
	TakeProfit        *float64 `json:"take_profit,omitempty"`
	RiskPct           *float64 `json:"risk_pct,omitempty"`
	USDRisk           *float64 `json:"usd_risk,omitempty"`

	// Position size, named per market type. Exactly one is normally set;
	// PositionSize selects the right one for the trade's market.
	Lots      *float64 `json:"lots,omitempty"`
	Contracts *float64 `json:"contracts,omitempty"`
	Shares    *float64 `json:"shares,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`

	PipValue   *float64 `json:"pip_value,omitempty"`
	PointValue *float64 `json:"point_value,omitempty"`

	ActualEntryPrice *float64   `json:"actual_entry_price,omitempty"`
	ExitPrice        *float64   `json:"exit_price,omitempty"`
	EntryDate        *time.Time `json:"entry_date,omitempty"`
	EntryTimeUTC     *time.Time `json:"entry_time_utc,omitempty"`
	ExitTimeUTC      *time.Time `json:"exit_time_utc,omitempty"`

	PreTradeEmotion Emotion `json:"pre_trade_emotion,omitempty"`
	Notes           string  `json:"notes,omitempty"`

	// Derived, recomputed on save.
	PlannedRR    *float64 `json:"planned_rr,omitempty"`
	ActualRR     *float64 `json:"actual_rr,omitempty"`
	NetPL        *float64 `json:"net_pl,omitempty"`
	HoldingHours *float64 `json:"holding_duration_hours,omitempty"`
}

// PositionSize returns the position size for the trade's market type
// (lots, contracts, shares or quantity), or nil when unset.
func (t *Trade) PositionSize() *float64 {
	cfg, ok := FieldConfigs[t.MarketType]
	if !ok {
		return nil
	}
	switch cfg.PositionSizeField {
	case "lots":
		return t.Lots
	case "contracts":
		return t.Contracts
	case "shares":
		return t.Shares
	case "quantity":
		return t.Quantity
	}
	return nil
}

// SetPositionSize stores size into the field the trade's market type uses.
func (t *Trade) SetPositionSize(size float64) {
	cfg, ok := FieldConfigs[t.MarketType]
	if !ok {
		return
	}
	switch cfg.PositionSizeField {
	case "lots":
		t.Lots = &size
	case "contracts":
		t.Contracts = &size
	case "shares":
		t.Shares = &size
	case "quantity":
		t.Quantity = &size
	}
}

// PipPointValue returns the monetary pip/point value for the trade,
// falling back to the market default (FOREX only). Nil for market types
// that have no such field (STOCKS, CRYPTO).
func (t *Trade) PipPointValue() *float64 {
	cfg, ok := FieldConfigs[t.MarketType]
	if !ok || cfg.PipPointField == "" {
		return nil
	}
	switch cfg.PipPointField {
	case "pip_value":
		if t.PipValue != nil {
			return t.PipValue
		}
	case "point_value":
		if t.PointValue != nil {
			return t.PointValue
		}
	}
	return cfg.DefaultPipValue
}

// HasRequiredFields reports whether the identity fields every trade
// needs (account, instrument, direction, market type) are all present.
func (t *Trade) HasRequiredFields() bool {
	return t.AccountID != "" && t.Instrument != "" &&
		t.Direction != "" && t.MarketType != ""
}

// EntryTime returns the best available entry timestamp: the precise
// entry time when recorded, else the entry date.
func (t *Trade) EntryTime() *time.Time {
	if t.EntryTimeUTC != nil {
		return t.EntryTimeUTC
	}
	return t.EntryDate
}

// Closed reports whether the trade has reached its terminal state.
func (t *Trade) Closed() bool {
	return t.State == StateClosed
}
