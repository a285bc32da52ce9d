package journal

import (
	"testing"

	"tradejournal/internal/models"
)

func validDraft() *models.Trade {
	return &models.Trade{
		TradeID:    "T-000001",
		AccountID:  "A-1",
		State:      models.StateDraft,
		MarketType: models.MarketForex,
		Instrument: "EURUSD",
		Direction:  models.Long,
	}
}

func TestValidateTradeHappyPath(t *testing.T) {
	res := ValidateTrade(validDraft(), nil, nil, nil)
	if !res.IsValid {
		t.Fatalf("valid draft rejected: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.State != models.StateDraft {
		t.Errorf("derived state = %s, want DRAFT", res.State)
	}
}

func TestValidateTradeMissingFields(t *testing.T) {
	res := ValidateTrade(&models.Trade{}, nil, nil, nil)
	if res.IsValid {
		t.Fatal("empty trade accepted")
	}
	if res.State != models.StateInvalid {
		t.Errorf("derived state = %s, want INVALID", res.State)
	}
	if len(res.Errors) < 4 {
		t.Errorf("expected errors for account, instrument, direction and market type, got %v", res.Errors)
	}
}

func TestValidateOpenTradeNeedsPrices(t *testing.T) {
	trade := validDraft()
	trade.State = models.StateOpen
	res := ValidateTrade(trade, nil, nil, nil)
	if res.IsValid {
		t.Fatal("open trade without prices accepted")
	}

	trade.ActualEntryPrice = f(1.1000)
	trade.StopLoss = f(1.0950)
	res = ValidateTrade(trade, nil, nil, nil)
	if !res.IsValid {
		t.Fatalf("open trade with prices rejected: %v", res.Errors)
	}
}

func TestValidateStopOnWrongSide(t *testing.T) {
	trade := validDraft()
	trade.ActualEntryPrice = f(1.1000)
	trade.StopLoss = f(1.1100) // above entry on a long
	res := ValidateTrade(trade, nil, nil, nil)
	if res.IsValid {
		t.Fatal("long with stop above entry accepted")
	}

	trade.Direction = models.Short
	res = ValidateTrade(trade, nil, nil, nil)
	if !res.IsValid {
		t.Fatalf("short with stop above entry rejected: %v", res.Errors)
	}
}

func TestValidateInactiveSetupWarns(t *testing.T) {
	trade := validDraft()
	trade.SetupID = "S-1"
	setups := []models.Setup{{SetupID: "S-1", Name: "Breakout", Status: models.SetupRetired}}

	res := ValidateTrade(trade, setups, nil, nil)
	if !res.IsValid {
		t.Fatalf("trade with retired setup rejected: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one about the retired setup", res.Warnings)
	}
}

func TestValidateRiskRuleEnforcement(t *testing.T) {
	account := &models.Account{AccountID: "A-1", CurrentBalance: 10000}
	trade := validDraft()
	trade.RiskPct = f(3)

	// WARNING enforcement: over-budget risk warns but the trade is valid.
	rules := []models.Rule{{
		RuleID: "R-1", AccountID: "A-1",
		MaxRiskPerTradePct: 2,
		EnforcementLevel:   models.EnforceWarning,
	}}
	res := ValidateTrade(trade, nil, rules, account)
	if !res.IsValid {
		t.Fatalf("warning-level breach rejected: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one risk warning", res.Warnings)
	}

	// STRICT enforcement turns it into a hard error.
	rules[0].EnforcementLevel = models.EnforceStrict
	res = ValidateTrade(trade, nil, rules, account)
	if res.IsValid {
		t.Fatal("strict-level breach accepted")
	}
	if res.State != models.StateInvalid {
		t.Errorf("derived state = %s, want INVALID", res.State)
	}
}

func TestValidateMinimumRRWarns(t *testing.T) {
	account := &models.Account{AccountID: "A-1", CurrentBalance: 10000}
	trade := validDraft()
	trade.PlannedEntryPrice = f(1.1000)
	trade.StopLoss = f(1.0950)
	trade.TakeProfit = f(1.1050)
	Recompute(trade) // planned RR 1.0

	rules := []models.Rule{{
		RuleID: "R-1", AccountID: "A-1",
		MinimumRR:        2,
		EnforcementLevel: models.EnforceWarning,
	}}
	res := ValidateTrade(trade, nil, rules, account)
	if !res.IsValid {
		t.Fatalf("low RR rejected: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one RR warning", res.Warnings)
	}
}

func TestApplyValidationRespectsProtectedStates(t *testing.T) {
	// A draft missing fields is downgraded to INCOMPLETE...
	trade := validDraft()
	trade.Instrument = ""
	ApplyValidation(trade, nil, nil, nil)
	if trade.State != models.StateInvalid {
		t.Errorf("draft state = %s, want INVALID", trade.State)
	}

	// ...but an OPEN trade is never rewound by validation.
	open := validDraft()
	open.State = models.StateOpen
	open.ActualEntryPrice = f(1.1000)
	open.StopLoss = f(1.0950)
	res := ApplyValidation(open, nil, nil, nil)
	if !res.IsValid {
		t.Fatalf("valid open trade rejected: %v", res.Errors)
	}
	if open.State != models.StateOpen {
		t.Errorf("open trade state = %s, want OPEN preserved", open.State)
	}

	closed := validDraft()
	closed.State = models.StateClosed
	ApplyValidation(closed, nil, nil, nil)
	if closed.State != models.StateClosed {
		t.Errorf("closed trade state = %s, want CLOSED preserved", closed.State)
	}
}

func TestApplyValidationIncompleteState(t *testing.T) {
	// Required identity fields present but direction missing is a hard
	// error; direction present but no instrument is also an error. A
	// trade with all identity fields but nothing else stays DRAFT.
	trade := validDraft()
	res := ApplyValidation(trade, nil, nil, nil)
	if !res.IsValid {
		t.Fatalf("bare draft rejected: %v", res.Errors)
	}
	if trade.State != models.StateDraft {
		t.Errorf("state = %s, want DRAFT", trade.State)
	}
}
