package journal

import (
	"fmt"

	"tradejournal/internal/models"
)

// ValidationResult carries hard errors, soft warnings, and the state
// the validator would assign. Errors block a save; warnings do not.
// The derived state is advisory: callers apply it only when the trade
// is not already in a protected execution state (OPEN, CLOSED,
// PLANNED), so the validator never silently rewinds a live trade.
type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
	State    models.TradeState
}

// ValidateTrade checks a trade against field rules, its referenced
// setup, and the account's risk policy. It never returns a Go error:
// every problem is reported in the result so the validator is safe to
// call speculatively (e.g. as-you-type).
func ValidateTrade(trade *models.Trade, setups []models.Setup, rules []models.Rule, account *models.Account) ValidationResult {
	var errs, warns []string

	if trade.AccountID == "" {
		errs = append(errs, "account is required")
	}
	if trade.Instrument == "" {
		errs = append(errs, "instrument is required")
	}
	if !trade.Direction.Valid() {
		errs = append(errs, "valid direction required")
	}
	if !trade.MarketType.Valid() {
		errs = append(errs, "valid market type required")
	}

	if trade.State == models.StateOpen || trade.State == models.StateClosed {
		if trade.ActualEntryPrice == nil || *trade.ActualEntryPrice <= 0 {
			errs = append(errs, "entry price required")
		}
		if trade.StopLoss == nil || *trade.StopLoss <= 0 {
			errs = append(errs, "stop loss required")
		}
	}

	// The stop must sit on the loss side of the entry. This is a hard
	// error whenever both prices are present, regardless of state.
	if trade.StopLoss != nil && trade.ActualEntryPrice != nil {
		if trade.Direction == models.Long && *trade.StopLoss >= *trade.ActualEntryPrice {
			errs = append(errs, "stop loss must be below entry for LONG trades")
		}
		if trade.Direction == models.Short && *trade.StopLoss <= *trade.ActualEntryPrice {
			errs = append(errs, "stop loss must be above entry for SHORT trades")
		}
	}

	if trade.SetupID != "" {
		for _, s := range setups {
			if s.SetupID == trade.SetupID && s.Status != models.SetupActive {
				warns = append(warns, fmt.Sprintf("setup %q is %s", s.Name, s.Status))
				break
			}
		}
	}

	if account != nil {
		if rule := findRule(rules, trade.AccountID); rule != nil {
			if trade.RiskPct != nil && rule.MaxRiskPerTradePct > 0 && *trade.RiskPct > rule.MaxRiskPerTradePct {
				msg := fmt.Sprintf("risk %.2f%% exceeds max %.2f%%", *trade.RiskPct, rule.MaxRiskPerTradePct)
				if rule.EnforcementLevel == models.EnforceStrict {
					errs = append(errs, msg)
				} else {
					warns = append(warns, msg)
				}
			}
			if trade.PlannedRR != nil && rule.MinimumRR > 0 && *trade.PlannedRR < rule.MinimumRR {
				warns = append(warns, fmt.Sprintf("RR %.2f below minimum %.2f", *trade.PlannedRR, rule.MinimumRR))
			}
		}
	}

	state := trade.State
	switch {
	case len(errs) > 0:
		state = models.StateInvalid
	case !trade.HasRequiredFields():
		state = models.StateIncomplete
	}

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
		State:    state,
	}
}

func findRule(rules []models.Rule, accountID string) *models.Rule {
	for i := range rules {
		if rules[i].AccountID == accountID {
			return &rules[i]
		}
	}
	return nil
}

// protectedStates are execution states the validator must not rewind.
var protectedStates = map[models.TradeState]bool{
	models.StateOpen:    true,
	models.StateClosed:  true,
	models.StatePlanned: true,
}

// ApplyValidation recomputes the trade's derived fields, validates it,
// and applies the derived state when the trade is not in a protected
// execution state. Returns the result for the caller to decide whether
// to block the save.
func ApplyValidation(trade *models.Trade, setups []models.Setup, rules []models.Rule, account *models.Account) ValidationResult {
	Recompute(trade)
	res := ValidateTrade(trade, setups, rules, account)
	if !protectedStates[trade.State] {
		trade.State = res.State
	}
	return res
}
