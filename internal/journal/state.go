// Package journal implements the trade lifecycle state machine, field
// validation, and the reward-to-risk and P&L calculations derived from
// a trade's raw prices. All validation results are returned as data;
// nothing in this package panics or performs I/O.
package journal

import (
	"fmt"

	"tradejournal/internal/models"
)

// transitions is the fixed lifecycle adjacency table. CLOSED is
// terminal. INVALID and INCOMPLETE are assigned by the validator, never
// by an explicit user transition, and can only be escaped back to DRAFT.
var transitions = map[models.TradeState][]models.TradeState{
	models.StateDraft:      {models.StatePlanned, models.StateInvalid, models.StateIncomplete},
	models.StatePlanned:    {models.StateOpen, models.StateMissed, models.StateDraft},
	models.StateOpen:       {models.StateClosed, models.StateInvalid},
	models.StateMissed:     {models.StateDraft},
	models.StateClosed:     {},
	models.StateInvalid:    {models.StateDraft},
	models.StateIncomplete: {models.StateDraft},
}

// TransitionResult reports whether a requested state change is legal.
// Illegal transitions are an expected condition (a UI racing ahead of
// its data), so they come back as data rather than a Go error.
type TransitionResult struct {
	Valid bool
	Error string
}

// ValidateTransition checks a requested state change against the
// lifecycle table and the per-state preconditions: entering OPEN
// requires an actual entry price and a stop loss, entering CLOSED
// requires an exit price.
func ValidateTransition(current, next models.TradeState, trade *models.Trade) TransitionResult {
	allowed := false
	for _, s := range transitions[current] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return TransitionResult{
			Error: fmt.Sprintf("cannot transition from %s to %s", current, next),
		}
	}

	if next == models.StateOpen && (trade == nil || trade.ActualEntryPrice == nil || trade.StopLoss == nil) {
		return TransitionResult{Error: "entry price and stop loss required to open trade"}
	}
	if next == models.StateClosed && (trade == nil || trade.ExitPrice == nil) {
		return TransitionResult{Error: "exit price required to close trade"}
	}

	return TransitionResult{Valid: true}
}

// AllowedTransitions returns the states reachable from the given state.
func AllowedTransitions(state models.TradeState) []models.TradeState {
	out := make([]models.TradeState, len(transitions[state]))
	copy(out, transitions[state])
	return out
}

// Terminal reports whether a state has no outgoing transitions.
func Terminal(state models.TradeState) bool {
	return len(transitions[state]) == 0
}
