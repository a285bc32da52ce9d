package analytics

import (
	"math"
	"sort"
	"time"

	"tradejournal/internal/models"
)

// EquityPoint is one point on the equity curve. The synthetic first
// point has a nil date and no trade, so drawdown always has a defined
// peak even for an empty collection.
type EquityPoint struct {
	Date    *time.Time `json:"date"`
	Balance float64    `json:"balance"`
	TradeID string     `json:"trade,omitempty"`
}

// EquityCurve folds CLOSED trades with a computed P&L over the starting
// balance, ordered by exit time ascending. Balances are kept at cent
// precision.
func EquityCurve(trades []models.Trade, startingBalance float64) []EquityPoint {
	closed := closedWithPL(trades)
	sort.SliceStable(closed, func(i, j int) bool {
		return exitTimeOrZero(closed[i]).Before(exitTimeOrZero(closed[j]))
	})

	curve := make([]EquityPoint, 0, len(closed)+1)
	curve = append(curve, EquityPoint{Balance: startingBalance})

	balance := startingBalance
	for _, t := range closed {
		balance += *t.NetPL
		curve = append(curve, EquityPoint{
			Date:    t.ExitTimeUTC,
			Balance: round2(balance),
			TradeID: t.TradeID,
		})
	}
	return curve
}

func exitTimeOrZero(t models.Trade) time.Time {
	if t.ExitTimeUTC == nil {
		return time.Time{}
	}
	return *t.ExitTimeUTC
}

// DrawdownResult reports equity decline from the running peak. The
// maximum is selected by percentage of peak, not absolute amount, so a
// small early swing on a small balance can legitimately outrank a
// larger later swing on a grown balance; the absolute amount reported
// is the one belonging to that percentage maximum.
type DrawdownResult struct {
	MaxDrawdown     float64 `json:"maxDrawdown"`
	MaxDrawdownPct  float64 `json:"maxDrawdownPct"`
	CurrentDrawdown float64 `json:"currentDrawdown"`
}

// Drawdown walks the equity curve once, tracking the running peak.
// Deterministic and idempotent for a given curve.
func Drawdown(curve []EquityPoint) DrawdownResult {
	var peak float64
	if len(curve) > 0 {
		peak = curve[0].Balance
	}

	var res DrawdownResult
	for _, p := range curve {
		if p.Balance > peak {
			peak = p.Balance
		}
		res.CurrentDrawdown = peak - p.Balance
		pct := 0.0
		if peak > 0 {
			pct = res.CurrentDrawdown / peak * 100
		}
		if pct > res.MaxDrawdownPct {
			res.MaxDrawdownPct = pct
			res.MaxDrawdown = res.CurrentDrawdown
		}
	}
	res.MaxDrawdownPct = round2(res.MaxDrawdownPct)
	return res
}

// CAGR computes the compound annual growth rate in percent from the
// starting balance, the balance implied by cumulative P&L, and the
// elapsed years between startDate (or the first closed trade's entry
// when nil) and the last closed trade's exit. Returns 0 for empty
// input or non-positive elapsed time.
func CAGR(trades []models.Trade, startingBalance float64, startDate *time.Time) float64 {
	if startingBalance <= 0 || len(trades) == 0 {
		return 0
	}

	var closed []models.Trade
	for _, t := range trades {
		if t.State == models.StateClosed && t.ExitTimeUTC != nil {
			closed = append(closed, t)
		}
	}
	if len(closed) == 0 {
		return 0
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].ExitTimeUTC.Before(*closed[j].ExitTimeUTC)
	})

	endBalance := startingBalance
	for _, t := range trades {
		if t.NetPL != nil {
			endBalance += *t.NetPL
		}
	}

	start := startDate
	if start == nil {
		start = closed[0].EntryTime()
	}
	if start == nil {
		return 0
	}
	end := *closed[len(closed)-1].ExitTimeUTC
	years := end.Sub(*start).Hours() / (24 * 365.25)
	if years <= 0 {
		return 0
	}

	return math.Round((math.Pow(endBalance/startingBalance, 1/years)-1)*10000) / 100
}
