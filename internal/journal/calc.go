package journal

import (
	"math"

	"tradejournal/internal/models"
)

// round2 rounds to cent precision, half away from zero. Rounding
// happens at the point of computation so stored and displayed values
// never diverge.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlannedRR computes the planned reward-to-risk ratio
// |takeProfit-entry| / |entry-stopLoss|, rounded to two decimals.
// Nil when any operand is missing or the risk distance is zero.
func PlannedRR(entry, stopLoss, takeProfit *float64) *float64 {
	if entry == nil || stopLoss == nil || takeProfit == nil {
		return nil
	}
	risk := math.Abs(*entry - *stopLoss)
	if risk == 0 {
		return nil
	}
	rr := round2(math.Abs(*takeProfit-*entry) / risk)
	return &rr
}

// ActualRR computes the realized R-multiple: the signed P&L distance
// ((exit-entry) for LONG, (entry-exit) for SHORT) over the risk
// distance, rounded to two decimals. Nil when an operand is missing or
// the risk distance is zero; never an infinity.
func ActualRR(entry, stopLoss, exitPrice *float64, direction models.Direction) *float64 {
	if entry == nil || stopLoss == nil || exitPrice == nil {
		return nil
	}
	risk := math.Abs(*entry - *stopLoss)
	if risk == 0 {
		return nil
	}
	pnl := *exitPrice - *entry
	if direction == models.Short {
		pnl = *entry - *exitPrice
	}
	rr := round2(pnl / risk)
	return &rr
}

// Status classifies a trade's outcome from its realized R-multiple.
// The ±0.1R band is a deliberate dead zone: near-zero-R trades are
// breakeven, not noise-sensitive wins or losses. A nil R-multiple means
// the trade has not resolved yet.
func Status(actualRR *float64) models.TradeStatus {
	if actualRR == nil {
		return models.StatusPending
	}
	switch {
	case *actualRR > 0.1:
		return models.StatusWin
	case *actualRR < -0.1:
		return models.StatusLoss
	}
	return models.StatusBreakeven
}

// PnL computes net profit/loss in account currency, rounded to cents.
// STOCKS and CRYPTO multiply the signed price difference by the
// position size directly; FOREX, FUTURES and INDICES additionally
// multiply by the pip/point value. Nil when an input is missing.
func PnL(entry, exit, positionSize, pipPointValue *float64, direction models.Direction, marketType models.MarketType) *float64 {
	if entry == nil || exit == nil || positionSize == nil {
		return nil
	}
	if _, ok := models.FieldConfigs[marketType]; !ok {
		return nil
	}

	diff := *exit - *entry
	if direction == models.Short {
		diff = *entry - *exit
	}

	if marketType == models.MarketStocks || marketType == models.MarketCrypto {
		pl := round2(diff * *positionSize)
		return &pl
	}

	if pipPointValue == nil {
		return nil
	}
	pl := round2(diff * *positionSize * *pipPointValue)
	return &pl
}

// PositionSizeFromRisk derives a position size from an account balance
// and a percentage risk budget. STOCKS/CRYPTO size by raw price
// distance; the other markets divide by the pip/point value as well.
// Nil when inputs are missing or the stop distance is zero.
func PositionSizeFromRisk(accountBalance, riskPct, entry, stopLoss, pipPointValue *float64, marketType models.MarketType) *float64 {
	if accountBalance == nil || riskPct == nil || entry == nil || stopLoss == nil {
		return nil
	}
	riskAmount := *accountBalance * (*riskPct / 100)
	distance := math.Abs(*entry - *stopLoss)
	if distance == 0 {
		return nil
	}

	if marketType == models.MarketStocks || marketType == models.MarketCrypto {
		size := round2(riskAmount / distance)
		return &size
	}

	if pipPointValue == nil || *pipPointValue <= 0 {
		return nil
	}
	size := round2(riskAmount / (distance * *pipPointValue))
	return &size
}

// Recompute refreshes every derived field on the trade from its source
// fields. Derived fields are projections: a stored planned_rr or net_pl
// is never trusted over what the prices say.
func Recompute(t *models.Trade) {
	entry := t.ActualEntryPrice
	if entry == nil {
		entry = t.PlannedEntryPrice
	}
	t.PlannedRR = PlannedRR(entry, t.StopLoss, t.TakeProfit)
	t.ActualRR = ActualRR(t.ActualEntryPrice, t.StopLoss, t.ExitPrice, t.Direction)
	t.Status = Status(t.ActualRR)
	t.NetPL = PnL(t.ActualEntryPrice, t.ExitPrice, t.PositionSize(), t.PipPointValue(), t.Direction, t.MarketType)

	t.HoldingHours = nil
	if start := t.EntryTime(); start != nil && t.ExitTimeUTC != nil {
		hours := t.ExitTimeUTC.Sub(*start).Hours()
		t.HoldingHours = &hours
	}
}
