package analytics

import (
	"math"

	"tradejournal/internal/models"
)

// ProfitFactor is gross profit over absolute gross loss across closed
// trades. A profitable record with zero gross loss is +Inf by
// convention (unbounded, not an error); an empty record is 0.
func ProfitFactor(trades []models.Trade) float64 {
	var grossProfit, grossLoss float64
	for _, t := range closedWithPL(trades) {
		if *t.NetPL > 0 {
			grossProfit += *t.NetPL
		} else if *t.NetPL < 0 {
			grossLoss += -*t.NetPL
		}
	}
	if grossLoss > 0 {
		return round2(grossProfit / grossLoss)
	}
	if grossProfit > 0 {
		return math.Inf(1)
	}
	return 0
}

// Expectancy is the probability-weighted average outcome in
// R-multiples: winProb×avgWinR + lossProb×avgLossR.
func Expectancy(trades []models.Trade) float64 {
	stats := WinRate(trades)
	if stats.Total == 0 {
		return 0
	}
	rr := AverageRR(trades)
	winProb := stats.WinRate / 100
	lossProb := 1 - winProb
	return round2(winProb*rr.AvgWinRR + lossProb*rr.AvgLossRR)
}

// Sharpe computes a simplified per-trade Sharpe ratio over raw trade
// P&L rather than normalized periodic returns. Requires at least two
// closed trades with P&L, else 0.
func Sharpe(trades []models.Trade, riskFreeRate float64) float64 {
	closed := closedWithPL(trades)
	if len(closed) < 2 {
		return 0
	}
	returns := make([]float64, len(closed))
	for i, t := range closed {
		returns[i] = *t.NetPL
	}
	sd := stdDev(returns)
	if sd == 0 {
		return 0
	}
	return round2((mean(returns) - riskFreeRate) / sd)
}

// Sortino computes a simplified per-trade Sortino ratio over raw trade
// P&L. The downside deviation divides by the full sample count, not
// just the downside subsample, which biases the ratio conservatively.
// Requires at least two closed trades with P&L, else 0.
func Sortino(trades []models.Trade, targetReturn float64) float64 {
	closed := closedWithPL(trades)
	if len(closed) < 2 {
		return 0
	}
	returns := make([]float64, len(closed))
	for i, t := range closed {
		returns[i] = *t.NetPL
	}

	var downside float64
	hasDownside := false
	for _, r := range returns {
		if r < targetReturn {
			d := r - targetReturn
			downside += d * d
			hasDownside = true
		}
	}
	if !hasDownside {
		return 0
	}
	downsideDev := math.Sqrt(downside / float64(len(returns)))
	if downsideDev == 0 {
		return 0
	}
	return round2((mean(returns) - targetReturn) / downsideDev)
}

// SQN is Van Tharp's System Quality Number:
// sqrt(n) × expectancy / stdDev(R-multiples). The statistic's
// documented minimum sample is ten closed trades; below that it is 0.
func SQN(trades []models.Trade) float64 {
	closed := closedWithPL(trades)
	if len(closed) < 10 {
		return 0
	}
	rs := make([]float64, len(closed))
	for i, t := range closed {
		if t.ActualRR != nil {
			rs[i] = *t.ActualRR
		}
	}
	sd := stdDev(rs)
	if sd == 0 {
		return 0
	}
	return round2(math.Sqrt(float64(len(closed))) * Expectancy(trades) / sd)
}
