// Package analytics aggregates a trade collection into performance
// statistics: equity curve, drawdown, win rates, R-multiple
// distributions, and risk-adjusted return ratios.
//
// Every function is a pure computation over the slice it is given; no
// state carries over between calls, so the same collection can be fed
// to any number of these functions concurrently without coordination.
package analytics

import (
	"math"

	"tradejournal/internal/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// closedTrades filters to trades in the terminal CLOSED state.
func closedTrades(trades []models.Trade) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if t.State == models.StateClosed {
			out = append(out, t)
		}
	}
	return out
}

// closedWithPL filters to CLOSED trades with a computed P&L.
func closedWithPL(trades []models.Trade) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if t.State == models.StateClosed && t.NetPL != nil {
			out = append(out, t)
		}
	}
	return out
}

// stdDev is the population standard deviation (divides by n).
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// CountInvalid returns the number of trades in the INVALID state.
func CountInvalid(trades []models.Trade) int {
	n := 0
	for _, t := range trades {
		if t.State == models.StateInvalid {
			n++
		}
	}
	return n
}

// CountIncomplete returns the number of trades in the INCOMPLETE state.
func CountIncomplete(trades []models.Trade) int {
	n := 0
	for _, t := range trades {
		if t.State == models.StateIncomplete {
			n++
		}
	}
	return n
}
