package analytics

import (
	"time"

	"tradejournal/internal/models"
)

// SummaryOptions are the scalar inputs to PerformanceSummary.
type SummaryOptions struct {
	StartingBalance float64
	RiskFreeRate    float64
	SortinoTarget   float64
	StartDate       *time.Time
}

// PerformanceSummary is the full set of headline statistics for a
// trade collection.
type PerformanceSummary struct {
	CurrentBalance  float64      `json:"currentBalance"`
	TotalPnL        float64      `json:"totalPnL"`
	WinRateStats    WinRateStats `json:"winRate"`
	RRStats         RRStats      `json:"rrStats"`
	MaxDrawdown     float64      `json:"maxDrawdown"`
	MaxDrawdownPct  float64      `json:"maxDrawdownPct"`
	ProfitFactor    float64      `json:"profitFactor"`
	Expectancy      float64      `json:"expectancy"`
	Sharpe          float64      `json:"sharpe"`
	Sortino         float64      `json:"sortino"`
	SQN             float64      `json:"sqn"`
	CAGR            float64      `json:"cagr"`
	Streak          Streak       `json:"streak"`
	InvalidCount    int          `json:"invalidCount"`
	IncompleteCount int          `json:"incompleteCount"`
}

// Summarize computes every headline statistic in one pass over the
// collection. The result is reproducible from the collection alone.
func Summarize(trades []models.Trade, opts SummaryOptions) PerformanceSummary {
	curve := EquityCurve(trades, opts.StartingBalance)
	dd := Drawdown(curve)

	current := opts.StartingBalance
	if len(curve) > 0 {
		current = curve[len(curve)-1].Balance
	}

	return PerformanceSummary{
		CurrentBalance:  current,
		TotalPnL:        round2(current - opts.StartingBalance),
		WinRateStats:    WinRate(trades),
		RRStats:         AverageRR(trades),
		MaxDrawdown:     dd.MaxDrawdown,
		MaxDrawdownPct:  dd.MaxDrawdownPct,
		ProfitFactor:    ProfitFactor(trades),
		Expectancy:      Expectancy(trades),
		Sharpe:          Sharpe(trades, opts.RiskFreeRate),
		Sortino:         Sortino(trades, opts.SortinoTarget),
		SQN:             SQN(trades),
		CAGR:            CAGR(trades, opts.StartingBalance, opts.StartDate),
		Streak:          CurrentStreak(trades),
		InvalidCount:    CountInvalid(trades),
		IncompleteCount: CountIncomplete(trades),
	}
}
