package analytics

import (
	"fmt"

	"tradejournal/internal/models"
)

// HoldBucket is one holding-duration histogram bucket.
type HoldBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimeStats aggregates per-trade holding durations in hours.
type TimeStats struct {
	AvgHoldHours     float64      `json:"avgHoldTime"`
	AvgWinHoldHours  float64      `json:"avgWinHold"`
	AvgLossHoldHours float64      `json:"avgLossHold"`
	PnLPerHour       float64      `json:"pnlPerHour"`
	Buckets          []HoldBucket `json:"buckets"`
}

// HoldingTimeStats computes holding-duration statistics over CLOSED
// trades that carry both timestamps. A negative duration is a data
// entry error; such trades are skipped so they cannot corrupt the rest
// of the batch. Returns nil when no closed trade has timestamps.
func HoldingTimeStats(trades []models.Trade) *TimeStats {
	var closed []models.Trade
	for _, t := range closedTrades(trades) {
		if t.EntryTime() != nil && t.ExitTimeUTC != nil {
			closed = append(closed, t)
		}
	}
	if len(closed) == 0 {
		return nil
	}

	buckets := []HoldBucket{
		{Label: "<15m"}, {Label: "15m-1h"}, {Label: "1h-4h"},
		{Label: "4h-24h"}, {Label: ">1d"},
	}

	var total, winHours, lossHours, totalPnL float64
	var winCount, lossCount int
	for _, t := range closed {
		hours := t.ExitTimeUTC.Sub(*t.EntryTime()).Hours()
		if hours < 0 {
			continue
		}
		total += hours

		switch t.Status {
		case models.StatusWin:
			winHours += hours
			winCount++
		case models.StatusLoss:
			lossHours += hours
			lossCount++
		}

		switch {
		case hours < 0.25:
			buckets[0].Count++
		case hours < 1:
			buckets[1].Count++
		case hours < 4:
			buckets[2].Count++
		case hours < 24:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}

		if t.NetPL != nil {
			totalPnL += *t.NetPL
		}
	}

	stats := &TimeStats{
		AvgHoldHours: total / float64(len(closed)),
		Buckets:      buckets,
	}
	if winCount > 0 {
		stats.AvgWinHoldHours = winHours / float64(winCount)
	}
	if lossCount > 0 {
		stats.AvgLossHoldHours = lossHours / float64(lossCount)
	}
	if total > 0 {
		stats.PnLPerHour = totalPnL / total
	}
	return stats
}

// Period granularities for TradesByPeriod.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// TradesByPeriod buckets trades by calendar period of their entry time.
// Day keys are YYYY-MM-DD, week keys are the Sunday starting the week,
// month keys are YYYY-MM. Trades without an entry time are dropped.
func TradesByPeriod(trades []models.Trade, period string) map[string][]models.Trade {
	groups := make(map[string][]models.Trade)
	for _, t := range trades {
		ts := t.EntryTime()
		if ts == nil {
			continue
		}
		date := ts.UTC()

		var key string
		switch period {
		case PeriodWeek:
			weekStart := date.AddDate(0, 0, -int(date.Weekday()))
			key = weekStart.Format("2006-01-02")
		case PeriodMonth:
			key = fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
		default:
			key = date.Format("2006-01-02")
		}
		groups[key] = append(groups[key], t)
	}
	return groups
}
