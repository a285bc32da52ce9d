package analytics

import (
	"math"
	"sort"
	"time"

	"tradejournal/internal/models"
)

// WinRateStats partitions closed trades by outcome.
// Wins + Losses + Breakeven always equals Total.
type WinRateStats struct {
	WinRate   float64 `json:"winRate"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Breakeven int     `json:"breakeven"`
	Total     int     `json:"total"`
}

// WinRate counts outcomes over CLOSED trades. The rate is wins/total as
// a percentage rounded to two decimals; zero trades yields zero.
func WinRate(trades []models.Trade) WinRateStats {
	closed := closedTrades(trades)
	stats := WinRateStats{Total: len(closed)}
	if stats.Total == 0 {
		return stats
	}
	for _, t := range closed {
		switch t.Status {
		case models.StatusWin:
			stats.Wins++
		case models.StatusLoss:
			stats.Losses++
		default:
			stats.Breakeven++
		}
	}
	stats.WinRate = round2(float64(stats.Wins) / float64(stats.Total) * 100)
	return stats
}

// GroupFunc extracts a grouping key from a trade. An empty key lands
// the trade in the Unknown bucket rather than dropping it.
type GroupFunc func(*models.Trade) string

// UnknownGroup is the bucket for trades missing the grouping field.
const UnknownGroup = "Unknown"

// GroupBy returns a GroupFunc for a named trade field. Unrecognized
// field names group everything under Unknown.
func GroupBy(field string) GroupFunc {
	switch field {
	case "setup_id":
		return func(t *models.Trade) string { return t.SetupID }
	case "session":
		return func(t *models.Trade) string { return string(t.Session) }
	case "market_type":
		return func(t *models.Trade) string { return string(t.MarketType) }
	case "instrument":
		return func(t *models.Trade) string { return t.Instrument }
	case "direction":
		return func(t *models.Trade) string { return string(t.Direction) }
	case "pre_trade_emotion":
		return func(t *models.Trade) string { return string(t.PreTradeEmotion) }
	case "exit_type":
		return func(t *models.Trade) string { return string(t.ExitType) }
	}
	return func(*models.Trade) string { return "" }
}

// WinRateBy partitions CLOSED trades by the given discriminator and
// computes per-group outcome counts. Groups with zero trades are never
// constructed.
func WinRateBy(trades []models.Trade, group GroupFunc) map[string]WinRateStats {
	out := make(map[string]WinRateStats)
	for _, t := range closedTrades(trades) {
		key := group(&t)
		if key == "" {
			key = UnknownGroup
		}
		stats := out[key]
		stats.Total++
		switch t.Status {
		case models.StatusWin:
			stats.Wins++
		case models.StatusLoss:
			stats.Losses++
		default:
			stats.Breakeven++
		}
		out[key] = stats
	}
	for key, stats := range out {
		stats.WinRate = round2(float64(stats.Wins) / float64(stats.Total) * 100)
		out[key] = stats
	}
	return out
}

// RRBucket is one histogram bucket of realized R-multiples.
type RRBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RRDistribution builds the fixed seven-bucket histogram of realized
// R-multiples over CLOSED trades. Boundaries are half-open on the
// lower bound.
func RRDistribution(trades []models.Trade) []RRBucket {
	buckets := []RRBucket{
		{Label: "<-2R"}, {Label: "-2R to -1R"}, {Label: "-1R to 0"},
		{Label: "0 to 1R"}, {Label: "1R to 2R"}, {Label: "2R to 3R"},
		{Label: ">3R"},
	}
	for _, t := range closedTrades(trades) {
		if t.ActualRR == nil {
			continue
		}
		rr := *t.ActualRR
		var idx int
		switch {
		case rr < -2:
			idx = 0
		case rr < -1:
			idx = 1
		case rr < 0:
			idx = 2
		case rr < 1:
			idx = 3
		case rr < 2:
			idx = 4
		case rr < 3:
			idx = 5
		default:
			idx = 6
		}
		buckets[idx].Count++
	}
	return buckets
}

// RRStats are average realized R-multiples over closed trades.
type RRStats struct {
	AvgRR     float64 `json:"avgRR"`
	AvgWinRR  float64 `json:"avgWinRR"`
	AvgLossRR float64 `json:"avgLossRR"`
}

// AverageRR averages realized R-multiples overall and per outcome.
func AverageRR(trades []models.Trade) RRStats {
	var all, wins, losses []float64
	for _, t := range closedTrades(trades) {
		if t.ActualRR == nil {
			continue
		}
		all = append(all, *t.ActualRR)
		switch t.Status {
		case models.StatusWin:
			wins = append(wins, *t.ActualRR)
		case models.StatusLoss:
			losses = append(losses, *t.ActualRR)
		}
	}
	if len(all) == 0 {
		return RRStats{}
	}
	return RRStats{
		AvgRR:     round2(mean(all)),
		AvgWinRR:  round2OrZero(wins),
		AvgLossRR: round2OrZero(losses),
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2OrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return round2(mean(values))
}

// Streak reports the run of consecutive identical outcomes ending at
// the most recent closed trade.
type Streak struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CurrentStreak scans CLOSED trades most-recent-first (by entry time)
// and counts how many in a row share the latest trade's outcome.
func CurrentStreak(trades []models.Trade) Streak {
	closed := closedTrades(trades)
	sort.SliceStable(closed, func(i, j int) bool {
		return entryTimeOrZero(closed[i]).After(entryTimeOrZero(closed[j]))
	})
	if len(closed) == 0 {
		return Streak{Type: "NONE"}
	}

	latest := closed[0].Status
	count := 0
	for _, t := range closed {
		if t.Status != latest {
			break
		}
		count++
	}
	return Streak{Type: string(latest), Count: count}
}

func entryTimeOrZero(t models.Trade) time.Time {
	if ts := t.EntryTime(); ts != nil {
		return *ts
	}
	return time.Time{}
}

// EmotionStats is the win rate conditioned on the recorded pre-trade
// emotional state. WinRate is a whole-number percentage.
type EmotionStats struct {
	Wins    int     `json:"wins"`
	Total   int     `json:"total"`
	WinRate float64 `json:"winRate"`
	AvgPnL  float64 `json:"avgPnl"`
}

// Psychometrics computes per-emotion outcome stats over CLOSED trades.
// Only the fixed recognized emotion tags get buckets; unknown tags are
// ignored rather than creating new ones.
func Psychometrics(trades []models.Trade) map[models.Emotion]EmotionStats {
	out := make(map[models.Emotion]EmotionStats, len(models.Emotions))
	pnl := make(map[models.Emotion]float64)
	for _, e := range models.Emotions {
		out[e] = EmotionStats{}
	}

	for _, t := range closedTrades(trades) {
		stats, ok := out[t.PreTradeEmotion]
		if !ok {
			continue
		}
		stats.Total++
		if t.Status == models.StatusWin {
			stats.Wins++
		}
		if t.NetPL != nil {
			pnl[t.PreTradeEmotion] += *t.NetPL
		}
		out[t.PreTradeEmotion] = stats
	}

	for e, stats := range out {
		if stats.Total > 0 {
			stats.WinRate = math.Round(float64(stats.Wins) / float64(stats.Total) * 100)
			stats.AvgPnL = round2(pnl[e] / float64(stats.Total))
			out[e] = stats
		}
	}
	return out
}
