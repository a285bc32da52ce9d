package market

import (
	"strings"
	"time"

	"tradejournal/internal/models"
)

// SessionWindow is a session's UTC hour range [Start, End).
type SessionWindow struct {
	Session models.Session
	Start   int
	End     int
}

// SessionWindows lists the trading sessions in lookup order. The
// London/New York overlap is checked first so the overlap wins over
// plain LONDON or NEW_YORK for hours both cover.
var SessionWindows = []SessionWindow{
	{Session: models.SessionOverlap, Start: 12, End: 16},
	{Session: models.SessionAsia, Start: 0, End: 9},
	{Session: models.SessionLondon, Start: 7, End: 16},
	{Session: models.SessionNewYork, Start: 12, End: 21},
}

// SessionAt returns the trading session active at the given time (UTC),
// or OFF_HOURS when no session window covers it.
func SessionAt(t time.Time) models.Session {
	hour := t.UTC().Hour()
	for _, w := range SessionWindows {
		if hour >= w.Start && hour < w.End {
			return w.Session
		}
	}
	return models.SessionOffHours
}

// CurrentSession returns the session active right now.
func CurrentSession() models.Session {
	return SessionAt(time.Now())
}

// BuildTradeName assembles a human-readable trade name from whichever
// parts are present.
func BuildTradeName(instrument string, session models.Session, direction models.Direction, setup, entryType string) string {
	var parts []string
	if instrument != "" {
		parts = append(parts, strings.ToUpper(instrument))
	}
	if session != "" {
		parts = append(parts, strings.ReplaceAll(string(session), "_", " "))
	}
	if direction != "" {
		parts = append(parts, string(direction))
	}
	if setup != "" {
		r := strings.NewReplacer("-", " ", "_", " ")
		parts = append(parts, r.Replace(setup))
	}
	if entryType != "" {
		parts = append(parts, entryType)
	}
	return strings.Join(parts, " ")
}

// TradeNameOptions suggests trade names of increasing specificity for a
// trade, resolving its setup name from the provided setups.
func TradeNameOptions(trade *models.Trade, setups []models.Setup) []string {
	var setupName string
	for _, s := range setups {
		if s.SetupID == trade.SetupID {
			setupName = s.Name
			break
		}
	}

	var options []string
	if trade.Instrument != "" && trade.Direction != "" {
		options = append(options, trade.Instrument+" "+string(trade.Direction))
	}
	if trade.Instrument != "" && trade.Session != "" && trade.Direction != "" {
		options = append(options, trade.Instrument+" "+string(trade.Session)+" "+string(trade.Direction))
		if setupName != "" {
			options = append(options, trade.Instrument+" "+string(trade.Session)+" "+string(trade.Direction)+" "+setupName)
		}
	}
	if trade.Instrument != "" && setupName != "" {
		options = append(options, trade.Instrument+" "+setupName)
	}
	return options
}
