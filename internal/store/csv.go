package store

import (
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"tradejournal/internal/models"
)

// csvTrade is the flat CSV projection of a trade. Optional numerics are
// strings so an empty cell round-trips to a nil field instead of a
// spurious zero.
type csvTrade struct {
	TradeID          string `csv:"trade_id"`
	AccountID        string `csv:"account_id"`
	SetupID          string `csv:"setup_id"`
	State            string `csv:"trade_state"`
	Status           string `csv:"trade_status"`
	MarketType       string `csv:"market_type"`
	Instrument       string `csv:"instrument"`
	Direction        string `csv:"direction"`
	Session          string `csv:"session"`
	EntryType        string `csv:"entry_type"`
	ExitType         string `csv:"exit_type"`
	PlannedEntry     string `csv:"planned_entry_price"`
	StopLoss         string `csv:"stop_loss"`
	TakeProfit       string `csv:"take_profit"`
	RiskPct          string `csv:"risk_pct"`
	USDRisk          string `csv:"usd_risk"`
	Lots             string `csv:"lots"`
	Contracts        string `csv:"contracts"`
	Shares           string `csv:"shares"`
	Quantity         string `csv:"quantity"`
	PipValue         string `csv:"pip_value"`
	PointValue       string `csv:"point_value"`
	ActualEntryPrice string `csv:"actual_entry_price"`
	ExitPrice        string `csv:"exit_price"`
	EntryDate        string `csv:"entry_date"`
	EntryTimeUTC     string `csv:"entry_time_utc"`
	ExitTimeUTC      string `csv:"exit_time_utc"`
	PreTradeEmotion  string `csv:"pre_trade_emotion"`
	Notes            string `csv:"notes"`
	NetPL            string `csv:"net_pl"`
	ActualRR         string `csv:"actual_rr"`
	PlannedRR        string `csv:"planned_rr"`
}

// ExportTradesCSV writes the trades as CSV.
func ExportTradesCSV(w io.Writer, trades []models.Trade) error {
	rows := make([]*csvTrade, len(trades))
	for i := range trades {
		rows[i] = toCSVTrade(&trades[i])
	}
	return gocsv.Marshal(rows, w)
}

// ImportTradesCSV reads trades from CSV. Derived columns present in the
// file are parsed but callers are expected to recompute them before
// trusting them.
func ImportTradesCSV(r io.Reader) ([]models.Trade, error) {
	var rows []*csvTrade
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	trades := make([]models.Trade, len(rows))
	for i, row := range rows {
		trades[i] = fromCSVTrade(row)
	}
	return trades, nil
}

func toCSVTrade(t *models.Trade) *csvTrade {
	return &csvTrade{
		TradeID:          t.TradeID,
		AccountID:        t.AccountID,
		SetupID:          t.SetupID,
		State:            string(t.State),
		Status:           string(t.Status),
		MarketType:       string(t.MarketType),
		Instrument:       t.Instrument,
		Direction:        string(t.Direction),
		Session:          string(t.Session),
		EntryType:        string(t.EntryType),
		ExitType:         string(t.ExitType),
		PlannedEntry:     fstr(t.PlannedEntryPrice),
		StopLoss:         fstr(t.StopLoss),
		TakeProfit:       fstr(t.TakeProfit),
		RiskPct:          fstr(t.RiskPct),
		USDRisk:          fstr(t.USDRisk),
		Lots:             fstr(t.Lots),
		Contracts:        fstr(t.Contracts),
		Shares:           fstr(t.Shares),
		Quantity:         fstr(t.Quantity),
		PipValue:         fstr(t.PipValue),
		PointValue:       fstr(t.PointValue),
		ActualEntryPrice: fstr(t.ActualEntryPrice),
		ExitPrice:        fstr(t.ExitPrice),
		EntryDate:        tstr(t.EntryDate),
		EntryTimeUTC:     tstr(t.EntryTimeUTC),
		ExitTimeUTC:      tstr(t.ExitTimeUTC),
		PreTradeEmotion:  string(t.PreTradeEmotion),
		Notes:            t.Notes,
		NetPL:            fstr(t.NetPL),
		ActualRR:         fstr(t.ActualRR),
		PlannedRR:        fstr(t.PlannedRR),
	}
}

func fromCSVTrade(row *csvTrade) models.Trade {
	return models.Trade{
		TradeID:           row.TradeID,
		AccountID:         row.AccountID,
		SetupID:           row.SetupID,
		State:             models.TradeState(row.State),
		Status:            models.TradeStatus(row.Status),
		MarketType:        models.MarketType(row.MarketType),
		Instrument:        row.Instrument,
		Direction:         models.Direction(row.Direction),
		Session:           models.Session(row.Session),
		EntryType:         models.EntryType(row.EntryType),
		ExitType:          models.ExitType(row.ExitType),
		PlannedEntryPrice: fptr(row.PlannedEntry),
		StopLoss:          fptr(row.StopLoss),
		TakeProfit:        fptr(row.TakeProfit),
		RiskPct:           fptr(row.RiskPct),
		USDRisk:           fptr(row.USDRisk),
		Lots:              fptr(row.Lots),
		Contracts:         fptr(row.Contracts),
		Shares:            fptr(row.Shares),
		Quantity:          fptr(row.Quantity),
		PipValue:          fptr(row.PipValue),
		PointValue:        fptr(row.PointValue),
		ActualEntryPrice:  fptr(row.ActualEntryPrice),
		ExitPrice:         fptr(row.ExitPrice),
		EntryDate:         tparse(row.EntryDate),
		EntryTimeUTC:      tparse(row.EntryTimeUTC),
		ExitTimeUTC:       tparse(row.ExitTimeUTC),
		PreTradeEmotion:   models.Emotion(row.PreTradeEmotion),
		Notes:             row.Notes,
		NetPL:             fptr(row.NetPL),
		ActualRR:          fptr(row.ActualRR),
		PlannedRR:         fptr(row.PlannedRR),
	}
}

func fstr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func fptr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func tstr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func tparse(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
