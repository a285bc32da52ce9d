package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tradejournal/internal/models"
)

func TestCSVExportImportRoundTrip(t *testing.T) {
	entry := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(3 * time.Hour)
	trades := []models.Trade{
		{
			TradeID:           "T-000001",
			AccountID:         "A-1",
			State:             models.StateClosed,
			Status:            models.StatusWin,
			MarketType:        models.MarketForex,
			Instrument:        "EURUSD",
			Direction:         models.Long,
			PlannedEntryPrice: f(1.1),
			StopLoss:          f(1.095),
			ExitPrice:         f(1.11),
			EntryTimeUTC:      &entry,
			ExitTimeUTC:       &exit,
			Notes:             "news spike",
		},
		{
			TradeID:    "T-000002",
			AccountID:  "A-1",
			State:      models.StateDraft,
			MarketType: models.MarketCrypto,
			Instrument: "BTCUSD",
			Direction:  models.Short,
		},
	}

	var buf bytes.Buffer
	if err := ExportTradesCSV(&buf, trades); err != nil {
		t.Fatalf("ExportTradesCSV: %v", err)
	}

	got, err := ImportTradesCSV(&buf)
	if err != nil {
		t.Fatalf("ImportTradesCSV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("imported %d trades, want 2", len(got))
	}

	first := got[0]
	if first.TradeID != "T-000001" || first.State != models.StateClosed ||
		first.Direction != models.Long || first.Notes != "news spike" {
		t.Errorf("first trade mismatch: %+v", first)
	}
	if first.StopLoss == nil || *first.StopLoss != 1.095 {
		t.Errorf("StopLoss = %v, want 1.095", first.StopLoss)
	}
	if first.EntryTimeUTC == nil || !first.EntryTimeUTC.Equal(entry) {
		t.Errorf("EntryTimeUTC = %v, want %v", first.EntryTimeUTC, entry)
	}

	second := got[1]
	if second.PlannedEntryPrice != nil || second.ExitPrice != nil ||
		second.EntryTimeUTC != nil {
		t.Errorf("sparse trade gained fields: %+v", second)
	}
}

func TestCSVImportParsesBareDates(t *testing.T) {
	header := strings.Split("trade_id,account_id,setup_id,trade_state,trade_status,market_type,instrument,direction,session,entry_type,exit_type,planned_entry_price,stop_loss,take_profit,risk_pct,usd_risk,lots,contracts,shares,quantity,pip_value,point_value,actual_entry_price,exit_price,entry_date,entry_time_utc,exit_time_utc,pre_trade_emotion,notes,net_pl,actual_rr,planned_rr", ",")
	values := map[string]string{
		"trade_id":    "T-000001",
		"account_id":  "A-1",
		"trade_state": "DRAFT",
		"market_type": "FOREX",
		"instrument":  "EURUSD",
		"direction":   "LONG",
		"entry_date":  "2024-03-05",
	}
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = values[col]
	}
	csv := strings.Join(header, ",") + "\n" + strings.Join(row, ",")

	got, err := ImportTradesCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportTradesCSV: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("imported %d trades, want 1", len(got))
	}
	if got[0].EntryDate == nil {
		t.Fatal("bare date column did not parse")
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got[0].EntryDate.Equal(want) {
		t.Errorf("EntryDate = %v, want %v", got[0].EntryDate, want)
	}
}
