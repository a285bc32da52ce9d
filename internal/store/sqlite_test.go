package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "tradejournal/internal/errors"
	"tradejournal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func f(v float64) *float64 { return &v }

func sampleTrade(id string) *models.Trade {
	entry := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(2 * time.Hour)
	return &models.Trade{
		TradeID:           id,
		AccountID:         "A-1",
		SetupID:           "S-1",
		State:             models.StateClosed,
		Status:            models.StatusWin,
		MarketType:        models.MarketForex,
		Instrument:        "EURUSD",
		Direction:         models.Long,
		Session:           models.SessionLondon,
		EntryType:         models.EntryLimit,
		ExitType:          models.ExitTakeProfit,
		PlannedEntryPrice: f(1.1000),
		StopLoss:          f(1.0950),
		TakeProfit:        f(1.1100),
		RiskPct:           f(1),
		Lots:              f(0.5),
		PipValue:          f(10),
		ActualEntryPrice:  f(1.1002),
		ExitPrice:         f(1.1100),
		EntryTimeUTC:      &entry,
		ExitTimeUTC:       &exit,
		PreTradeEmotion:   models.EmotionCalm,
		Notes:             "clean breakout",
		PlannedRR:         f(2),
		ActualRR:          f(1.96),
		NetPL:             f(49),
		HoldingHours:      f(2),
	}
}

func TestTradeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleTrade("T-000001")
	if err := s.SaveTrade(ctx, want); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := s.GetTrade(ctx, "T-000001")
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}

	if got.TradeID != want.TradeID || got.AccountID != want.AccountID ||
		got.State != want.State || got.Status != want.Status ||
		got.Instrument != want.Instrument || got.Direction != want.Direction ||
		got.Session != want.Session || got.PreTradeEmotion != want.PreTradeEmotion ||
		got.Notes != want.Notes {
		t.Errorf("round-trip mismatch:\n got  %+v\n want %+v", got, want)
	}
	if got.StopLoss == nil || *got.StopLoss != *want.StopLoss {
		t.Errorf("StopLoss = %v, want %v", got.StopLoss, *want.StopLoss)
	}
	if got.NetPL == nil || *got.NetPL != *want.NetPL {
		t.Errorf("NetPL = %v, want %v", got.NetPL, *want.NetPL)
	}
	if got.EntryTimeUTC == nil || !got.EntryTimeUTC.Equal(*want.EntryTimeUTC) {
		t.Errorf("EntryTimeUTC = %v, want %v", got.EntryTimeUTC, want.EntryTimeUTC)
	}
}

func TestTradeNilFieldsSurviveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sparse := &models.Trade{
		TradeID:    "T-000001",
		AccountID:  "A-1",
		State:      models.StateDraft,
		Status:     models.StatusPending,
		MarketType: models.MarketForex,
		Instrument: "EURUSD",
		Direction:  models.Long,
	}
	if err := s.SaveTrade(ctx, sparse); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := s.GetTrade(ctx, "T-000001")
	if err != nil {
		t.Fatalf("GetTrade: %v", err)
	}
	if got.PlannedEntryPrice != nil || got.StopLoss != nil || got.NetPL != nil {
		t.Errorf("nil numeric fields came back non-nil: %+v", got)
	}
	if got.EntryTimeUTC != nil || got.ExitTimeUTC != nil || got.EntryDate != nil {
		t.Errorf("nil time fields came back non-nil: %+v", got)
	}
	if got.SetupID != "" || got.Notes != "" {
		t.Errorf("empty strings came back populated: %q %q", got.SetupID, got.Notes)
	}
}

func TestGetTradeNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTrade(context.Background(), "T-999999")
	if err != apperrors.ErrTradeNotFound {
		t.Errorf("err = %v, want ErrTradeNotFound", err)
	}
}

func TestSaveTradeIsUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tr := sampleTrade("T-000001")
	if err := s.SaveTrade(ctx, tr); err != nil {
		t.Fatal(err)
	}
	tr.Notes = "revised"
	if err := s.SaveTrade(ctx, tr); err != nil {
		t.Fatal(err)
	}

	trades, err := s.GetTrades(ctx, TradeFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 1 {
		t.Fatalf("trade count = %d, want 1", len(trades))
	}
	if trades[0].Notes != "revised" {
		t.Errorf("Notes = %q, want the updated value", trades[0].Notes)
	}
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleTrade("T-000001")
	b := sampleTrade("T-000002")
	b.AccountID = "A-2"
	b.State = models.StateOpen
	b.Instrument = "GBPUSD"
	for _, tr := range []*models.Trade{a, b} {
		if err := s.SaveTrade(ctx, tr); err != nil {
			t.Fatal(err)
		}
	}

	byAccount, err := s.GetTrades(ctx, TradeFilter{AccountID: "A-2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byAccount) != 1 || byAccount[0].TradeID != "T-000002" {
		t.Errorf("account filter returned %v", byAccount)
	}

	byState, err := s.GetTrades(ctx, TradeFilter{State: models.StateClosed})
	if err != nil {
		t.Fatal(err)
	}
	if len(byState) != 1 || byState[0].TradeID != "T-000001" {
		t.Errorf("state filter returned %v", byState)
	}

	limited, err := s.GetTrades(ctx, TradeFilter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d trades", len(limited))
	}
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveTrade(ctx, sampleTrade("T-000001")); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTrade(ctx, "T-000001"); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if err := s.DeleteTrade(ctx, "T-000001"); err != apperrors.ErrTradeNotFound {
		t.Errorf("second delete err = %v, want ErrTradeNotFound", err)
	}
}

func TestAccountRuleSetupRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	account := &models.Account{
		AccountID: "A-1", Name: "Main", Currency: "USD",
		InitialBalance: 10000, CurrentBalance: 10500,
		Limits: models.AccountLimits{DailyLossPct: 3, MaxDrawdownPct: 10},
	}
	if err := s.SaveAccount(ctx, account); err != nil {
		t.Fatal(err)
	}

	rule := &models.Rule{
		RuleID: "R-1", AccountID: "A-1",
		MaxRiskPerTradePct: 2, MinimumRR: 1.5,
		EnforcementLevel: models.EnforceWarning,
	}
	if err := s.SaveRule(ctx, rule); err != nil {
		t.Fatal(err)
	}

	setup := &models.Setup{SetupID: "S-1", Name: "Breakout", Status: models.SetupActive}
	if err := s.SaveSetup(ctx, setup); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Accounts) != 1 || snap.Accounts[0].Limits.DailyLossPct != 3 {
		t.Errorf("accounts = %+v", snap.Accounts)
	}
	if len(snap.Rules) != 1 || snap.Rules[0].EnforcementLevel != models.EnforceWarning {
		t.Errorf("rules = %+v", snap.Rules)
	}
	if len(snap.Setups) != 1 || snap.Setups[0].Status != models.SetupActive {
		t.Errorf("setups = %+v", snap.Setups)
	}
	if got := snap.Account("A-1"); got == nil || got.CurrentBalance != 10500 {
		t.Errorf("snapshot Account lookup = %+v", got)
	}
	if got := snap.Account("A-404"); got != nil {
		t.Errorf("missing account lookup = %+v, want nil", got)
	}
}
