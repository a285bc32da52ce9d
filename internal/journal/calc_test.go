package journal

import (
	"math"
	"testing"
	"time"

	"tradejournal/internal/models"
)

func f(v float64) *float64 { return &v }

func TestPlannedRR(t *testing.T) {
	// 10 risk, 30 reward.
	rr := PlannedRR(f(100), f(90), f(130))
	if rr == nil || *rr != 3 {
		t.Fatalf("PlannedRR(100, 90, 130) = %v, want 3", rr)
	}

	// Direction-agnostic: a short with the stop above works the same.
	rr = PlannedRR(f(100), f(110), f(70))
	if rr == nil || *rr != 3 {
		t.Fatalf("short PlannedRR = %v, want 3", rr)
	}
}

func TestPlannedRRNilCases(t *testing.T) {
	if rr := PlannedRR(nil, f(90), f(130)); rr != nil {
		t.Errorf("missing entry: got %v, want nil", *rr)
	}
	if rr := PlannedRR(f(100), f(100), f(130)); rr != nil {
		t.Errorf("zero risk distance: got %v, want nil", *rr)
	}
}

func TestActualRRSignedByDirection(t *testing.T) {
	// Long stopped below entry: exit 2R against.
	rr := ActualRR(f(100), f(90), f(80), models.Long)
	if rr == nil || *rr != -2 {
		t.Fatalf("long ActualRR = %v, want -2", rr)
	}

	// Same prices as a short is a 2R win.
	rr = ActualRR(f(100), f(90), f(80), models.Short)
	if rr == nil || *rr != 2 {
		t.Fatalf("short ActualRR = %v, want 2", rr)
	}
}

func TestStatusBand(t *testing.T) {
	cases := []struct {
		rr   *float64
		want models.TradeStatus
	}{
		{f(0.5), models.StatusWin},
		{f(0.11), models.StatusWin},
		{f(0.1), models.StatusBreakeven},
		{f(0), models.StatusBreakeven},
		{f(-0.1), models.StatusBreakeven},
		{f(-0.11), models.StatusLoss},
		{f(-3), models.StatusLoss},
		{nil, models.StatusPending},
	}
	for _, c := range cases {
		if got := Status(c.rr); got != c.want {
			t.Errorf("Status(%v) = %s, want %s", c.rr, got, c.want)
		}
	}
}

func TestPnLForexUsesPipValue(t *testing.T) {
	// The formula is price difference times size times pip value.
	pl := PnL(f(1.1000), f(1.1060), f(0.5), f(10), models.Long, models.MarketForex)
	if pl == nil {
		t.Fatal("PnL returned nil")
	}
	if *pl != 0.03 {
		t.Errorf("PnL = %v, want 0.03", *pl)
	}
}

func TestPnLStocksIgnoresPipValue(t *testing.T) {
	pl := PnL(f(100), f(110), f(50), nil, models.Long, models.MarketStocks)
	if pl == nil || *pl != 500 {
		t.Fatalf("stock PnL = %v, want 500", pl)
	}

	// Shorts flip the sign.
	pl = PnL(f(100), f(110), f(50), nil, models.Short, models.MarketStocks)
	if pl == nil || *pl != -500 {
		t.Fatalf("short stock PnL = %v, want -500", pl)
	}
}

func TestPnLNilWhenInputsMissing(t *testing.T) {
	if pl := PnL(f(100), nil, f(50), nil, models.Long, models.MarketStocks); pl != nil {
		t.Errorf("missing exit: got %v, want nil", *pl)
	}
	// Non-stock markets need the pip value.
	if pl := PnL(f(100), f(110), f(1), nil, models.Long, models.MarketForex); pl != nil {
		t.Errorf("missing pip value: got %v, want nil", *pl)
	}
}

func TestPositionSizeFromRisk(t *testing.T) {
	// $10k balance at 1% is $100 risk; 50 pips at $10/pip gives 0.2.
	size := PositionSizeFromRisk(f(10000), f(1), f(1.1000), f(1.0950), f(10), models.MarketForex)
	if size == nil {
		t.Fatal("size is nil")
	}
	if math.Abs(*size-round2(100/(0.0050*10))) > 1e-9 {
		t.Errorf("size = %v", *size)
	}

	// Crypto sizes by raw distance.
	size = PositionSizeFromRisk(f(10000), f(2), f(50000), f(49000), nil, models.MarketCrypto)
	if size == nil || *size != 0.2 {
		t.Fatalf("crypto size = %v, want 0.2", size)
	}
}

func TestRecomputeDerivesEverything(t *testing.T) {
	entry := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)
	trade := models.Trade{
		MarketType:       models.MarketStocks,
		Direction:        models.Long,
		ActualEntryPrice: f(100),
		StopLoss:         f(95),
		TakeProfit:       f(115),
		ExitPrice:        f(110),
		Shares:           f(10),
		EntryTimeUTC:     &entry,
		ExitTimeUTC:      &exit,
	}

	Recompute(&trade)

	if trade.PlannedRR == nil || *trade.PlannedRR != 3 {
		t.Errorf("PlannedRR = %v, want 3", trade.PlannedRR)
	}
	if trade.ActualRR == nil || *trade.ActualRR != 2 {
		t.Errorf("ActualRR = %v, want 2", trade.ActualRR)
	}
	if trade.Status != models.StatusWin {
		t.Errorf("Status = %s, want WIN", trade.Status)
	}
	if trade.NetPL == nil || *trade.NetPL != 100 {
		t.Errorf("NetPL = %v, want 100", trade.NetPL)
	}
	if trade.HoldingHours == nil || *trade.HoldingHours != 1.5 {
		t.Errorf("HoldingHours = %v, want 1.5", trade.HoldingHours)
	}
}

func TestRecomputePrefersActualEntryForPlannedRR(t *testing.T) {
	trade := models.Trade{
		Direction:         models.Long,
		PlannedEntryPrice: f(100),
		ActualEntryPrice:  f(102),
		StopLoss:          f(92),
		TakeProfit:        f(122),
	}
	Recompute(&trade)
	if trade.PlannedRR == nil || *trade.PlannedRR != 2 {
		t.Errorf("PlannedRR = %v, want 2 (from actual entry)", trade.PlannedRR)
	}
}
