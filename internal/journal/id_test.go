package journal

import "testing"

func TestNextTradeID(t *testing.T) {
	if got := NextTradeID(nil); got != "T-000001" {
		t.Errorf("first ID = %q, want T-000001", got)
	}
	got := NextTradeID([]string{"T-000001", "T-000007", "T-000003"})
	if got != "T-000008" {
		t.Errorf("next ID = %q, want T-000008", got)
	}
}

func TestNextTradeIDIgnoresMalformed(t *testing.T) {
	got := NextTradeID([]string{"garbage", "T-000002", "T-x"})
	if got != "T-000003" {
		t.Errorf("next ID = %q, want T-000003", got)
	}
}

func TestNextID(t *testing.T) {
	if got := NextID("S-", nil); got != "S-1" {
		t.Errorf("first setup ID = %q, want S-1", got)
	}
	if got := NextID("R-", []string{"R-2", "R-11"}); got != "R-12" {
		t.Errorf("next rule ID = %q, want R-12", got)
	}
}
