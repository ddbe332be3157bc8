package inventory

import (
	"testing"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/types"
)

func TestNextAverageCost_ZeroQuantityResetsToIncomingCost(t *testing.T) {
	got, err := NextAverageCost(0, types.Zero(), 10, types.MustMoney("5.99"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(types.MustMoney("5.99")) {
		t.Errorf("expected 5.99, got %s", got)
	}

	// Depleted stock with stale average: basis resets to incoming cost.
	got, err = NextAverageCost(0, types.MustMoney("12.50"), 3, types.MustMoney("7.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(types.MustMoney("7.00")) {
		t.Errorf("expected 7.00, got %s", got)
	}
}

func TestNextAverageCost_WeightedBlend(t *testing.T) {
	// ((5*4.50)+(10*5.99))/15 = 82.4/15 = 5.4933...
	got, err := NextAverageCost(5, types.MustMoney("4.50"), 10, types.MustMoney("5.99"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := types.MustMoney("5.4933")
	if got.Sub(want).Abs().GreaterThan(types.MustMoney("0.01")) {
		t.Errorf("expected ~5.4933, got %s", got)
	}
}

func TestNextAverageCost_EqualCostsStayPut(t *testing.T) {
	got, err := NextAverageCost(7, types.MustMoney("3.25"), 13, types.MustMoney("3.25"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(types.MustMoney("3.25")) {
		t.Errorf("expected 3.25, got %s", got)
	}
}

func TestNextAverageCost_Bounding(t *testing.T) {
	tests := []struct {
		name       string
		curQty     int64
		curAvg     string
		inQty      int64
		inCost     string
	}{
		{"cheap refill", 100, "9.99", 1, "0.01"},
		{"expensive refill", 1, "0.50", 200, "49.99"},
		{"large batch", 3, "1.33", 100000, "2.66"},
		{"free incoming", 10, "5.00", 5, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curAvg := types.MustMoney(tt.curAvg)
			inCost := types.MustMoney(tt.inCost)

			got, err := NextAverageCost(tt.curQty, curAvg, tt.inQty, inCost)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			lo, hi := curAvg, inCost
			if lo.GreaterThan(hi) {
				lo, hi = hi, lo
			}
			if got.LessThan(lo) || got.GreaterThan(hi) {
				t.Errorf("result %s outside [%s, %s]", got, lo, hi)
			}
		})
	}
}

func TestNextAverageCost_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		curQty int64
		curAvg string
		inQty  int64
		inCost string
	}{
		{"negative current quantity", -1, "1.00", 5, "1.00"},
		{"negative current average", 5, "-1.00", 5, "1.00"},
		{"zero incoming quantity", 5, "1.00", 0, "1.00"},
		{"negative incoming quantity", 5, "1.00", -5, "1.00"},
		{"negative incoming cost", 5, "1.00", 5, "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextAverageCost(tt.curQty, types.MustMoney(tt.curAvg), tt.inQty, types.MustMoney(tt.inCost))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr, ok := apperror.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperror.CodeValidation {
				t.Errorf("expected %s, got %s", apperror.CodeValidation, appErr.Code)
			}
		})
	}
}

// Recomputing the average from the full purchase history must match the
// chained recurrence within rounding tolerance.
func TestNextAverageCost_RoundTrip(t *testing.T) {
	purchases := []struct {
		qty  int64
		cost string
	}{
		{10, "5.99"}, {3, "6.49"}, {25, "5.10"}, {7, "8.00"}, {1, "12.75"},
		{50, "4.99"}, {2, "5.00"}, {18, "6.66"},
	}

	var qty int64
	avg := types.Zero()
	for _, p := range purchases {
		var err error
		avg, err = NextAverageCost(qty, avg, p.qty, types.MustMoney(p.cost))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		qty += p.qty
	}

	// Out-of-band recomputation: total value / total quantity.
	totalValue := types.Zero()
	var totalQty int64
	for _, p := range purchases {
		totalValue = totalValue.Add(types.MustMoney(p.cost).Mul(types.MoneyFromInt(p.qty)))
		totalQty += p.qty
	}
	want := totalValue.Div(types.MoneyFromInt(totalQty))

	if avg.Sub(want).Abs().GreaterThan(types.MustMoney("0.0001")) {
		t.Errorf("chained average %s diverged from recomputed %s", avg, want)
	}
}
