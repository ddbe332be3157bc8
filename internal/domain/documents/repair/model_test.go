package repair

import (
	"context"
	"testing"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

func TestRepair_ApplyPartCosts(t *testing.T) {
	r := NewRepair(id.New(), "screen replacement", types.MustMoney("120.00"))
	r.AddPart(id.New(), 1)
	r.AddPart(id.New(), 2)

	r.ApplyPartCosts([]types.Money{types.MustMoney("45.00"), types.MustMoney("5.50")})

	// 1*45.00 + 2*5.50 = 56.00
	if !r.PartsCost.Equal(types.MustMoney("56.00")) {
		t.Errorf("expected parts cost 56.00, got %s", r.PartsCost)
	}
	if !r.LaborCost.Equal(types.MustMoney("64.00")) {
		t.Errorf("expected labor cost 64.00, got %s", r.LaborCost)
	}
}

// Billing below the parts cost is recorded, not rejected.
func TestRepair_NegativeLaborCostPreserved(t *testing.T) {
	r := NewRepair(id.New(), "battery swap, goodwill price", types.MustMoney("10.00"))
	r.AddPart(id.New(), 1)

	r.ApplyPartCosts([]types.Money{types.MustMoney("18.00")})

	if !r.LaborCost.Equal(types.MustMoney("-8.00")) {
		t.Errorf("expected labor cost -8.00, got %s", r.LaborCost)
	}
}

func TestRepair_Validate(t *testing.T) {
	ctx := context.Background()

	r := NewRepair(id.Nil(), "fix", types.MustMoney("10.00"))
	r.AddPart(id.New(), 1)
	if err := r.Validate(ctx); err == nil {
		t.Error("expected error for missing customer")
	}

	r = NewRepair(id.New(), "", types.MustMoney("10.00"))
	r.AddPart(id.New(), 1)
	if err := r.Validate(ctx); err == nil {
		t.Error("expected error for empty description")
	}

	r = NewRepair(id.New(), "fix", types.Zero())
	r.AddPart(id.New(), 1)
	if err := r.Validate(ctx); err == nil {
		t.Error("expected error for zero total cost")
	}

	r = NewRepair(id.New(), "screen swap", types.MustMoney("200.00"))
	if err := r.Validate(ctx); err == nil {
		t.Error("expected error for empty used parts")
	}

	r = NewRepair(id.New(), "fix", types.MustMoney("10.00"))
	r.AddPart(id.New(), -1)
	if err := r.Validate(ctx); err == nil {
		t.Error("expected error for negative part quantity")
	}

	r = NewRepair(id.New(), "fix", types.MustMoney("10.00"))
	r.AddPart(id.New(), 1)
	if err := r.Validate(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
