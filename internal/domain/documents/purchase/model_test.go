package purchase

import (
	"context"
	"testing"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

func TestPurchase_TotalAmount(t *testing.T) {
	p := NewPurchase(id.New(), 6, types.MustMoney("12.35"))

	if !p.TotalAmount.Equal(types.MustMoney("74.10")) {
		t.Errorf("expected total amount 74.10, got %s", p.TotalAmount)
	}

	// Zero cost batches (promo stock) are valid and total to zero.
	p = NewPurchase(id.New(), 10, types.Zero())
	if !p.TotalAmount.Equal(types.Zero()) {
		t.Errorf("expected total amount 0, got %s", p.TotalAmount)
	}
}

func TestPurchase_Validate(t *testing.T) {
	ctx := context.Background()

	p := NewPurchase(id.Nil(), 5, types.MustMoney("1.00"))
	if err := p.Validate(ctx); err == nil {
		t.Error("expected error for missing product")
	}

	p = NewPurchase(id.New(), 0, types.MustMoney("1.00"))
	if err := p.Validate(ctx); err == nil {
		t.Error("expected error for zero quantity")
	}

	p = NewPurchase(id.New(), -3, types.MustMoney("1.00"))
	if err := p.Validate(ctx); err == nil {
		t.Error("expected error for negative quantity")
	}

	p = NewPurchase(id.New(), 5, types.MustMoney("-0.01"))
	if err := p.Validate(ctx); err == nil {
		t.Error("expected error for negative cost")
	}

	p = NewPurchase(id.New(), 5, types.MustMoney("2.50"))
	if err := p.Validate(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
