package sale

import (
	"context"
	"testing"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

func TestSale_ApplySnapshotsAndTotals(t *testing.T) {
	s := NewSale(id.New())
	s.AddLine(id.New(), 2)
	s.AddLine(id.New(), 3)

	s.ApplySnapshots(
		[]types.Money{types.MustMoney("25.50"), types.MustMoney("10.00")},
		[]types.Money{types.MustMoney("10.00"), types.MustMoney("4.00")},
	)

	// 2*25.50 + 3*10.00 = 81.00
	if !s.TotalAmount.Equal(types.MustMoney("81.00")) {
		t.Errorf("expected total amount 81.00, got %s", s.TotalAmount)
	}
	// 2*10.00 + 3*4.00 = 32.00
	if !s.TotalCost.Equal(types.MustMoney("32.00")) {
		t.Errorf("expected total cost 32.00, got %s", s.TotalCost)
	}
	if !s.GrossProfit().Equal(types.MustMoney("49.00")) {
		t.Errorf("expected gross profit 49.00, got %s", s.GrossProfit())
	}

	if !s.Lines[0].Amount.Equal(types.MustMoney("51.00")) {
		t.Errorf("expected line amount 51.00, got %s", s.Lines[0].Amount)
	}
	if s.Lines[1].LineNo != 2 {
		t.Errorf("expected line no 2, got %d", s.Lines[1].LineNo)
	}
}

func TestSale_GrossProfitCanBeNegative(t *testing.T) {
	s := NewSale(id.New())
	s.AddLine(id.New(), 1)

	// Sold below cost.
	s.ApplySnapshots(
		[]types.Money{types.MustMoney("5.00")},
		[]types.Money{types.MustMoney("8.00")},
	)

	if !s.GrossProfit().Equal(types.MustMoney("-3.00")) {
		t.Errorf("expected gross profit -3.00, got %s", s.GrossProfit())
	}
}

func TestSale_Validate(t *testing.T) {
	ctx := context.Background()

	s := NewSale(id.Nil())
	s.AddLine(id.New(), 1)
	if err := s.Validate(ctx); err == nil {
		t.Error("expected error for missing customer")
	}

	s = NewSale(id.New())
	if err := s.Validate(ctx); err == nil {
		t.Error("expected error for empty lines")
	}

	s = NewSale(id.New())
	s.AddLine(id.New(), 0)
	if err := s.Validate(ctx); err == nil {
		t.Error("expected error for zero quantity")
	}

	s = NewSale(id.New())
	s.AddLine(id.New(), 2)
	if err := s.Validate(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
