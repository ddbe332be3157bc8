// Package purchase provides the Purchase document: an immutable receipt of
// stock intake. One purchase covers one product batch at one cost.
package purchase

import (
	"context"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/entity"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

// Purchase represents a stock intake record.
// Created exactly once per purchase transaction; never mutated or deleted
// (audit trail).
type Purchase struct {
	entity.Document

	// ProductID is the received product
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the received count (positive integer)
	Quantity int64 `db:"quantity" json:"quantity"`

	// CostPerUnit is the price paid for this batch
	CostPerUnit types.Money `db:"cost_per_unit" json:"costPerUnit"`

	// TotalAmount is quantity x costPerUnit
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
}

// NewPurchase creates a new purchase document.
func NewPurchase(productID id.ID, quantity int64, costPerUnit types.Money) *Purchase {
	p := &Purchase{
		Document:    entity.NewDocument(),
		ProductID:   productID,
		Quantity:    quantity,
		CostPerUnit: costPerUnit,
	}
	p.TotalAmount = costPerUnit.Mul(types.MoneyFromInt(quantity))
	return p
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}

	if p.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	if p.CostPerUnit.IsNegative() {
		return apperror.NewValidation("cost per unit cannot be negative").
			WithDetail("field", "costPerUnit")
	}

	return nil
}
