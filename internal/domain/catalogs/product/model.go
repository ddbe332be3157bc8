// Package product provides the Product catalog.
//
// Product carries two kinds of state: catalog attributes (name, category,
// unit, sale price) editable through the usual CRUD path, and stock state
// (Quantity, AverageCost) that is derived bookkeeping. Stock state is owned
// by the inventory engine: every purchase, sale and repair goes through it,
// and no other code path may write those two columns.
package product

import (
	"context"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/entity"
	"repairdesk/internal/core/types"
)

// Product represents a stocked item.
type Product struct {
	entity.Catalog

	// CategoryID is the required category reference
	CategoryID string `db:"category_id" json:"categoryId"`

	// UnitID is the required unit-of-measure reference
	UnitID string `db:"unit_id" json:"unitId"`

	// SalePrice is the current listing price, set by the catalog
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// Quantity is the current on-hand count.
	// Maintained exclusively by the inventory engine.
	Quantity int64 `db:"quantity" json:"quantity"`

	// AverageCost is the current weighted-average unit cost.
	// Maintained exclusively by the inventory engine.
	AverageCost types.Money `db:"average_cost" json:"averageCost"`

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with empty stock (quantity=0, averageCost=0).
func NewProduct(code, name, categoryID, unitID string, salePrice types.Money) *Product {
	return &Product{
		Catalog:     entity.NewCatalog(code, name),
		CategoryID:  categoryID,
		UnitID:      unitID,
		SalePrice:   salePrice,
		Quantity:    0,
		AverageCost: types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.CategoryID == "" {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}

	if p.UnitID == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unitId")
	}

	if p.SalePrice.IsNegative() {
		return apperror.NewValidation("sale price cannot be negative").
			WithDetail("field", "salePrice")
	}

	if p.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}

	if p.AverageCost.IsNegative() {
		return apperror.NewValidation("average cost cannot be negative").
			WithDetail("field", "averageCost")
	}

	return nil
}

// StockValue returns quantity x averageCost for valuation reports.
func (p *Product) StockValue() types.Money {
	return p.AverageCost.Mul(types.MoneyFromInt(p.Quantity))
}

// IsLowStock reports whether on-hand quantity is at or below the threshold.
func (p *Product) IsLowStock(threshold int64) bool {
	return p.Quantity <= threshold
}
