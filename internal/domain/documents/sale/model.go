// Package sale provides the Sale document: a multi-line sale of products to
// a customer, with price and cost captured per line at the moment of sale.
package sale

import (
	"context"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/entity"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

// Sale represents a sale transaction. Write-once.
//
// TotalAmount and TotalCost are denormalized from the lines at creation so
// that reports never have to rejoin product state. Profit is derived, not
// stored: see GrossProfit.
type Sale struct {
	entity.Document

	// CustomerID is the buyer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// TotalAmount is the sum of line amounts (revenue)
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// TotalCost is the sum of line costs at sale time
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	// Lines is the table part (not a DB column)
	Lines []SaleLine `db:"-" json:"lines"`
}

// SaleLine is one sold product position.
//
// PriceAtTime and CostAtTime are immutable snapshots of the product's sale
// price and weighted-average cost captured under the row lock when the sale
// committed. Later price or cost changes never touch them.
type SaleLine struct {
	ID     id.ID `db:"id" json:"id"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID   id.ID       `db:"product_id" json:"productId"`
	Quantity    int64       `db:"quantity" json:"quantity"`
	PriceAtTime types.Money `db:"price_at_time" json:"priceAtTime"`
	CostAtTime  types.Money `db:"cost_at_time" json:"costAtTime"`

	// Amount is quantity x priceAtTime
	Amount types.Money `db:"amount" json:"amount"`
}

// NewSale creates a new sale document.
func NewSale(customerID id.ID) *Sale {
	return &Sale{
		Document:    entity.NewDocument(),
		CustomerID:  customerID,
		TotalAmount: types.Zero(),
		TotalCost:   types.Zero(),
	}
}

// AddLine appends a line. Snapshots and totals are filled by the service at
// creation time; until then the line carries only the request.
func (s *Sale) AddLine(productID id.ID, quantity int64) {
	s.Lines = append(s.Lines, SaleLine{
		ID:        id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// ApplySnapshots fills per-line price/cost snapshots from issue results and
// recalculates totals. Results are positional: one per line, in line order.
func (s *Sale) ApplySnapshots(prices, costs []types.Money) {
	for i := range s.Lines {
		line := &s.Lines[i]
		line.PriceAtTime = prices[i]
		line.CostAtTime = costs[i]
		line.Amount = line.PriceAtTime.Mul(types.MoneyFromInt(line.Quantity))
	}
	s.recalculateTotals()
}

func (s *Sale) recalculateTotals() {
	total := types.Zero()
	cost := types.Zero()
	for _, line := range s.Lines {
		total = total.Add(line.Amount)
		cost = cost.Add(line.CostAtTime.Mul(types.MoneyFromInt(line.Quantity)))
	}
	s.TotalAmount = total
	s.TotalCost = cost
}

// GrossProfit returns revenue minus cost of goods sold. Always computed from
// the stored totals, never persisted.
func (s *Sale) GrossProfit() types.Money {
	return s.TotalAmount.Sub(s.TotalCost)
}

// Validate implements entity.Validatable.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidation("sale must have at least one line").
			WithDetail("field", "lines")
	}

	for i, line := range s.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("lineNo", i+1).
				WithDetail("field", "productId")
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("lineNo", i+1).
				WithDetail("field", "quantity")
		}
	}

	return nil
}
