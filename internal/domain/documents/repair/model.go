// Package repair provides the Repair document: a completed repair job billed
// to a customer, consuming spare parts from stock.
package repair

import (
	"context"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/entity"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

// Repair represents a completed repair job. Write-once.
//
// TotalCost is the price charged to the customer. PartsCost is the
// weighted-average cost of consumed parts at completion time. LaborCost is
// always TotalCost minus PartsCost; it is negative when the job was billed
// below the parts cost, which is recorded as-is rather than rejected, since
// undercharging is a business fact, not an input error.
type Repair struct {
	entity.Document

	// CustomerID is the customer whose device was repaired
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// Description of the performed work
	Description string `db:"description" json:"description"`

	// TotalCost is the price charged for the whole job
	TotalCost types.Money `db:"total_cost" json:"totalCost"`

	// PartsCost is the sum of part costs at completion
	PartsCost types.Money `db:"parts_cost" json:"partsCost"`

	// LaborCost is TotalCost - PartsCost (may be negative)
	LaborCost types.Money `db:"labor_cost" json:"laborCost"`

	// UsedParts is the table part (not a DB column). At least one part is
	// required: a repair without consumed parts is not a stock movement.
	UsedParts []UsedPart `db:"-" json:"usedParts"`
}

// UsedPart is one spare part consumed by a repair.
//
// CostAtTime snapshots the part's weighted-average cost under the row lock
// at completion; later cost changes never touch it.
type UsedPart struct {
	ID     id.ID `db:"id" json:"id"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID  id.ID       `db:"product_id" json:"productId"`
	Quantity   int64       `db:"quantity" json:"quantity"`
	CostAtTime types.Money `db:"cost_at_time" json:"costAtTime"`

	// Amount is quantity x costAtTime
	Amount types.Money `db:"amount" json:"amount"`
}

// NewRepair creates a new repair document.
func NewRepair(customerID id.ID, description string, totalCost types.Money) *Repair {
	return &Repair{
		Document:    entity.NewDocument(),
		CustomerID:  customerID,
		Description: description,
		TotalCost:   totalCost,
		PartsCost:   types.Zero(),
		LaborCost:   totalCost,
	}
}

// AddPart appends a consumed part. Cost snapshots are filled by the service
// at creation time.
func (r *Repair) AddPart(productID id.ID, quantity int64) {
	r.UsedParts = append(r.UsedParts, UsedPart{
		ID:        id.New(),
		LineNo:    len(r.UsedParts) + 1,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// ApplyPartCosts fills per-part cost snapshots and recalculates PartsCost
// and LaborCost. Costs are positional: one per part, in part order.
func (r *Repair) ApplyPartCosts(costs []types.Money) {
	parts := types.Zero()
	for i := range r.UsedParts {
		part := &r.UsedParts[i]
		part.CostAtTime = costs[i]
		part.Amount = part.CostAtTime.Mul(types.MoneyFromInt(part.Quantity))
		parts = parts.Add(part.Amount)
	}
	r.PartsCost = parts
	r.LaborCost = r.TotalCost.Sub(parts)
}

// Validate implements entity.Validatable.
func (r *Repair) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(r.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if r.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}

	if !r.TotalCost.IsPositive() {
		return apperror.NewValidation("total cost must be positive").
			WithDetail("field", "totalCost")
	}

	if len(r.UsedParts) == 0 {
		return apperror.NewValidation("repair must have at least one used part").
			WithDetail("field", "usedParts")
	}

	for i, part := range r.UsedParts {
		if id.IsNil(part.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("lineNo", i+1).
				WithDetail("field", "productId")
		}
		if part.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("lineNo", i+1).
				WithDetail("field", "quantity")
		}
	}

	return nil
}
