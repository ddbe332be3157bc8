package inventory

import (
	"context"
	"sort"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/catalogs/product"
	"repairdesk/pkg/logger"
)

// ProductStore is the slice of the product repository the engine needs:
// locked reads and the stock-only write path.
type ProductStore interface {
	GetForUpdate(ctx context.Context, id id.ID) (*product.Product, error)
	UpdateStock(ctx context.Context, id id.ID, quantity int64, averageCost types.Money) error
}

// ReceiveResult describes the stock state after a purchase was applied.
type ReceiveResult struct {
	ProductID   id.ID
	Quantity    int64       // new on-hand quantity
	AverageCost types.Money // new weighted-average cost
}

// IssueLine is one requested stock deduction.
type IssueLine struct {
	ProductID id.ID
	Quantity  int64
}

// IssueResult is the per-line snapshot taken at issue time. SalePrice and
// AverageCost are the values read under the row lock, so they are exactly the
// values the caller must persist as priceAtTime/costAtTime.
type IssueResult struct {
	ProductID   id.ID
	Quantity    int64
	SalePrice   types.Money
	AverageCost types.Money
}

// Engine applies stock movements to products.
//
// Both methods require an ambient transaction (they lock rows with
// SELECT ... FOR UPDATE); callers wrap them in tx.Manager.RunInTransaction
// together with the movement-record insert, so product state and the audit
// trail commit or roll back as one.
type Engine struct {
	products ProductStore
}

// NewEngine creates a new inventory engine.
func NewEngine(products ProductStore) *Engine {
	return &Engine{products: products}
}

// Receive applies a purchase: locks the product row, recomputes the weighted
// average via NextAverageCost and increments the on-hand quantity.
func (e *Engine) Receive(ctx context.Context, productID id.ID, quantity int64, costPerUnit types.Money) (*ReceiveResult, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if costPerUnit.IsNegative() {
		return nil, apperror.NewValidation("cost per unit cannot be negative").
			WithDetail("field", "costPerUnit")
	}

	p, err := e.products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	newAverageCost, err := NextAverageCost(p.Quantity, p.AverageCost, quantity, costPerUnit)
	if err != nil {
		return nil, err
	}
	newQuantity := p.Quantity + quantity

	if err := e.products.UpdateStock(ctx, productID, newQuantity, newAverageCost); err != nil {
		return nil, err
	}

	logger.Debug(ctx, "stock received",
		"product_id", productID.String(),
		"quantity", quantity,
		"new_quantity", newQuantity,
		"new_average_cost", newAverageCost.String(),
	)

	return &ReceiveResult{
		ProductID:   productID,
		Quantity:    newQuantity,
		AverageCost: newAverageCost,
	}, nil
}

// Issue applies a sale or repair consumption: locks every referenced product,
// verifies stock, decrements quantities and returns per-line price/cost
// snapshots. Average cost is left unchanged by issues.
//
// The whole batch is checked before anything is written: any shortfall fails
// with INSUFFICIENT_STOCK and, because the caller's transaction rolls back,
// no line of the request takes effect. Rows are locked in ascending product
// ID order so two overlapping issues cannot deadlock.
func (e *Engine) Issue(ctx context.Context, lines []IssueLine) ([]IssueResult, error) {
	if len(lines) == 0 {
		return nil, apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	// Total requested per product: the same product may appear on several
	// lines and must be checked against its combined demand.
	requested := make(map[id.ID]int64, len(lines))
	order := make([]id.ID, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidation("quantity must be positive").
				WithDetail("lineNo", i+1).
				WithDetail("field", "quantity")
		}
		if _, seen := requested[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		requested[line.ProductID] += line.Quantity
	}

	sort.Slice(order, func(i, j int) bool {
		return order[i].String() < order[j].String()
	})

	locked := make(map[id.ID]*product.Product, len(order))
	for _, productID := range order {
		p, err := e.products.GetForUpdate(ctx, productID)
		if err != nil {
			return nil, err
		}

		if p.Quantity < requested[productID] {
			return nil, apperror.NewInsufficientStock(productID.String(), requested[productID], p.Quantity).
				WithDetail("product_name", p.Name)
		}
		locked[productID] = p
	}

	for _, productID := range order {
		p := locked[productID]
		newQuantity := p.Quantity - requested[productID]
		if err := e.products.UpdateStock(ctx, productID, newQuantity, p.AverageCost); err != nil {
			return nil, err
		}
	}

	results := make([]IssueResult, len(lines))
	for i, line := range lines {
		p := locked[line.ProductID]
		results[i] = IssueResult{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			SalePrice:   p.SalePrice,
			AverageCost: p.AverageCost,
		}
	}

	logger.Debug(ctx, "stock issued", "lines", len(lines), "products", len(order))

	return results, nil
}
