// Package inventory implements the stock valuation and movement engine.
//
// Products are valued with the weighted-average (moving average) costing
// method. The engine is the single write path for product stock state:
// purchases go through Receive, sales and repair part consumption go through
// Issue, and both run inside the caller's transaction with row locks held on
// every touched product.
package inventory

import (
	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/types"
)

// NextAverageCost computes the new weighted-average unit cost after receiving
// a batch of stock.
//
// When current quantity is zero there is no history to blend: the result is
// the incoming cost exactly. This also resets the cost basis after stock has
// been fully depleted and avoids the zero division. Otherwise the result is
// the quantity-weighted mean:
//
//	((currentQty * currentAvg) + (incomingQty * incomingCost)) / (currentQty + incomingQty)
//
// The result always lies between currentAverageCost and incomingCostPerUnit
// inclusive. Full decimal precision is kept for chained recomputation;
// rounding is a display concern.
func NextAverageCost(
	currentQuantity int64,
	currentAverageCost types.Money,
	incomingQuantity int64,
	incomingCostPerUnit types.Money,
) (types.Money, error) {
	if currentQuantity < 0 {
		return types.Zero(), apperror.NewValidation("current quantity cannot be negative").
			WithDetail("field", "currentQuantity")
	}
	if currentAverageCost.IsNegative() {
		return types.Zero(), apperror.NewValidation("current average cost cannot be negative").
			WithDetail("field", "currentAverageCost")
	}
	if incomingQuantity <= 0 {
		return types.Zero(), apperror.NewValidation("incoming quantity must be positive").
			WithDetail("field", "incomingQuantity")
	}
	if incomingCostPerUnit.IsNegative() {
		return types.Zero(), apperror.NewValidation("incoming cost cannot be negative").
			WithDetail("field", "incomingCostPerUnit")
	}

	if currentQuantity == 0 {
		return incomingCostPerUnit, nil
	}

	currentValue := currentAverageCost.Mul(types.MoneyFromInt(currentQuantity))
	incomingValue := incomingCostPerUnit.Mul(types.MoneyFromInt(incomingQuantity))
	totalQuantity := types.MoneyFromInt(currentQuantity + incomingQuantity)

	return currentValue.Add(incomingValue).Div(totalQuantity), nil
}
