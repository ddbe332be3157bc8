package product

import (
	"context"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain"
)

// Repository defines the interface for Product persistence.
//
// Update writes catalog attributes only; Quantity and AverageCost are
// excluded from its column set. UpdateStock is the single write path for
// stock state and must be called under a row lock taken via GetForUpdate.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetForUpdate retrieves a product with SELECT ... FOR UPDATE.
	// Requires an ambient transaction.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// UpdateStock sets quantity and average cost for a locked product row.
	UpdateStock(ctx context.Context, id id.ID, quantity int64, averageCost types.Money) error

	// CountByCategory returns the number of products referencing a category.
	CountByCategory(ctx context.Context, categoryID id.ID) (int64, error)

	// CountByUnit returns the number of products referencing a unit.
	CountByUnit(ctx context.Context, unitID id.ID) (int64, error)

	// FindLowStock retrieves products with quantity at or below threshold.
	FindLowStock(ctx context.Context, threshold int64, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
