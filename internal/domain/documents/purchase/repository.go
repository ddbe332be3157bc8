package purchase

import (
	"context"
	"time"

	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
)

// Repository defines operations for purchase documents.
// Purchases are write-once: there are no Update or Delete operations.
type Repository interface {
	Create(ctx context.Context, doc *Purchase) error
	GetByID(ctx context.Context, docID id.ID) (*Purchase, error)
	GetByNumber(ctx context.Context, number string) (*Purchase, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error)
}

// ListFilter for filtering purchases.
type ListFilter struct {
	domain.ListFilter

	ProductID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
