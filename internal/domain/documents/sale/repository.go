package sale

import (
	"context"
	"time"

	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
)

// Repository defines operations for sale documents. Write-once.
type Repository interface {
	Create(ctx context.Context, doc *Sale) error
	GetByID(ctx context.Context, docID id.ID) (*Sale, error)
	GetByNumber(ctx context.Context, number string) (*Sale, error)

	GetLines(ctx context.Context, docID id.ID) ([]SaleLine, error)
	SaveLines(ctx context.Context, docID id.ID, lines []SaleLine) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error)
}

// ListFilter for filtering sales.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	ProductID  *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
