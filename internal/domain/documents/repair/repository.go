package repair

import (
	"context"
	"time"

	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
)

// Repository defines operations for repair documents. Write-once.
type Repository interface {
	Create(ctx context.Context, doc *Repair) error
	GetByID(ctx context.Context, docID id.ID) (*Repair, error)
	GetByNumber(ctx context.Context, number string) (*Repair, error)

	GetParts(ctx context.Context, docID id.ID) ([]UsedPart, error)
	SaveParts(ctx context.Context, docID id.ID, parts []UsedPart) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Repair], error)
}

// ListFilter for filtering repairs.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	ProductID  *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
