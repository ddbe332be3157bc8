package product

import (
	"context"
	"fmt"
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/tx"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain"
	"repairdesk/pkg/numerator"
)

// ReferenceChecker reports whether any movement records (purchases, sale
// items, repair parts) reference a product.
type ReferenceChecker func(ctx context.Context, productID id.ID) (int64, error)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator *numerator.Service

	categories interface {
		Exists(ctx context.Context, id id.ID) (bool, error)
	}
	units interface {
		Exists(ctx context.Context, id id.ID) (bool, error)
	}
}

// Deps are the catalog lookups product creation validates against.
type Deps struct {
	Categories interface {
		Exists(ctx context.Context, id id.ID) (bool, error)
	}
	Units interface {
		Exists(ctx context.Context, id id.ID) (bool, error)
	}
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
	deps Deps,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
		categories:     deps.Categories,
		units:          deps.Units,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// GuardReferences registers a before-delete hook that blocks deletion while
// any movement record references the product.
func (s *Service) GuardReferences(count ReferenceChecker) {
	s.Hooks().OnBeforeDelete(func(ctx context.Context, p *Product) error {
		n, err := count(ctx, p.ID)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("entity", "product")
		}
		if n > 0 {
			return apperror.NewPreconditionFailed("product", p.ID.String(),
				"product is still referenced by purchases, sales or repairs").
				WithDetail("referencing_records", n)
		}
		return nil
	})
}

// prepareForCreate generates a code, verifies the category and unit exist,
// and forces empty stock: a new catalog entry always starts at quantity=0,
// averageCost=0 regardless of what the caller sent.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PRD"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}

	if err := s.checkReferences(ctx, p); err != nil {
		return err
	}

	p.Quantity = 0
	p.AverageCost = types.Zero()

	return nil
}

// prepareForUpdate verifies references. Stock fields are not guarded here:
// the repository's Update excludes them from its column set, so a catalog
// update can never touch quantity or average cost.
func (s *Service) prepareForUpdate(ctx context.Context, p *Product) error {
	return s.checkReferences(ctx, p)
}

func (s *Service) checkReferences(ctx context.Context, p *Product) error {
	categoryID, err := id.Parse(p.CategoryID)
	if err != nil {
		return apperror.NewValidation("invalid category id").WithDetail("field", "categoryId")
	}
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if !exists {
		return apperror.NewNotFound("category", p.CategoryID)
	}

	unitID, err := id.Parse(p.UnitID)
	if err != nil {
		return apperror.NewValidation("invalid unit id").WithDetail("field", "unitId")
	}
	exists, err = s.units.Exists(ctx, unitID)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if !exists {
		return apperror.NewNotFound("unit", p.UnitID)
	}

	return nil
}

// FindLowStock retrieves products with quantity at or below threshold.
func (s *Service) FindLowStock(ctx context.Context, threshold int64, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindLowStock(ctx, threshold, filter)
}
