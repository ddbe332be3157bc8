package category

import (
	"context"
	"fmt"
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/tx"
	"repairdesk/internal/domain"
	"repairdesk/pkg/numerator"
)

// ReferenceCounter reports how many products reference a category.
// Implemented by the product repository; wired in at router setup to avoid a
// package cycle between catalogs.
type ReferenceCounter func(ctx context.Context, categoryID id.ID) (int64, error)

// Service provides business logic for the Category catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Category]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Category service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// GuardReferences registers a before-delete hook that blocks deletion while
// products still reference the category (PRECONDITION_FAILED).
func (s *Service) GuardReferences(count ReferenceCounter) {
	s.Hooks().OnBeforeDelete(func(ctx context.Context, c *Category) error {
		n, err := count(ctx, c.ID)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("entity", "category")
		}
		if n > 0 {
			return apperror.NewPreconditionFailed("category", c.ID.String(),
				"category is still referenced by products").
				WithDetail("referencing_products", n)
		}
		return nil
	})
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, c *Category) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CAT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}

	return s.checkNameUnique(ctx, c)
}

// prepareForUpdate handles uniqueness checks.
func (s *Service) prepareForUpdate(ctx context.Context, c *Category) error {
	return s.checkNameUnique(ctx, c)
}

func (s *Service) checkNameUnique(ctx context.Context, c *Category) error {
	existing, err := s.repo.FindByName(ctx, c.Name)
	if err != nil {
		return nil // not found or lookup failure: let the insert decide
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("category", "name", c.Name)
	}
	return nil
}
