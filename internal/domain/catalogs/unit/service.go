package unit

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

// ReferenceCounter reports how many products reference a unit.
type ReferenceCounter func(ctx context.Context, unitID id.ID) (int64, error)

// Service provides business logic for the Unit catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Unit]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Unit service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "unit",
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
// products still reference the unit (PRECONDITION_FAILED).
func (s *Service) GuardReferences(count ReferenceCounter) {
	s.Hooks().OnBeforeDelete(func(ctx context.Context, u *Unit) error {
		n, err := count(ctx, u.ID)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("entity", "unit")
		}
		if n > 0 {
			return apperror.NewPreconditionFailed("unit", u.ID.String(),
				"unit is still referenced by products").
				WithDetail("referencing_products", n)
		}
		return nil
	})
}

// prepareForCreate handles code generation and uniqueness checks.
func (s *Service) prepareForCreate(ctx context.Context, unit *Unit) error {
	if unit.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("UN"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		unit.Code = code
	}

	return s.checkSymbolUnique(ctx, unit)
}

// prepareForUpdate handles uniqueness checks.
func (s *Service) prepareForUpdate(ctx context.Context, unit *Unit) error {
	return s.checkSymbolUnique(ctx, unit)
}

// FindBySymbol retrieves unit by symbol.
func (s *Service) FindBySymbol(ctx context.Context, symbol string) (*Unit, error) {
	return s.repo.FindBySymbol(ctx, symbol)
}

func (s *Service) checkSymbolUnique(ctx context.Context, unit *Unit) error {
	if unit.Symbol == "" {
		return nil
	}
	existing, err := s.repo.FindBySymbol(ctx, unit.Symbol)
	if err != nil {
		return nil
	}
	if existing.ID != unit.ID {
		return apperror.NewDuplicate("unit", "symbol", unit.Symbol)
	}
	return nil
}
