package customer

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

// ReferenceCounter reports how many documents reference a customer.
type ReferenceCounter func(ctx context.Context, customerID id.ID) (int64, error)

// Service provides business logic for the Customer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	numerator *numerator.Service,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  numerator,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// GuardReferences registers a before-delete hook that blocks deletion while
// sales or repairs still reference the customer (PRECONDITION_FAILED).
func (s *Service) GuardReferences(count ReferenceCounter) {
	s.Hooks().OnBeforeDelete(func(ctx context.Context, c *Customer) error {
		n, err := count(ctx, c.ID)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("entity", "customer")
		}
		if n > 0 {
			return apperror.NewPreconditionFailed("customer", c.ID.String(),
				"customer is still referenced by sales or repairs").
				WithDetail("referencing_documents", n)
		}
		return nil
	})
}

// prepareForCreate handles code generation.
func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CUS"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}
	return nil
}

// FindByPhone retrieves a customer by phone number.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.FindByPhone(ctx, phone)
}
