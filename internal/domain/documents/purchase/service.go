package purchase

import (
	"context"
	"fmt"
	"time"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/tx"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/inventory"
	"repairdesk/pkg/logger"
	"repairdesk/pkg/numerator"
)

// Service provides business operations for purchase documents.
//
// Create is the purchase transaction: the stock update and the document
// insert commit atomically or not at all.
type Service struct {
	repo      Repository
	engine    *inventory.Engine
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Purchase]
}

// NewService creates a new purchase service.
func NewService(
	repo Repository,
	engine *inventory.Engine,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Purchase](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Purchase] {
	return s.hooks
}

// Create records a purchase: increments the product's stock, recomputes its
// weighted-average cost and persists the document, all in one transaction.
func (s *Service) Create(ctx context.Context, doc *Purchase) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.engine.Receive(ctx, doc.ProductID, doc.Quantity, doc.CostPerUnit); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "purchase created",
		"id", doc.ID,
		"number", doc.Number,
		"product_id", doc.ProductID,
		"quantity", doc.Quantity)

	return nil
}

// GetByID retrieves a purchase document.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, docID)
}

// GetByNumber retrieves a purchase by its document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Purchase, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List retrieves purchases with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Purchase], error) {
	return s.repo.List(ctx, filter)
}
