package repair

import (
	"context"
	"fmt"
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/tx"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/inventory"
	"repairdesk/pkg/logger"
	"repairdesk/pkg/numerator"
)

// CustomerChecker verifies customer existence without importing the
// customer package.
type CustomerChecker interface {
	Exists(ctx context.Context, customerID id.ID) (bool, error)
}

// Service provides business operations for repair documents.
//
// Create is the repair transaction: part consumption, cost snapshots and the
// document insert commit atomically.
type Service struct {
	repo      Repository
	engine    *inventory.Engine
	customers CustomerChecker
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Repair]
}

// NewService creates a new repair service.
func NewService(
	repo Repository,
	engine *inventory.Engine,
	customers CustomerChecker,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		customers: customers,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Repair](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Repair] {
	return s.hooks
}

// Create records a completed repair: deducts used parts from stock under row
// locks, snapshots their costs, derives labor cost and persists the document
// with its parts in one transaction.
func (s *Service) Create(ctx context.Context, doc *Repair) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.customers.Exists(ctx, doc.CustomerID)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("customer", doc.CustomerID.String())
	}

	if doc.Number == "" {
		cfg := numerator.DefaultConfig(NumberPrefix)
		number, err := s.numerator.GetNextNumber(ctx, cfg, &numerator.Options{Strategy: NumeratorStrategy}, time.Now())
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		doc.Number = number
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lines := make([]inventory.IssueLine, len(doc.UsedParts))
		for i, part := range doc.UsedParts {
			lines[i] = inventory.IssueLine{ProductID: part.ProductID, Quantity: part.Quantity}
		}

		results, err := s.engine.Issue(ctx, lines)
		if err != nil {
			return err
		}

		costs := make([]types.Money, len(results))
		for i, r := range results {
			costs[i] = r.AverageCost
		}
		doc.ApplyPartCosts(costs)

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveParts(ctx, doc.ID, doc.UsedParts); err != nil {
			return fmt.Errorf("save parts: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "repair created",
		"id", doc.ID,
		"number", doc.Number,
		"customer_id", doc.CustomerID,
		"parts", len(doc.UsedParts),
		"total_cost", doc.TotalCost.String(),
		"labor_cost", doc.LaborCost.String())

	return nil
}

// GetByID retrieves a repair with its used parts.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Repair, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	parts, err := s.repo.GetParts(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get parts: %w", err)
	}
	doc.UsedParts = parts

	return doc, nil
}

// GetByNumber retrieves a repair by its document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Repair, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	parts, err := s.repo.GetParts(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get parts: %w", err)
	}
	doc.UsedParts = parts

	return doc, nil
}

// List retrieves repairs with filtering. Parts are not loaded.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Repair], error) {
	return s.repo.List(ctx, filter)
}
