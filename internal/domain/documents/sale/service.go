package sale

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

// Service provides business operations for sale documents.
//
// Create is the sale transaction: stock deduction, snapshot capture and the
// document insert commit atomically. Either every line takes effect or none
// does.
type Service struct {
	repo      Repository
	engine    *inventory.Engine
	customers CustomerChecker
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Sale]
}

// NewService creates a new sale service.
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
		hooks:     domain.NewHookRegistry[*Sale](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Sale] {
	return s.hooks
}

// Create records a sale: verifies stock under row locks, decrements
// quantities, snapshots each line's price and cost and persists the document
// with its lines in one transaction.
func (s *Service) Create(ctx context.Context, doc *Sale) error {
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
		lines := make([]inventory.IssueLine, len(doc.Lines))
		for i, line := range doc.Lines {
			lines[i] = inventory.IssueLine{ProductID: line.ProductID, Quantity: line.Quantity}
		}

		results, err := s.engine.Issue(ctx, lines)
		if err != nil {
			return err
		}

		prices := make([]types.Money, len(results))
		costs := make([]types.Money, len(results))
		for i, r := range results {
			prices[i] = r.SalePrice
			costs[i] = r.AverageCost
		}
		doc.ApplySnapshots(prices, costs)

		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "sale created",
		"id", doc.ID,
		"number", doc.Number,
		"customer_id", doc.CustomerID,
		"lines", len(doc.Lines),
		"total_amount", doc.TotalAmount.String())

	return nil
}

// GetByID retrieves a sale with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// GetByNumber retrieves a sale by its document number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Sale, error) {
	doc, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// List retrieves sales with filtering. Lines are not loaded.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}
