package reports

import (
	"context"
	"fmt"

	"repairdesk/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo      Repository
	threshold ThresholdProvider
}

// NewService creates a new reports service.
func NewService(repo Repository, threshold ThresholdProvider) *Service {
	return &Service{repo: repo, threshold: threshold}
}

// GetLowStock lists products at or below the low stock threshold. The
// threshold comes from settings unless the filter overrides it.
func (s *Service) GetLowStock(ctx context.Context, filter LowStockFilter) (*LowStockReport, error) {
	if filter.Threshold == nil {
		threshold, err := s.threshold.LowStockThreshold(ctx)
		if err != nil {
			return nil, fmt.Errorf("get low stock threshold: %w", err)
		}
		filter.Threshold = &threshold
	}
	if *filter.Threshold < 0 {
		return nil, apperror.NewValidation("threshold cannot be negative").
			WithDetail("field", "threshold")
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetLowStockReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get low stock report: %w", err)
	}

	return report, nil
}

// GetSalesSummary aggregates sales over a period. Gross profit is computed
// from line snapshots, never from current product state.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required").
			WithDetail("field", "period")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate").
			WithDetail("field", "period")
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetSalesSummaryReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales summary report: %w", err)
	}

	return report, nil
}

// GetValuation returns stock on hand valued at current weighted-average cost.
func (s *Service) GetValuation(ctx context.Context, filter ValuationFilter) (*ValuationReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetValuationReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get valuation report: %w", err)
	}

	return report, nil
}
