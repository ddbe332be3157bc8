package reports

import (
	"context"
)

// Repository defines report data access.
type Repository interface {
	GetLowStockReport(ctx context.Context, filter LowStockFilter) (*LowStockReport, error)
	GetSalesSummaryReport(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error)
	GetValuationReport(ctx context.Context, filter ValuationFilter) (*ValuationReport, error)
}

// ThresholdProvider supplies the configured low stock threshold.
type ThresholdProvider interface {
	LowStockThreshold(ctx context.Context) (int64, error)
}
