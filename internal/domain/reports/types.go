// Package reports provides read-only reporting over products and documents.
// Reports never mutate state; derived figures such as gross profit are
// computed at read time from stored snapshots.
package reports

import (
	"time"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
)

// --- Low Stock Report ---

// LowStockFilter defines the filter for the low stock report.
type LowStockFilter struct {
	// Threshold overrides the configured low stock threshold when set.
	Threshold *int64

	CategoryID *id.ID

	Limit  int
	Offset int
}

// LowStockItem is one product at or below the threshold.
type LowStockItem struct {
	ProductID    id.ID  `json:"productId"`
	ProductCode  string `json:"productCode"`
	ProductName  string `json:"productName"`
	CategoryName string `json:"categoryName"`
	UnitSymbol   string `json:"unitSymbol"`
	Quantity     int64  `json:"quantity"`
	Threshold    int64  `json:"threshold"`
}

// LowStockReport lists products needing replenishment.
type LowStockReport struct {
	Threshold  int64          `json:"threshold"`
	Items      []LowStockItem `json:"items"`
	TotalItems int            `json:"totalItems"`
}

// --- Sales Summary Report ---

// SalesSummaryFilter defines the period and grouping for the sales summary.
type SalesSummaryFilter struct {
	// Period (required)
	FromDate time.Time
	ToDate   time.Time

	CustomerID *id.ID

	// GroupByProduct breaks the summary down per product
	GroupByProduct bool

	Limit  int
	Offset int
}

// SalesSummaryItem is one row of the sales summary. GrossProfit is
// Revenue minus CostOfGoods, computed from the per-line snapshots taken at
// sale time.
type SalesSummaryItem struct {
	ProductID   *id.ID      `json:"productId,omitempty"`
	ProductName string      `json:"productName,omitempty"`
	SalesCount  int64       `json:"salesCount"`
	UnitsSold   int64       `json:"unitsSold"`
	Revenue     types.Money `json:"revenue"`
	CostOfGoods types.Money `json:"costOfGoods"`
	GrossProfit types.Money `json:"grossProfit"`
}

// SalesSummaryReport is the full sales summary.
type SalesSummaryReport struct {
	FromDate   time.Time          `json:"fromDate"`
	ToDate     time.Time          `json:"toDate"`
	Items      []SalesSummaryItem `json:"items"`
	TotalItems int                `json:"totalItems"`

	// Period totals across all items
	TotalRevenue types.Money `json:"totalRevenue"`
	TotalCost    types.Money `json:"totalCost"`
	TotalProfit  types.Money `json:"totalProfit"`
}

// --- Inventory Valuation Report ---

// ValuationFilter defines the filter for the inventory valuation report.
type ValuationFilter struct {
	CategoryID *id.ID

	// ExcludeZero drops products with no stock on hand
	ExcludeZero bool

	Limit  int
	Offset int
}

// ValuationItem is one product's stock value at current average cost.
type ValuationItem struct {
	ProductID   id.ID       `json:"productId"`
	ProductCode string      `json:"productCode"`
	ProductName string      `json:"productName"`
	Quantity    int64       `json:"quantity"`
	AverageCost types.Money `json:"averageCost"`
	StockValue  types.Money `json:"stockValue"`
}

// ValuationReport is the full inventory valuation.
type ValuationReport struct {
	AsOf       time.Time       `json:"asOf"`
	Items      []ValuationItem `json:"items"`
	TotalItems int             `json:"totalItems"`

	TotalQuantity int64       `json:"totalQuantity"`
	TotalValue    types.Money `json:"totalValue"`
}
