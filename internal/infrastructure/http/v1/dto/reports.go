package dto

// Report responses reuse the JSON-tagged report structs from the domain
// package directly; only the query-binding requests live here.

// --- Low Stock Report ---

// LowStockReportRequest represents request for the low stock report.
type LowStockReportRequest struct {
	Threshold  *int64  `form:"threshold"`
	CategoryID *string `form:"categoryId"`
	Limit      int     `form:"limit"`
	Offset     int     `form:"offset"`
}

// --- Sales Summary Report ---

// SalesSummaryReportRequest represents request for the sales summary report.
type SalesSummaryReportRequest struct {
	FromDate       string  `form:"fromDate" binding:"required"`
	ToDate         string  `form:"toDate" binding:"required"`
	CustomerID     *string `form:"customerId"`
	GroupByProduct bool    `form:"groupByProduct"`
	Limit          int     `form:"limit"`
	Offset         int     `form:"offset"`
}

// --- Inventory Valuation Report ---

// ValuationReportRequest represents request for the inventory valuation report.
type ValuationReportRequest struct {
	CategoryID  *string `form:"categoryId"`
	ExcludeZero bool    `form:"excludeZero"`
	Limit       int     `form:"limit"`
	Offset      int     `form:"offset"`
}
