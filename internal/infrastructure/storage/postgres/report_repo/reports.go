// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/reports"
	"repairdesk/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository with read-only aggregate queries.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return r.txManager
}

// GetLowStockReport lists products at or below the threshold with category
// and unit names resolved.
func (r *ReportRepo) GetLowStockReport(ctx context.Context, filter reports.LowStockFilter) (*reports.LowStockReport, error) {
	threshold := int64(0)
	if filter.Threshold != nil {
		threshold = *filter.Threshold
	}

	q := r.builder.
		Select(
			"p.id AS product_id",
			"p.code AS product_code",
			"p.name AS product_name",
			"COALESCE(c.name, '') AS category_name",
			"COALESCE(u.symbol, '') AS unit_symbol",
			"p.quantity",
			fmt.Sprintf("%d AS threshold", threshold),
		).
		From("cat_products p").
		LeftJoin("cat_categories c ON p.category_id = c.id").
		LeftJoin("cat_units u ON p.unit_id = u.id").
		Where(squirrel.LtOrEq{"p.quantity": threshold}).
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where(squirrel.Eq{"p.is_folder": false})

	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}

	q = q.OrderBy("p.quantity ASC", "p.name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock query: %w", err)
	}

	var items []reports.LowStockItem
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}

	return &reports.LowStockReport{
		Threshold:  threshold,
		Items:      items,
		TotalItems: len(items),
	}, nil
}

// GetSalesSummaryReport aggregates sale lines over a period. Revenue and cost
// come from the price/cost snapshots stored on the lines, so the report is
// stable no matter how product prices moved since.
func (r *ReportRepo) GetSalesSummaryReport(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummaryReport, error) {
	q := r.builder.
		Select().
		From("doc_sale_lines l").
		Join("doc_sales s ON l.document_id = s.id").
		Where(squirrel.GtOrEq{"s.date": filter.FromDate}).
		Where(squirrel.LtOrEq{"s.date": filter.ToDate}).
		Where(squirrel.Eq{"s.deletion_mark": false})

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"s.customer_id": *filter.CustomerID})
	}

	if filter.GroupByProduct {
		q = q.Columns(
			"l.product_id",
			"p.name AS product_name",
			"COUNT(DISTINCT s.id) AS sales_count",
			"SUM(l.quantity) AS units_sold",
			"SUM(l.amount) AS revenue",
			"SUM(l.cost_at_time * l.quantity) AS cost_of_goods",
		).
			Join("cat_products p ON l.product_id = p.id").
			GroupBy("l.product_id", "p.name").
			OrderBy("revenue DESC")
	} else {
		q = q.Columns(
			"COUNT(DISTINCT s.id) AS sales_count",
			"SUM(l.quantity) AS units_sold",
			"COALESCE(SUM(l.amount), 0) AS revenue",
			"COALESCE(SUM(l.cost_at_time * l.quantity), 0) AS cost_of_goods",
		)
	}

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sales summary query: %w", err)
	}

	var rows []salesSummaryRow
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("sales summary report: %w", err)
	}

	report := &reports.SalesSummaryReport{
		FromDate:     filter.FromDate,
		ToDate:       filter.ToDate,
		TotalRevenue: types.Zero(),
		TotalCost:    types.Zero(),
		TotalProfit:  types.Zero(),
	}

	for _, row := range rows {
		item := reports.SalesSummaryItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			SalesCount:  row.SalesCount,
			UnitsSold:   row.UnitsSold,
			Revenue:     row.Revenue,
			CostOfGoods: row.CostOfGoods,
			GrossProfit: row.Revenue.Sub(row.CostOfGoods),
		}
		report.Items = append(report.Items, item)
		report.TotalRevenue = report.TotalRevenue.Add(item.Revenue)
		report.TotalCost = report.TotalCost.Add(item.CostOfGoods)
	}
	report.TotalItems = len(report.Items)
	report.TotalProfit = report.TotalRevenue.Sub(report.TotalCost)

	return report, nil
}

type salesSummaryRow struct {
	ProductID   *id.ID      `db:"product_id"`
	ProductName string      `db:"product_name"`
	SalesCount  int64       `db:"sales_count"`
	UnitsSold   int64       `db:"units_sold"`
	Revenue     types.Money `db:"revenue"`
	CostOfGoods types.Money `db:"cost_of_goods"`
}

// GetValuationReport values stock on hand at the current weighted-average
// cost straight from the product rows.
func (r *ReportRepo) GetValuationReport(ctx context.Context, filter reports.ValuationFilter) (*reports.ValuationReport, error) {
	q := r.builder.
		Select(
			"p.id AS product_id",
			"p.code AS product_code",
			"p.name AS product_name",
			"p.quantity",
			"p.average_cost",
			"p.quantity * p.average_cost AS stock_value",
		).
		From("cat_products p").
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where(squirrel.Eq{"p.is_folder": false})

	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.ExcludeZero {
		q = q.Where(squirrel.Gt{"p.quantity": 0})
	}

	q = q.OrderBy("stock_value DESC", "p.name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build valuation query: %w", err)
	}

	var items []reports.ValuationItem
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("valuation report: %w", err)
	}

	report := &reports.ValuationReport{
		AsOf:       time.Now().UTC(),
		Items:      items,
		TotalItems: len(items),
		TotalValue: types.Zero(),
	}
	for _, item := range items {
		report.TotalQuantity += item.Quantity
		report.TotalValue = report.TotalValue.Add(item.StockValue)
	}

	return report, nil
}
