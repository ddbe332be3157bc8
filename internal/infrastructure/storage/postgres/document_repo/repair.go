package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/documents/repair"
	"repairdesk/internal/infrastructure/storage/postgres"
)

const (
	repairsTable     = "doc_repairs"
	repairPartsTable = "doc_repair_parts"
)

// RepairRepo implements repair.Repository.
type RepairRepo struct {
	*BaseDocumentRepo[*repair.Repair]
}

// NewRepairRepo creates a new repair repository.
func NewRepairRepo(txManager *postgres.TxManager) *RepairRepo {
	return &RepairRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			repairsTable,
			postgres.ExtractDBColumns[repair.Repair](),
			func() *repair.Repair { return &repair.Repair{} },
		),
	}
}

// GetParts retrieves used parts for a repair.
func (r *RepairRepo) GetParts(ctx context.Context, docID id.ID) ([]repair.UsedPart, error) {
	q := r.Builder().
		Select(
			"id", "line_no", "product_id",
			"quantity", "cost_at_time", "amount",
		).
		From(repairPartsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var parts []repair.UsedPart
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &parts, sql, args...); err != nil {
		return nil, fmt.Errorf("get parts: %w", err)
	}

	return parts, nil
}

// SaveParts saves used parts for a repair (delete existing + insert new).
func (r *RepairRepo) SaveParts(ctx context.Context, docID id.ID, parts []repair.UsedPart) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + repairPartsTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing parts: %w", err)
	}

	if len(parts) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(repairPartsTable).
		Columns(
			"id", "document_id", "line_no", "product_id",
			"quantity", "cost_at_time", "amount",
		)

	for _, part := range parts {
		q = q.Values(
			part.ID, docID, part.LineNo, part.ProductID,
			part.Quantity, part.CostAtTime, part.Amount,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert parts: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert parts: %w", err)
	}

	return nil
}

// CountByCustomer returns the number of repairs referencing a customer.
func (r *RepairRepo) CountByCustomer(ctx context.Context, customerID id.ID) (int64, error) {
	return r.countWhere(ctx, repairsTable, squirrel.Eq{"customer_id": customerID})
}

// CountByProduct returns the number of repair parts referencing a product.
func (r *RepairRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	return r.countWhere(ctx, repairPartsTable, squirrel.Eq{"product_id": productID})
}

func (r *RepairRepo) countWhere(ctx context.Context, table string, cond squirrel.Eq) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(table).
		Where(cond)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.getTxManager(ctx).GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}

// List retrieves repairs with filtering. Parts are not loaded.
func (r *RepairRepo) List(ctx context.Context, filter repair.ListFilter) (domain.ListResult[*repair.Repair], error) {
	result := domain.ListResult[*repair.Repair]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.ProductID != nil {
		q = q.Where(squirrel.Expr(
			"id IN (SELECT document_id FROM "+repairPartsTable+" WHERE product_id = ?)",
			*filter.ProductID,
		))
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
