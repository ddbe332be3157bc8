package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/catalogs/product"
	"repairdesk/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// stockCols are owned by the inventory engine and excluded from catalog
// updates. UpdateStock is their only write path.
var stockCols = map[string]bool{
	"quantity":     true,
	"average_cost": true,
}

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// Update modifies catalog attributes with optimistic locking. Quantity and
// average cost are never written here, so a concurrent stock movement cannot
// be overwritten by a catalog edit.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	data := postgres.StructToMap(p)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(data))
	for col, val := range data {
		if col == "id" || col == "version" || stockCols[col] {
			continue
		}
		filteredData[col] = val
	}

	q := r.Builder().
		Update(productTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", productTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(productTable, p.ID)
	}

	return nil
}

// UpdateStock sets quantity and average cost for a product. The caller must
// hold the row lock taken via GetForUpdate in the same transaction.
func (r *ProductRepo) UpdateStock(ctx context.Context, productID id.ID, quantity int64, averageCost types.Money) error {
	q := r.Builder().
		Update(productTable).
		Set("quantity", quantity).
		Set("average_cost", averageCost).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build stock update: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(productTable, productID.String())
	}

	return nil
}

// CountByCategory returns the number of products referencing a category.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID id.ID) (int64, error) {
	return r.countByRef(ctx, "category_id", categoryID)
}

// CountByUnit returns the number of products referencing a unit.
func (r *ProductRepo) CountByUnit(ctx context.Context, unitID id.ID) (int64, error) {
	return r.countByRef(ctx, "unit_id", unitID)
}

func (r *ProductRepo) countByRef(ctx context.Context, column string, refID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(productTable).
		Where(squirrel.Eq{column: refID}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.getTxManager(ctx).GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by %s: %w", column, err)
	}

	return count, nil
}

// FindLowStock retrieves products with quantity at or below threshold,
// ordered by quantity ascending so the emptiest shelves come first.
func (r *ProductRepo) FindLowStock(ctx context.Context, threshold int64, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx).
		Where(squirrel.LtOrEq{"quantity": threshold}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_folder": false})

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("quantity ASC", "name ASC")
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
		return result, fmt.Errorf("find low stock: %w", err)
	}

	return result, nil
}
