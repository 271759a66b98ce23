package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindBySKU retrieves a product by SKU.
func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"sku": sku}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return item, nil
}

// FindByBarcode retrieves a product by barcode.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"barcode": barcode}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", barcode)
		}
		return nil, err
	}
	return item, nil
}

// FindBelowReorderPoint retrieves products whose total on-hand quantity is
// at or below their reorder point. Products with no levels count as zero.
func (r *ProductRepo) FindBelowReorderPoint(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	result := domain.ListResult[*product.Product]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Gt{"reorder_point": 0}).
		Where(squirrel.Expr(fmt.Sprintf(
			"COALESCE((SELECT SUM(sl.quantity) FROM reg_stock_levels sl WHERE sl.product_id = %s.id), 0) <= reorder_point",
			productTable,
		))).
		OrderBy("name ASC")

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

	var items []*product.Product
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, fmt.Errorf("find below reorder point: %w", err)
	}
	result.Items = items
	result.TotalCount = int64(len(items))

	return result, nil
}
