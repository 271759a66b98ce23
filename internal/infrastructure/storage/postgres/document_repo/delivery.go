package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents/delivery"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	deliveriesTable    = "doc_deliveries"
	deliveryLinesTable = "doc_delivery_lines"
)

// DeliveryRepo implements delivery.Repository.
type DeliveryRepo struct {
	*BaseDocumentRepo[*delivery.Delivery]
}

// NewDeliveryRepo creates a new delivery repository.
func NewDeliveryRepo(txManager *postgres.TxManager) *DeliveryRepo {
	return &DeliveryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*delivery.Delivery](
			txManager,
			deliveriesTable,
			postgres.ExtractDBColumns[delivery.Delivery](),
			func() *delivery.Delivery { return &delivery.Delivery{} },
		),
	}
}

// GetLines retrieves lines for a delivery.
func (r *DeliveryRepo) GetLines(ctx context.Context, docID id.ID) ([]delivery.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id", "product_sku",
			"ordered_qty", "picked_qty", "packed_qty", "location",
		).
		From(deliveryLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []delivery.Line
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a delivery (delete existing + insert new).
func (r *DeliveryRepo) SaveLines(ctx context.Context, docID id.ID, lines []delivery.Line) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + deliveryLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(deliveryLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id", "product_sku",
			"ordered_qty", "picked_qty", "packed_qty", "location",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID, line.ProductSKU,
			line.OrderedQty, line.PickedQty, line.PackedQty, line.Location,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves deliveries with filtering.
func (r *DeliveryRepo) List(ctx context.Context, filter delivery.ListFilter) (domain.ListResult[*delivery.Delivery], error) {
	result := domain.ListResult[*delivery.Delivery]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ctx)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"warehouse_id": *filter.WarehouseID})
	}

	if filter.Customer != "" {
		q = q.Where(squirrel.ILike{"customer": "%" + filter.Customer + "%"})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"reference": searchPattern},
			squirrel.ILike{"customer": searchPattern},
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

	orderBy := "date DESC"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
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
