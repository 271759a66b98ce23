package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents/receipt"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	receiptsTable     = "doc_receipts"
	receiptLinesTable = "doc_receipt_lines"
)

// ReceiptRepo implements receipt.Repository.
type ReceiptRepo struct {
	*BaseDocumentRepo[*receipt.Receipt]
}

// NewReceiptRepo creates a new receipt repository.
func NewReceiptRepo(txManager *postgres.TxManager) *ReceiptRepo {
	return &ReceiptRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*receipt.Receipt](
			txManager,
			receiptsTable,
			postgres.ExtractDBColumns[receipt.Receipt](),
			func() *receipt.Receipt { return &receipt.Receipt{} },
		),
	}
}

// GetLines retrieves lines for a receipt.
func (r *ReceiptRepo) GetLines(ctx context.Context, docID id.ID) ([]receipt.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id", "product_sku",
			"expected_qty", "received_qty", "location",
		).
		From(receiptLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []receipt.Line
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a receipt (delete existing + insert new).
func (r *ReceiptRepo) SaveLines(ctx context.Context, docID id.ID, lines []receipt.Line) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + receiptLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(receiptLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id", "product_sku",
			"expected_qty", "received_qty", "location",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID, line.ProductSKU,
			line.ExpectedQty, line.ReceivedQty, line.Location,
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

// List retrieves receipts with filtering.
func (r *ReceiptRepo) List(ctx context.Context, filter receipt.ListFilter) (domain.ListResult[*receipt.Receipt], error) {
	result := domain.ListResult[*receipt.Receipt]{
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

	if filter.Supplier != "" {
		q = q.Where(squirrel.ILike{"supplier": "%" + filter.Supplier + "%"})
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
			squirrel.ILike{"supplier": searchPattern},
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
