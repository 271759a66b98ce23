// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
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

// GetStockBalanceReport reads the level cache joined with catalog names.
func (r *ReportRepo) GetStockBalanceReport(ctx context.Context, filter reports.StockBalanceReportFilter) (*reports.StockBalanceReport, error) {
	q := r.builder.Select(
		"l.warehouse_id",
		"w.name AS warehouse_name",
		"l.product_id",
		"p.name AS product_name",
		"p.sku AS product_sku",
		"COALESCE(p.category, '') AS category",
		"l.location",
		"l.quantity",
		"l.reserved",
	).
		From("reg_stock_levels l").
		Join("cat_warehouses w ON w.id = l.warehouse_id").
		Join("cat_products p ON p.id = l.product_id")

	if len(filter.WarehouseIDs) > 0 {
		q = q.Where(squirrel.Eq{"l.warehouse_id": filter.WarehouseIDs})
	}
	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"l.product_id": filter.ProductIDs})
	}
	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"p.category": filter.Category})
	}
	if filter.Location != "" {
		q = q.Where(squirrel.Eq{"l.location": filter.Location})
	}
	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"l.quantity": int64(0)})
	}

	q = q.OrderBy("w.name", "p.name", "l.location")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.StockBalanceReportItem
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("stock balance report: %w", err)
	}

	var total types.Quantity
	for _, item := range items {
		total = total.Add(item.Quantity)
	}

	return &reports.StockBalanceReport{
		GeneratedAt:   time.Now().UTC(),
		Items:         items,
		TotalItems:    len(items),
		TotalQuantity: total,
	}, nil
}

// GetStockTurnoverReport aggregates the ledger over a period, split into
// inbound (positive entries) and outbound (negative entries) per
// warehouse and product.
func (r *ReportRepo) GetStockTurnoverReport(ctx context.Context, filter reports.StockTurnoverReportFilter) (*reports.StockTurnoverReport, error) {
	q := r.builder.Select(
		"m.warehouse_id",
		"w.name AS warehouse_name",
		"m.product_id",
		"p.name AS product_name",
		"p.sku AS product_sku",
		"COALESCE(SUM(CASE WHEN m.quantity > 0 THEN m.quantity ELSE 0 END), 0) AS inbound",
		"COALESCE(SUM(CASE WHEN m.quantity < 0 THEN -m.quantity ELSE 0 END), 0) AS outbound",
		"COALESCE(SUM(m.quantity), 0) AS net",
	).
		From("reg_stock_moves m").
		Join("cat_warehouses w ON w.id = m.warehouse_id").
		Join("cat_products p ON p.id = m.product_id").
		Where(squirrel.GtOrEq{"m.created_at": filter.FromDate}).
		Where(squirrel.Lt{"m.created_at": filter.ToDate})

	if len(filter.WarehouseIDs) > 0 {
		q = q.Where(squirrel.Eq{"m.warehouse_id": filter.WarehouseIDs})
	}
	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"m.product_id": filter.ProductIDs})
	}

	q = q.GroupBy("m.warehouse_id", "w.name", "m.product_id", "p.name", "p.sku").
		OrderBy("w.name", "p.name")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.StockTurnoverReportItem
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("stock turnover report: %w", err)
	}

	var totalIn, totalOut types.Quantity
	for _, item := range items {
		totalIn = totalIn.Add(item.Inbound)
		totalOut = totalOut.Add(item.Outbound)
	}

	return &reports.StockTurnoverReport{
		FromDate:      filter.FromDate,
		ToDate:        filter.ToDate,
		Items:         items,
		TotalItems:    len(items),
		TotalInbound:  totalIn,
		TotalOutbound: totalOut,
	}, nil
}

// journalSource describes how one document table maps onto the unified
// journal columns.
type journalSource struct {
	docType       entity.MoveType
	table         string
	counterparty  string
	warehouseExpr string
	totalExpr     string
}

var journalSources = []journalSource{
	{
		docType:       entity.MoveTypeReceipt,
		table:         "doc_receipts",
		counterparty:  "d.supplier",
		warehouseExpr: "d.warehouse_id",
		totalExpr:     "d.total_received",
	},
	{
		docType:       entity.MoveTypeDelivery,
		table:         "doc_deliveries",
		counterparty:  "d.customer",
		warehouseExpr: "d.warehouse_id",
		totalExpr:     "d.total_packed",
	},
	{
		docType:       entity.MoveTypeTransfer,
		table:         "doc_transfers",
		counterparty:  "''",
		warehouseExpr: "d.from_warehouse_id",
		totalExpr:     "d.total_quantity",
	},
	{
		docType:       entity.MoveTypeAdjustment,
		table:         "doc_adjustments",
		counterparty:  "d.reason",
		warehouseExpr: "d.warehouse_id",
		totalExpr:     "COALESCE((SELECT SUM(ABS(l.difference)) FROM doc_adjustment_lines l WHERE l.document_id = d.id), 0)",
	},
}

func selectedSources(docTypes []entity.MoveType) []journalSource {
	if len(docTypes) == 0 {
		return journalSources
	}
	var out []journalSource
	for _, src := range journalSources {
		for _, t := range docTypes {
			if src.docType == t {
				out = append(out, src)
				break
			}
		}
	}
	return out
}

// journalUnion builds the UNION ALL over the selected document tables.
// Shared filters are repeated inside each branch so indexes stay usable.
func (r *ReportRepo) journalUnion(filter reports.DocumentJournalFilter) (string, []any, error) {
	sources := selectedSources(filter.DocumentTypes)
	if len(sources) == 0 {
		return "", nil, nil
	}

	var unions []string
	var args []any
	argIndex := 1

	for _, src := range sources {
		q := fmt.Sprintf(`
			SELECT
				d.id,
				'%s' AS document_type,
				d.reference,
				d.date,
				d.status,
				%s AS counterparty,
				%s AS warehouse_id,
				COALESCE(w.name, '') AS warehouse_name,
				%s AS total_quantity,
				d.notes,
				d.created_at,
				d.updated_at
			FROM %s d
			LEFT JOIN cat_warehouses w ON w.id = %s
			WHERE d.deletion_mark = false
		`, src.docType, src.counterparty, src.warehouseExpr, src.totalExpr, src.table, src.warehouseExpr)

		if filter.FromDate != nil {
			q += fmt.Sprintf(" AND d.date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			q += fmt.Sprintf(" AND d.date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}
		if len(filter.Statuses) > 0 {
			placeholders := make([]string, len(filter.Statuses))
			for i, st := range filter.Statuses {
				placeholders[i] = fmt.Sprintf("$%d", argIndex)
				args = append(args, st)
				argIndex++
			}
			q += fmt.Sprintf(" AND d.status IN (%s)", strings.Join(placeholders, ","))
		}
		if filter.ReferenceContains != "" {
			q += fmt.Sprintf(" AND d.reference ILIKE $%d", argIndex)
			args = append(args, "%"+filter.ReferenceContains+"%")
			argIndex++
		}
		if len(filter.WarehouseIDs) > 0 {
			placeholders := make([]string, len(filter.WarehouseIDs))
			for i, whID := range filter.WarehouseIDs {
				placeholders[i] = fmt.Sprintf("$%d", argIndex)
				args = append(args, whID)
				argIndex++
			}
			q += fmt.Sprintf(" AND %s IN (%s)", src.warehouseExpr, strings.Join(placeholders, ","))
		}

		unions = append(unions, q)
	}

	return strings.Join(unions, " UNION ALL "), args, nil
}

func journalOrderBy(filter reports.DocumentJournalFilter) string {
	column := "date"
	switch filter.SortBy {
	case "reference":
		column = "reference"
	case "type":
		column = "document_type"
	}

	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, reference", column, direction)
}

// GetDocumentJournal retrieves documents of all types as a single journal.
func (r *ReportRepo) GetDocumentJournal(ctx context.Context, filter reports.DocumentJournalFilter) (*reports.DocumentJournal, error) {
	union, args, err := r.journalUnion(filter)
	if err != nil {
		return nil, err
	}
	if union == "" {
		return &reports.DocumentJournal{
			Items:  []reports.DocumentJournalItem{},
			Limit:  filter.Limit,
			Offset: filter.Offset,
		}, nil
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM (%s) j", union)
	var totalCount int
	if err := querier.QueryRow(ctx, countSQL, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("document journal count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM (%s) j", union)
	query += journalOrderBy(filter)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var items []reports.DocumentJournalItem
	if err := pgxscan.Select(ctx, querier, &items, query, args...); err != nil {
		return nil, fmt.Errorf("document journal: %w", err)
	}

	return &reports.DocumentJournal{
		Items:      items,
		TotalCount: totalCount,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// GetDocumentTypeSummary returns per-type document counts.
func (r *ReportRepo) GetDocumentTypeSummary(ctx context.Context, filter reports.DocumentJournalFilter) ([]reports.DocumentTypeSummary, error) {
	sources := selectedSources(filter.DocumentTypes)
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	var result []reports.DocumentTypeSummary
	for _, src := range sources {
		query := fmt.Sprintf(`
			SELECT
				COUNT(*) AS count,
				COUNT(*) FILTER (WHERE status = 'done') AS done_count,
				COUNT(*) FILTER (WHERE status IN ('draft', 'waiting', 'ready')) AS open_count
			FROM %s
			WHERE deletion_mark = false
		`, src.table)

		var args []any
		argIndex := 1
		if filter.FromDate != nil {
			query += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			query += fmt.Sprintf(" AND date < $%d", argIndex)
			args = append(args, *filter.ToDate)
		}

		summary := reports.DocumentTypeSummary{DocumentType: src.docType}
		err := querier.QueryRow(ctx, query, args...).Scan(
			&summary.Count,
			&summary.DoneCount,
			&summary.OpenCount,
		)
		if err != nil {
			return nil, fmt.Errorf("document type summary for %s: %w", src.docType, err)
		}

		result = append(result, summary)
	}

	return result, nil
}

// CountProducts counts active catalog products.
func (r *ReportRepo) CountProducts(ctx context.Context) (int, error) {
	return r.countRows(ctx, "SELECT COUNT(*) FROM cat_products WHERE deletion_mark = false")
}

// CountWarehouses counts active warehouses.
func (r *ReportRepo) CountWarehouses(ctx context.Context) (int, error) {
	return r.countRows(ctx, "SELECT COUNT(*) FROM cat_warehouses WHERE deletion_mark = false")
}

// CountBelowReorderPoint counts products whose total on-hand quantity
// across all warehouses is at or below their reorder point.
func (r *ReportRepo) CountBelowReorderPoint(ctx context.Context) (int, error) {
	return r.countRows(ctx, `
		SELECT COUNT(*)
		FROM cat_products p
		WHERE p.deletion_mark = false
		  AND p.reorder_point > 0
		  AND COALESCE((
			SELECT SUM(l.quantity) FROM reg_stock_levels l WHERE l.product_id = p.id
		  ), 0) <= p.reorder_point
	`)
}

func (r *ReportRepo) countRows(ctx context.Context, query string) (int, error) {
	var count int
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return count, nil
}

// GetTotalOnHand sums the level cache across all warehouses.
func (r *ReportRepo) GetTotalOnHand(ctx context.Context) (types.Quantity, error) {
	var scaled int64
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	err := querier.QueryRow(ctx, "SELECT COALESCE(SUM(quantity), 0) FROM reg_stock_levels").Scan(&scaled)
	if err != nil {
		return 0, fmt.Errorf("total on hand: %w", err)
	}
	return types.NewQuantityFromInt64Scaled(scaled), nil
}

// GetRecentMoves returns the newest ledger entries.
func (r *ReportRepo) GetRecentMoves(ctx context.Context, limit int) ([]entity.StockMove, error) {
	if limit <= 0 {
		limit = 10
	}

	q := r.builder.Select(
		"position", "line_id", "document_id", "type", "status", "reference",
		"warehouse_id", "product_id", "product_sku",
		"from_location", "to_location", "quantity",
		"user_id", "notes", "created_at",
	).
		From("reg_stock_moves").
		OrderBy("position DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var moves []entity.StockMove
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &moves, sql, args...); err != nil {
		return nil, fmt.Errorf("recent moves: %w", err)
	}

	return moves, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
