// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/registers/stock"
	"stockmaster/internal/infrastructure/storage/postgres"
)

const (
	stockMovesTable  = "reg_stock_moves"
	stockLevelsTable = "reg_stock_levels"
	productsTable    = "cat_products"
)

var moveColumns = []string{
	"line_id", "document_id", "type", "status", "reference",
	"warehouse_id", "product_id", "product_sku",
	"from_location", "to_location", "quantity",
	"user_id", "notes", "created_at",
}

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StockRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return r.txManager
}

// AppendEntries batch inserts ledger entries. The position column is a
// bigserial assigned by the database, so insertion order is the query order.
func (r *StockRepo) AppendEntries(ctx context.Context, entries []entity.StockMove) error {
	if len(entries) == 0 {
		return nil
	}

	rowsOf := func(e *entity.StockMove) []any {
		return []any{
			e.LineID, e.DocumentID, e.Type, e.Status, e.Reference,
			e.WarehouseID, e.ProductID, e.ProductSKU,
			e.FromLocation, e.ToLocation, e.Quantity,
			e.UserID, e.Notes, e.CreatedAt,
		}
	}

	// Fast path: COPY when inside a transaction.
	txm := r.getTxManager(ctx)
	if tx := txm.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(txm)
		rows := make([][]any, 0, len(entries))
		for i := range entries {
			rows = append(rows, rowsOf(&entries[i]))
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovesTable, moveColumns, rows); err != nil {
			return fmt.Errorf("copy entries: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockMovesTable).Columns(moveColumns...)
	for i := range entries {
		q = q.Values(rowsOf(&entries[i])...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}

	return nil
}

func (r *StockRepo) selectMoves() squirrel.SelectBuilder {
	cols := make([]string, 0, len(moveColumns)+1)
	cols = append(cols, "m.position")
	for _, c := range moveColumns {
		cols = append(cols, "m."+c)
	}
	return r.builder.Select(cols...).From(stockMovesTable + " m")
}

// GetEntriesByDocument retrieves entries for a document in insertion order.
func (r *StockRepo) GetEntriesByDocument(ctx context.Context, documentID id.ID) ([]entity.StockMove, error) {
	q := r.selectMoves().
		Where(squirrel.Eq{"m.document_id": documentID}).
		OrderBy("m.position")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []entity.StockMove
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	return entries, nil
}

// ListEntries retrieves entries with filtering, in insertion order.
// The category filter joins the product catalog.
func (r *StockRepo) ListEntries(ctx context.Context, filter stock.LedgerFilter) (domain.ListResult[entity.StockMove], error) {
	result := domain.ListResult[entity.StockMove]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.selectMoves()

	if len(filter.Types) > 0 {
		q = q.Where(squirrel.Eq{"m.type": filter.Types})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"m.status": filter.Statuses})
	}
	if filter.WarehouseID != nil {
		q = q.Where(squirrel.Eq{"m.warehouse_id": *filter.WarehouseID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"m.product_id": *filter.ProductID})
	}
	if filter.Category != "" {
		q = q.Join(productsTable + " p ON p.id = m.product_id").
			Where(squirrel.Eq{"p.category": filter.Category})
	}
	if filter.Reference != "" {
		q = q.Where(squirrel.Eq{"m.reference": filter.Reference})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"m.created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"m.created_at": *filter.ToDate})
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("m.position")

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
		return result, fmt.Errorf("select entries: %w", err)
	}

	return result, nil
}

const levelColumns = "warehouse_id, product_id, location, quantity, reserved, last_movement_at, updated_at"

// GetLevel returns the cached level, or a zero-quantity level if no row exists.
func (r *StockRepo) GetLevel(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error) {
	var level entity.StockLevel

	sql := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE warehouse_id = $1 AND product_id = $2 AND location = $3
	`, levelColumns, stockLevelsTable)

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &level, sql, warehouseID, productID, location); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockLevel{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Location:    location,
			}, nil
		}
		return level, fmt.Errorf("get level: %w", err)
	}

	return level, nil
}

// ensureLevelSQL materializes a zero row for the bin if none exists yet.
func ensureLevelSQL() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, 0, 0, NOW(), NOW())
		ON CONFLICT (warehouse_id, product_id, location) DO NOTHING
	`, stockLevelsTable, levelColumns)
}

// lockLevelSQL selects the bin row with a row lock.
func lockLevelSQL() string {
	return fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE warehouse_id = $1 AND product_id = $2 AND location = $3
		FOR UPDATE
	`, levelColumns, stockLevelsTable)
}

// GetLevelForUpdate returns the level with a row lock for stock control.
// A missing row is materialized at zero before locking, so two
// transactions making the first movement into the same bin serialize on
// the row lock instead of both reading an absent row and losing a delta.
func (r *StockRepo) GetLevelForUpdate(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error) {
	var level entity.StockLevel

	querier := r.getTxManager(ctx).GetQuerier(ctx)

	if _, err := querier.Exec(ctx, ensureLevelSQL(), warehouseID, productID, location); err != nil {
		return level, fmt.Errorf("ensure level row: %w", err)
	}

	if err := pgxscan.Get(ctx, querier, &level, lockLevelSQL(), warehouseID, productID, location); err != nil {
		return level, fmt.Errorf("get level for update: %w", err)
	}

	return level, nil
}

// UpsertLevel writes the cached level.
func (r *StockRepo) UpsertLevel(ctx context.Context, level entity.StockLevel) error {
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (warehouse_id, product_id, location) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			reserved = EXCLUDED.reserved,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at
	`, stockLevelsTable, levelColumns)

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		level.WarehouseID, level.ProductID, level.Location,
		level.Quantity, level.Reserved,
		level.LastMovementAt, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert level: %w", err)
	}

	return nil
}

// GetLevelsByWarehouse returns levels for a warehouse.
func (r *StockRepo) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, filter stock.LevelFilter) ([]entity.StockLevel, error) {
	q := r.builder.Select(
		"warehouse_id", "product_id", "location",
		"quantity", "reserved", "last_movement_at", "updated_at",
	).From(stockLevelsTable).
		Where(squirrel.Eq{"warehouse_id": warehouseID})

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": int64(0)})
	}
	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"product_id": filter.ProductIDs})
	}
	if filter.Location != "" {
		q = q.Where(squirrel.Eq{"location": filter.Location})
	}

	q = q.OrderBy("product_id", "location")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var levels []entity.StockLevel
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("select levels: %w", err)
	}

	return levels, nil
}

// GetLevelsByProduct returns non-zero levels for a product across warehouses.
func (r *StockRepo) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]entity.StockLevel, error) {
	q := r.builder.Select(
		"warehouse_id", "product_id", "location",
		"quantity", "reserved", "last_movement_at", "updated_at",
	).From(stockLevelsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("warehouse_id", "location")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var levels []entity.StockLevel
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &levels, sql, args...); err != nil {
		return nil, fmt.Errorf("select levels: %w", err)
	}

	return levels, nil
}

// GetTurnover calculates inbound and outbound totals for a period.
func (r *StockRepo) GetTurnover(ctx context.Context, filter stock.TurnoverFilter) (stock.Turnover, error) {
	var result stock.Turnover

	args := []any{filter.FromDate, filter.ToDate}
	conditions := "created_at >= $1 AND created_at < $2"
	argIndex := 3

	if filter.WarehouseID != nil {
		conditions += fmt.Sprintf(" AND warehouse_id = $%d", argIndex)
		args = append(args, *filter.WarehouseID)
		result.WarehouseID = *filter.WarehouseID
		argIndex++
	}

	if filter.ProductID != nil {
		conditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		result.ProductID = *filter.ProductID
	}

	sql := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN quantity > 0 THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN quantity < 0 THEN -quantity ELSE 0 END), 0) as outbound
		FROM %s
		WHERE %s
	`, stockMovesTable, conditions)

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	var inboundScaled, outboundScaled int64
	err := querier.QueryRow(ctx, sql, args...).Scan(&inboundScaled, &outboundScaled)
	if err != nil && err != pgx.ErrNoRows {
		return result, fmt.Errorf("calculate turnover: %w", err)
	}

	result.Inbound = types.NewQuantityFromInt64Scaled(inboundScaled)
	result.Outbound = types.NewQuantityFromInt64Scaled(outboundScaled)
	result.Net = result.Inbound.Sub(result.Outbound)

	return result, nil
}

// recalcScope builds the WHERE conditions shared by reset and rebuild.
func recalcScope(warehouseID, productID *id.ID) (string, []any) {
	conditions := "TRUE"
	args := []any{}
	argIndex := 1

	if warehouseID != nil {
		conditions += fmt.Sprintf(" AND warehouse_id = $%d", argIndex)
		args = append(args, *warehouseID)
		argIndex++
	}
	if productID != nil {
		conditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *productID)
	}

	return conditions, args
}

// resetLevelsSQL zeroes every level row in scope ahead of a rebuild.
func resetLevelsSQL(conditions string) string {
	return fmt.Sprintf(`
		UPDATE %s
		SET quantity = 0, updated_at = NOW()
		WHERE %s
	`, stockLevelsTable, conditions)
}

// rebuildLevelsSQL recomputes level rows from the ledger in one statement.
func rebuildLevelsSQL(conditions string) string {
	return fmt.Sprintf(`
		WITH effective AS (
			SELECT
				warehouse_id,
				product_id,
				CASE
					WHEN quantity < 0 AND from_location IS NOT NULL AND from_location <> ''
						THEN from_location
					ELSE to_location
				END AS location,
				quantity,
				created_at
			FROM %s
			WHERE %s
		),
		recalced AS (
			SELECT
				warehouse_id, product_id, location,
				SUM(quantity) AS quantity,
				MAX(created_at) AS last_movement_at
			FROM effective
			WHERE location <> '%s'
			GROUP BY warehouse_id, product_id, location
		)
		INSERT INTO %s (warehouse_id, product_id, location, quantity, reserved, last_movement_at, updated_at)
		SELECT warehouse_id, product_id, location, quantity, 0, last_movement_at, NOW()
		FROM recalced
		ON CONFLICT (warehouse_id, product_id, location) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			last_movement_at = EXCLUDED.last_movement_at,
			updated_at = EXCLUDED.updated_at
	`, stockMovesTable, conditions, entity.LocationOut, stockLevelsTable)
}

// RecalculateLevels rebuilds the level cache from the ledger.
// Positive entries accumulate at to_location, negative at from_location
// (or to_location when no source is set); the OUT sink is excluded.
// Rows in scope are zeroed first, so bins whose ledger entries are gone
// do not survive the rebuild with stale quantities.
func (r *StockRepo) RecalculateLevels(ctx context.Context, warehouseID, productID *id.ID) error {
	conditions, args := recalcScope(warehouseID, productID)

	// Reset and rebuild must commit together, or a failed rebuild would
	// leave the in-scope levels zeroed.
	return r.getTxManager(ctx).RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.getTxManager(ctx).GetQuerier(ctx)

		if _, err := querier.Exec(ctx, resetLevelsSQL(conditions), args...); err != nil {
			return fmt.Errorf("reset levels: %w", err)
		}
		if _, err := querier.Exec(ctx, rebuildLevelsSQL(conditions), args...); err != nil {
			return fmt.Errorf("recalculate levels: %w", err)
		}
		return nil
	})
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
