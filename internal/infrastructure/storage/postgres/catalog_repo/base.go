// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/filter"
	"stockmaster/internal/infrastructure/storage/postgres"
)

// BaseCatalogRepo carries the CRUD, listing and hierarchy queries shared
// by the product and warehouse repositories. Concrete repos embed it and
// add their lookups (FindBySKU, GetDefault) on top.
type BaseCatalogRepo[T any] struct {
	txManager  *postgres.TxManager
	tableName  string
	selectCols []string
	newFn      func() T
}

// NewBaseCatalogRepo builds the shared repository core. selectCols is
// the full column list reflected from the entity's db tags; it doubles
// as the whitelist for filter and orderBy fields.
func NewBaseCatalogRepo[T any](
	txManager *postgres.TxManager,
	tableName string,
	selectCols []string,
	newFn func() T,
) *BaseCatalogRepo[T] {
	return &BaseCatalogRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// getTxManager returns the transaction manager. Queries pick up an active
// transaction from context through GetQuerier.
func (r *BaseCatalogRepo[T]) getTxManager(ctx context.Context) *postgres.TxManager {
	return r.txManager
}

// Builder returns a squirrel builder with $N placeholders.
func (r *BaseCatalogRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// columnMap projects the entity's db-tagged fields down to the columns
// the table actually has.
func (r *BaseCatalogRepo[T]) columnMap(entity T, skip ...string) (map[string]any, error) {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return nil, fmt.Errorf("no db tags found in entity")
	}

	out := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		val, ok := data[col]
		if !ok {
			continue
		}
		skipped := false
		for _, s := range skip {
			if col == s {
				skipped = true
				break
			}
		}
		if !skipped {
			out[col] = val
		}
	}
	return out, nil
}

// Create inserts a new entity using its "db" tags.
func (r *BaseCatalogRepo[T]) Create(ctx context.Context, entity T) error {
	data, err := r.columnMap(entity)
	if err != nil {
		return err
	}

	sql, args, err := r.Builder().Insert(r.tableName).SetMap(data).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update modifies an existing entity. The row's version must match the
// entity's; a zero-row update means someone else got there first.
func (r *BaseCatalogRepo[T]) Update(ctx context.Context, entity T) error {
	raw := postgres.StructToMap(entity)
	entityID, ok := raw["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}
	version, ok := raw["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// id never changes and version is bumped by the repo itself.
	data, err := r.columnMap(entity, "id", "version")
	if err != nil {
		return err
	}

	sql, args, err := r.Builder().
		Update(r.tableName).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

func (r *BaseCatalogRepo[T]) baseSelect(ctx context.Context) squirrel.SelectBuilder {
	return r.Builder().Select(r.selectCols...).From(r.tableName)
}

// scanOne runs q and scans the single row into a fresh entity.
// notFoundKey identifies the lookup in the NotFound error.
func (r *BaseCatalogRepo[T]) scanOne(ctx context.Context, q squirrel.SelectBuilder, notFoundKey string) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, notFoundKey)
		}
		return entity, fmt.Errorf("scan %s: %w", r.tableName, err)
	}

	return entity, nil
}

// GetByID retrieves entity by ID.
func (r *BaseCatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	q := r.baseSelect(ctx).Where(squirrel.Eq{"id": entityID}).Limit(1)
	return r.scanOne(ctx, q, entityID.String())
}

// GetByCode retrieves an undeleted entity by its code.
func (r *BaseCatalogRepo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)
	return r.scanOne(ctx, q, code)
}

// GetForUpdate retrieves entity by ID with a row lock.
func (r *BaseCatalogRepo[T]) GetForUpdate(ctx context.Context, entityID id.ID) (T, error) {
	q := r.baseSelect(ctx).
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE")
	return r.scanOne(ctx, q, entityID.String())
}

// FindOne executes a caller-built SELECT and returns a single entity.
func (r *BaseCatalogRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	return r.scanOne(ctx, q, "matching query")
}

// List retrieves entities with filtering and pagination. The total count
// is taken before limit/offset so clients can page.
func (r *BaseCatalogRepo[T]) List(ctx context.Context, listFilter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  listFilter.Limit,
		Offset: listFilter.Offset,
	}

	q := r.baseSelect(ctx)

	if !listFilter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if listFilter.Search != "" {
		pattern := "%" + listFilter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}
	if len(listFilter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": listFilter.IDs})
	}
	if listFilter.ParentID != nil {
		q = q.Where(squirrel.Eq{"parent_id": *listFilter.ParentID})
	}
	if listFilter.IsFolder != nil {
		q = q.Where(squirrel.Eq{"is_folder": *listFilter.IsFolder})
	}

	var err error
	q, err = r.applyAdvancedFilters(q, listFilter.AdvancedFilters)
	if err != nil {
		return domain.ListResult[T]{}, err
	}

	countSQL, countArgs, err := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(listFilter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if listFilter.Limit > 0 {
		q = q.Limit(uint64(listFilter.Limit))
	}
	if listFilter.Offset > 0 {
		q = q.Offset(uint64(listFilter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// hierarchyCondition builds an id IN/NOT IN subtree clause rooted at the
// given value.
func (r *BaseCatalogRepo[T]) hierarchyCondition(negate bool, value any) squirrel.Sqlizer {
	op := "IN"
	if negate {
		op = "NOT IN"
	}
	cteSQL := fmt.Sprintf(`
		id %s (
			WITH RECURSIVE hierarchy AS (
				SELECT id FROM %s WHERE id = ?
				UNION ALL
				SELECT t.id FROM %s t JOIN hierarchy h ON t.parent_id = h.id
			)
			SELECT id FROM hierarchy
		)
	`, op, r.tableName, r.tableName)
	return squirrel.Expr(cteSQL, value)
}

// applyAdvancedFilters translates filter items into WHERE clauses.
// Field names are checked against the column whitelist first; an unknown
// field is rejected, never interpolated.
func (r *BaseCatalogRepo[T]) applyAdvancedFilters(q squirrel.SelectBuilder, items []filter.Item) (squirrel.SelectBuilder, error) {
	validCols := make(map[string]bool, len(r.selectCols)+2)
	for _, col := range r.selectCols {
		validCols[col] = true
	}
	validCols["id"] = true
	validCols["parent_id"] = true

	for _, item := range items {
		if !validCols[item.Field] {
			return q, fmt.Errorf("invalid filter column: %s", item.Field)
		}

		switch item.Operator {
		case filter.Equal, filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual, filter.NotInList:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		case filter.Contains:
			q = q.Where(squirrel.ILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.NotContains:
			q = q.Where(squirrel.NotILike{item.Field: fmt.Sprintf("%%%v%%", item.Value)})
		case filter.InHierarchy:
			q = q.Where(r.hierarchyCondition(false, item.Value))
		case filter.NotInHierarchy:
			q = q.Where(r.hierarchyCondition(true, item.Value))
		}
	}

	return q, nil
}

// existsWhere runs a SELECT 1 probe against the table.
func (r *BaseCatalogRepo[T]) existsWhere(ctx context.Context, conds ...squirrel.Sqlizer) (bool, error) {
	q := r.Builder().Select("1").From(r.tableName).Limit(1)
	for _, cond := range conds {
		q = q.Where(cond)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.getTxManager(ctx).GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", r.tableName, err)
	}
	return true, nil
}

// Exists checks if an entity row exists, deleted or not.
func (r *BaseCatalogRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return r.existsWhere(ctx, squirrel.Eq{"id": entityID})
}

// ExistsByCode checks if an undeleted entity with the code exists.
func (r *BaseCatalogRepo[T]) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.existsWhere(ctx,
		squirrel.Eq{"code": code},
		squirrel.Eq{"deletion_mark": false},
	)
}

// Delete removes the row physically. Rows referenced by documents are
// protected by foreign keys; that violation surfaces as a Conflict so
// the API can tell the client to use the deletion mark instead.
func (r *BaseCatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	sql, args, err := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewConflict("cannot delete: the record is referenced by documents or other records").
				WithDetail("entity", r.tableName).
				WithDetail("id", entityID.String()).
				WithCause(err)
		}
		return fmt.Errorf("execute delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// SetDeletionMark sets or clears the deletion mark (soft delete).
func (r *BaseCatalogRepo[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	sql, args, err := r.Builder().
		Update(r.tableName).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.getTxManager(ctx).GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// GetTree returns the subtree under rootID (the whole forest when nil),
// breadth-first so parents land before their children.
func (r *BaseCatalogRepo[T]) GetTree(ctx context.Context, rootID *id.ID) ([]T, error) {
	var items []T

	rootCond := "parent_id IS NULL"
	var args []any
	if rootID != nil {
		rootCond = "parent_id = $1"
		args = []any{*rootID}
	}

	cteSQL := fmt.Sprintf(`
		WITH RECURSIVE tree AS (
			SELECT *, 0 as level
			FROM %s
			WHERE %s AND deletion_mark = false

			UNION ALL

			SELECT c.*, t.level + 1
			FROM %s c
			INNER JOIN tree t ON c.parent_id = t.id
			WHERE c.deletion_mark = false
		)
		SELECT %s FROM tree
		ORDER BY level, name
	`, r.tableName, rootCond, r.tableName, strings.Join(r.selectCols, ", "))

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, cteSQL, args...); err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}

	return items, nil
}

// GetPath walks parent links from the entity up to its root and returns
// the chain root-first.
func (r *BaseCatalogRepo[T]) GetPath(ctx context.Context, entityID id.ID) ([]T, error) {
	var items []T

	cteSQL := fmt.Sprintf(`
		WITH RECURSIVE path AS (
			SELECT *, 0 as level
			FROM %s
			WHERE id = $1

			UNION ALL

			SELECT c.*, p.level + 1
			FROM %s c
			INNER JOIN path p ON c.id = p.parent_id
		)
		SELECT %s FROM path
		ORDER BY level DESC
	`, r.tableName, r.tableName, strings.Join(r.selectCols, ", "))

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, cteSQL, entityID); err != nil {
		return nil, fmt.Errorf("get path: %w", err)
	}

	return items, nil
}

// parseOrderBy validates an orderBy value against the column whitelist.
// A leading "-" sorts descending.
func (r *BaseCatalogRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "name ASC", nil
	}

	allowed := make(map[string]struct{}, len(r.selectCols)+5)
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}
	for _, col := range []string{"id", "code", "name", "created_at", "updated_at"} {
		allowed[col] = struct{}{}
	}

	direction := "ASC"
	field := orderBy
	switch {
	case strings.HasPrefix(orderBy, "-"):
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	case strings.HasPrefix(orderBy, "+"):
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}
