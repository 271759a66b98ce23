package register_repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/id"
)

// Locking a bin that has never seen a movement must first create the row,
// otherwise two concurrent first movements into the same bin both read an
// absent row and the later commit overwrites the earlier delta.
func TestLevelLock_MaterializesMissingRow(t *testing.T) {
	ensure := ensureLevelSQL()

	assert.Contains(t, ensure, "INSERT INTO "+stockLevelsTable)
	assert.Contains(t, ensure, "VALUES ($1, $2, $3, 0, 0, NOW(), NOW())")
	require.Contains(t, ensure,
		"ON CONFLICT (warehouse_id, product_id, location) DO NOTHING",
		"concurrent inserts for the same bin must not fail, only one row may win")
}

func TestLevelLock_TakesRowLock(t *testing.T) {
	lock := lockLevelSQL()

	assert.Contains(t, lock, "FROM "+stockLevelsTable)
	assert.Contains(t, lock, "WHERE warehouse_id = $1 AND product_id = $2 AND location = $3")
	require.True(t, strings.Contains(lock, "FOR UPDATE"),
		"lock query must block a second transaction until the first commits")
}

func TestRecalcScope(t *testing.T) {
	warehouseID, productID := id.New(), id.New()

	conditions, args := recalcScope(nil, nil)
	assert.Equal(t, "TRUE", conditions)
	assert.Empty(t, args)

	conditions, args = recalcScope(&warehouseID, &productID)
	assert.Equal(t, "TRUE AND warehouse_id = $1 AND product_id = $2", conditions)
	assert.Equal(t, []any{warehouseID, productID}, args)

	conditions, args = recalcScope(nil, &productID)
	assert.Equal(t, "TRUE AND product_id = $1", conditions)
	assert.Equal(t, []any{productID}, args)
}

// A rebuild only writes rows the ledger still mentions, so bins whose
// entries were removed must be zeroed up front or they keep stale totals.
func TestRecalculate_ZeroesScopeBeforeRebuild(t *testing.T) {
	reset := resetLevelsSQL("TRUE AND warehouse_id = $1")

	assert.Contains(t, reset, "UPDATE "+stockLevelsTable)
	assert.Contains(t, reset, "SET quantity = 0")
	require.Contains(t, reset, "WHERE TRUE AND warehouse_id = $1",
		"reset must honor the same scope as the rebuild")

	rebuild := rebuildLevelsSQL("TRUE AND warehouse_id = $1")
	assert.Contains(t, rebuild, "FROM "+stockMovesTable)
	assert.Contains(t, rebuild, "ON CONFLICT (warehouse_id, product_id, location) DO UPDATE")
}
