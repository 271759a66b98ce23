package catalog_repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/domain/filter"
)

func testRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "col1"}, func() any { return nil })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := testRepo()
	ctx := context.Background()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Greater",
			item:     filter.Item{Field: "col1", Operator: filter.Greater, Value: 10},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 > $1",
			wantArgs: []any{10},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "col1", Operator: filter.Less, Value: 5},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 < $1",
			wantArgs: []any{5},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "col1", Operator: filter.Contains, Value: "abc"},
			wantSQL:  "SELECT id, col1 FROM test_table WHERE col1 ILIKE $1",
			wantArgs: []any{"%abc%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(ctx), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := testRepo()

	_, err := repo.applyAdvancedFilters(
		repo.baseSelect(context.Background()),
		[]filter.Item{{Field: "evil; DROP TABLE", Operator: filter.Equal, Value: 1}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter column")
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	orderBy, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", orderBy)

	orderBy, err = repo.parseOrderBy("-col1")
	require.NoError(t, err)
	assert.Equal(t, "col1 DESC", orderBy)

	_, err = repo.parseOrderBy("nope")
	require.Error(t, err)
}
