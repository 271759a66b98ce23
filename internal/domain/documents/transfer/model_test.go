package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestTransfer_CanValidate(t *testing.T) {
	ctx := context.Background()
	warehouseID := id.New()

	doc := NewTransfer(warehouseID, warehouseID)
	require.Error(t, doc.CanValidate(ctx), "no lines")

	doc.AddLine(id.New(), "SKU-1", qty(5), "A-01", "A-01")
	require.Error(t, doc.CanValidate(ctx), "same bin within one warehouse")

	doc.Lines[0].ToLocation = "B-02"
	require.NoError(t, doc.CanValidate(ctx))
}

func TestTransfer_CrossWarehouseSameBinAllowed(t *testing.T) {
	doc := NewTransfer(id.New(), id.New())
	doc.AddLine(id.New(), "SKU-1", qty(5), "A-01", "A-01")

	require.NoError(t, doc.CanValidate(context.Background()))
}

func TestTransfer_GenerateMovesBalancedPairs(t *testing.T) {
	fromWH, toWH := id.New(), id.New()
	doc := NewTransfer(fromWH, toWH)
	doc.Reference = "TRF-000003"
	doc.AddLine(id.New(), "SKU-1", qty(12), "A-01", "B-02")
	doc.AddLine(id.New(), "SKU-2", qty(7), "A-03", "B-04")

	entries, err := doc.GenerateMoves(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4, "two entries per line")

	for i := 0; i < len(entries); i += 2 {
		out, in := entries[i], entries[i+1]

		assert.Equal(t, fromWH, out.WarehouseID)
		assert.True(t, out.Quantity.IsNegative())
		assert.Equal(t, toWH, in.WarehouseID)
		assert.True(t, in.Quantity.IsPositive())

		// The pair balances to zero
		assert.True(t, out.Quantity.Add(in.Quantity).IsZero())
		assert.Equal(t, out.Reference, in.Reference)
		assert.Equal(t, entity.MoveTypeTransfer, out.Type)
	}

	assert.Equal(t, "A-01", entries[0].EffectiveLocation())
	assert.Equal(t, "B-02", entries[1].EffectiveLocation())
}
