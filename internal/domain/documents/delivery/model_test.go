package delivery

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

func TestDelivery_CanValidate(t *testing.T) {
	ctx := context.Background()

	doc := NewDelivery(id.New(), "Globex Corp")
	require.Error(t, doc.CanValidate(ctx), "no lines")

	doc.AddLine(id.New(), "SKU-1", qty(10), qty(10), 0, "A-01")
	require.Error(t, doc.CanValidate(ctx), "nothing packed")

	doc.Lines[0].PackedQty = qty(10)
	require.NoError(t, doc.CanValidate(ctx))
}

func TestDelivery_TotalsTrackPickStage(t *testing.T) {
	doc := NewDelivery(id.New(), "Globex Corp")
	doc.AddLine(id.New(), "SKU-1", qty(10), qty(9), qty(8), "A-01")
	doc.AddLine(id.New(), "SKU-2", qty(4), qty(4), qty(4), "C-05")

	assert.Equal(t, qty(14), doc.TotalOrdered)
	assert.Equal(t, qty(13), doc.TotalPicked)
	assert.Equal(t, qty(12), doc.TotalPacked)

	doc.Lines[0].PickedQty = qty(1).Neg()
	require.Error(t, doc.Validate(context.Background()), "negative picked quantity")
}

func TestDelivery_GenerateMoves(t *testing.T) {
	doc := NewDelivery(id.New(), "Globex Corp")
	doc.Reference = "DEL-000007"
	doc.AddLine(id.New(), "SKU-1", qty(10), qty(10), qty(10), "A-01")
	doc.AddLine(id.New(), "SKU-2", qty(4), qty(4), qty(3), "C-05")

	entries, err := doc.GenerateMoves(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, entity.MoveTypeDelivery, e.Type)
		assert.Equal(t, "DEL-000007", e.Reference)
		assert.True(t, e.Quantity.IsNegative())
		assert.Equal(t, entity.LocationOut, e.ToLocation)
		require.NotNil(t, e.FromLocation)
	}

	assert.Equal(t, qty(10).Neg(), entries[0].Quantity)
	assert.Equal(t, "A-01", *entries[0].FromLocation)
	assert.Equal(t, "A-01", entries[0].EffectiveLocation())

	assert.Equal(t, qty(3).Neg(), entries[1].Quantity)
	assert.Equal(t, "C-05", *entries[1].FromLocation)
}
