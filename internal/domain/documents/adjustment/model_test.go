package adjustment

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

func TestAdjustment_AddLineDerivesDifference(t *testing.T) {
	doc := NewAdjustment(id.New(), ReasonCycleCount)
	doc.AddLine(id.New(), "SKU-1", "A-01", qty(100), qty(97))
	doc.AddLine(id.New(), "SKU-2", "A-02", qty(20), qty(25))

	assert.Equal(t, qty(3).Neg(), doc.Lines[0].Difference)
	assert.Equal(t, qty(5), doc.Lines[1].Difference)
}

func TestAdjustment_SetCountedQuantity(t *testing.T) {
	doc := NewAdjustment(id.New(), ReasonCycleCount)
	doc.AddLine(id.New(), "SKU-1", "A-01", qty(100), 0)

	require.NoError(t, doc.SetCountedQuantity(doc.Lines[0].LineID, qty(95)))
	assert.Equal(t, qty(5).Neg(), doc.Lines[0].Difference)

	require.Error(t, doc.SetCountedQuantity(id.New(), qty(1)))
}

func TestAdjustment_Validate(t *testing.T) {
	ctx := context.Background()

	doc := NewAdjustment(id.New(), "")
	require.Error(t, doc.Validate(ctx), "missing reason")

	doc = NewAdjustment(id.New(), ReasonDamage)
	doc.AddLine(id.New(), "SKU-1", "A-01", qty(10), qty(10).Neg())
	require.Error(t, doc.Validate(ctx), "negative count")
}

func TestAdjustment_GenerateMoves(t *testing.T) {
	doc := NewAdjustment(id.New(), ReasonShrinkage)
	doc.Reference = "ADJ-000011"
	doc.AddLine(id.New(), "SKU-1", "A-01", qty(100), qty(97))
	doc.AddLine(id.New(), "SKU-2", "A-02", qty(20), qty(25))
	doc.AddLine(id.New(), "SKU-3", "A-03", qty(50), qty(50))

	entries, err := doc.GenerateMoves(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3, "one entry per counted line, clean counts included")

	assert.Equal(t, qty(3).Neg(), entries[0].Quantity)
	assert.Equal(t, qty(5), entries[1].Quantity)
	assert.True(t, entries[2].Quantity.IsZero())

	for _, e := range entries {
		assert.Equal(t, entity.MoveTypeAdjustment, e.Type)
		assert.Equal(t, "ADJ-000011", e.Reference)
		assert.Equal(t, ReasonShrinkage, e.Notes)
	}
}
