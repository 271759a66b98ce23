// Package adjustment provides the Adjustment document: a stock count that
// reconciles book quantities with physically counted ones.
package adjustment

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/validation"
)

// Common adjustment reasons. Reason is free text; these cover the usual cases.
const (
	ReasonCycleCount = "cycle count"
	ReasonDamage     = "damage"
	ReasonShrinkage  = "shrinkage"
	ReasonCorrection = "correction"
)

// Adjustment represents a stock count document. Validating it writes one
// ledger entry per line carrying the signed count difference, so the book
// quantity lands exactly on the counted one.
type Adjustment struct {
	entity.Document
	entity.WarehouseAware

	// Reason explains the adjustment; copied onto every ledger entry
	Reason string `db:"reason" json:"reason"`

	// Table part: counted positions
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one counted position.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID  id.ID  `db:"product_id" json:"productId"`
	ProductSKU string `db:"product_sku" json:"productSku"`

	// Location is the counted bin
	Location string `db:"location" json:"location"`

	// SystemQty is the book quantity snapshotted when the line was counted
	SystemQty types.Quantity `db:"system_qty" json:"systemQty"`

	// CountedQty is the physically counted quantity
	CountedQty types.Quantity `db:"counted_qty" json:"countedQty"`

	// Difference is CountedQty minus SystemQty; drives the ledger entry
	Difference types.Quantity `db:"difference" json:"difference"`
}

// NewAdjustment creates a new adjustment document in draft.
func NewAdjustment(warehouseID id.ID, reason string) *Adjustment {
	return &Adjustment{
		Document:       entity.NewDocument(),
		WarehouseAware: entity.WarehouseAware{WarehouseID: warehouseID},
		Reason:         reason,
		Lines:          make([]Line, 0),
	}
}

// AddLine adds a counted position. The difference is derived, never set.
func (a *Adjustment) AddLine(productID id.ID, productSKU, location string, systemQty, countedQty types.Quantity) {
	line := Line{
		LineID:     id.New(),
		LineNo:     len(a.Lines) + 1,
		ProductID:  productID,
		ProductSKU: productSKU,
		Location:   location,
		SystemQty:  systemQty,
		CountedQty: countedQty,
		Difference: countedQty.Sub(systemQty),
	}

	a.Lines = append(a.Lines, line)
}

// SetCountedQuantity records a count for an existing line and rederives
// the difference.
func (a *Adjustment) SetCountedQuantity(lineID id.ID, countedQty types.Quantity) error {
	for i := range a.Lines {
		if a.Lines[i].LineID == lineID {
			a.Lines[i].CountedQty = countedQty
			a.Lines[i].Difference = countedQty.Sub(a.Lines[i].SystemQty)
			return nil
		}
	}
	return apperror.NewNotFound("adjustment line", lineID.String())
}

// Validate implements entity.Validatable.
func (a *Adjustment) Validate(ctx context.Context) error {
	if err := a.Document.Validate(ctx); err != nil {
		return err
	}

	if err := a.ValidateWarehouse(ctx); err != nil {
		return err
	}

	if a.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}

	for i, line := range a.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Location == "" {
			return apperror.NewValidation("location is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.CountedQty.IsNegative() {
			return apperror.NewValidation("counted quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// CanValidate checks completion rules: at least one counted line.
// Zero differences are allowed; a clean count still completes.
func (a *Adjustment) CanValidate(ctx context.Context) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}

	if len(a.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	return nil
}

// GetMoveType returns the ledger entry type for this document.
func (a *Adjustment) GetMoveType() entity.MoveType {
	return entity.MoveTypeAdjustment
}

// GenerateMoves derives one entry per counted line carrying the signed
// difference and the adjustment reason. Lines that counted clean still
// produce an entry, leaving an audit trail of the count itself.
func (a *Adjustment) GenerateMoves(ctx context.Context) ([]entity.StockMove, error) {
	entries := make([]entity.StockMove, 0, len(a.Lines))

	for _, line := range a.Lines {
		entry := entity.NewStockMove(
			a.ID,
			entity.MoveTypeAdjustment,
			a.Reference,
			a.WarehouseID,
			line.ProductID,
			line.ProductSKU,
			line.Difference,
		).WithRoute(nil, line.Location).WithNotes(a.Reason)

		entries = append(entries, entry)
	}

	return entries, nil
}

// Ensure interface compliance at compile time.
var _ validation.Document = (*Adjustment)(nil)
