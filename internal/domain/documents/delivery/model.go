// Package delivery provides the Delivery document: outgoing goods shipped
// from a warehouse to a customer.
package delivery

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/validation"
)

// Delivery represents an outgoing goods document. Validating it lowers
// stock at each line's pick location by the packed quantity.
type Delivery struct {
	entity.Document
	entity.WarehouseAware

	// Customer name (free text, not a catalog reference)
	Customer string `db:"customer" json:"customer"`

	// Carrier handling the shipment
	Carrier *string `db:"carrier" json:"carrier,omitempty"`

	// ShipDate is the planned shipping date
	ShipDate *time.Time `db:"ship_date" json:"shipDate,omitempty"`

	// Totals (calculated from lines)
	TotalOrdered types.Quantity `db:"total_ordered" json:"totalOrdered"`
	TotalPicked  types.Quantity `db:"total_picked" json:"totalPicked"`
	TotalPacked  types.Quantity `db:"total_packed" json:"totalPacked"`

	// Table part: shipped goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one product on the delivery.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID  id.ID  `db:"product_id" json:"productId"`
	ProductSKU string `db:"product_sku" json:"productSku"`

	// OrderedQty is what the customer asked for, PickedQty what was
	// pulled from the bin, PackedQty what actually ships. The ledger
	// entry is derived from PackedQty.
	OrderedQty types.Quantity `db:"ordered_qty" json:"orderedQty"`
	PickedQty  types.Quantity `db:"picked_qty" json:"pickedQty"`
	PackedQty  types.Quantity `db:"packed_qty" json:"packedQty"`

	// Location is the bin the goods are picked from
	Location string `db:"location" json:"location"`
}

// NewDelivery creates a new delivery document in draft.
func NewDelivery(warehouseID id.ID, customer string) *Delivery {
	return &Delivery{
		Document:       entity.NewDocument(),
		WarehouseAware: entity.WarehouseAware{WarehouseID: warehouseID},
		Customer:       customer,
		Lines:          make([]Line, 0),
	}
}

// AddLine adds a line to the delivery and recalculates totals.
func (d *Delivery) AddLine(productID id.ID, productSKU string, orderedQty, pickedQty, packedQty types.Quantity, location string) {
	line := Line{
		LineID:     id.New(),
		LineNo:     len(d.Lines) + 1,
		ProductID:  productID,
		ProductSKU: productSKU,
		OrderedQty: orderedQty,
		PickedQty:  pickedQty,
		PackedQty:  packedQty,
		Location:   location,
	}

	d.Lines = append(d.Lines, line)
	d.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (d *Delivery) recalculateTotals() {
	d.TotalOrdered = 0
	d.TotalPicked = 0
	d.TotalPacked = 0

	for _, line := range d.Lines {
		d.TotalOrdered = d.TotalOrdered.Add(line.OrderedQty)
		d.TotalPicked = d.TotalPicked.Add(line.PickedQty)
		d.TotalPacked = d.TotalPacked.Add(line.PackedQty)
	}
}

// Validate implements entity.Validatable.
func (d *Delivery) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if err := d.ValidateWarehouse(ctx); err != nil {
		return err
	}

	if d.Customer == "" {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customer")
	}

	for i, line := range d.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.OrderedQty.IsNegative() || line.PickedQty.IsNegative() || line.PackedQty.IsNegative() {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// CanValidate checks completion rules: at least one line, every line
// packed and assigned a pick location. Stock sufficiency is checked by
// the ledger projection inside the validation transaction.
func (d *Delivery) CanValidate(ctx context.Context) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range d.Lines {
		if !line.PackedQty.IsPositive() {
			return apperror.NewValidation("packed quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Location == "" {
			return apperror.NewValidation("location is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetMoveType returns the ledger entry type for this document.
func (d *Delivery) GetMoveType() entity.MoveType {
	return entity.MoveTypeDelivery
}

// GenerateMoves derives one outbound ledger entry per line.
// Quantities are negative; goods route from the pick bin to the OUT sink.
func (d *Delivery) GenerateMoves(ctx context.Context) ([]entity.StockMove, error) {
	entries := make([]entity.StockMove, 0, len(d.Lines))

	for i := range d.Lines {
		line := &d.Lines[i]
		entry := entity.NewStockMove(
			d.ID,
			entity.MoveTypeDelivery,
			d.Reference,
			d.WarehouseID,
			line.ProductID,
			line.ProductSKU,
			line.PackedQty.Neg(),
		).WithRoute(&line.Location, entity.LocationOut)

		entries = append(entries, entry)
	}

	return entries, nil
}

// Ensure interface compliance at compile time.
var _ validation.Document = (*Delivery)(nil)
