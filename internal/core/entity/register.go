// Package entity provides core domain entities.
package entity

import (
	"time"

	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

// MoveType identifies the document kind that produced a ledger entry.
type MoveType string

const (
	MoveTypeReceipt    MoveType = "receipt"
	MoveTypeDelivery   MoveType = "delivery"
	MoveTypeTransfer   MoveType = "transfer"
	MoveTypeAdjustment MoveType = "adjustment"
)

// IsValid reports whether t is a known move type.
func (t MoveType) IsValid() bool {
	switch t {
	case MoveTypeReceipt, MoveTypeDelivery, MoveTypeTransfer, MoveTypeAdjustment:
		return true
	}
	return false
}

// MoveStatus is the status of a ledger entry. Entries are written only
// when a document completes, so the ledger holds done entries.
type MoveStatus string

const (
	MoveStatusDone MoveStatus = "done"
)

// LocationOut is the synthetic sink for goods leaving the warehouse.
// It never accumulates stock.
const LocationOut = "OUT"

// StockMove is one immutable entry in the stock ledger.
// Entries are append-only: never updated, never deleted.
type StockMove struct {
	// LineID is the unique identifier for this entry (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// Position is the append sequence (bigserial); query order follows it
	Position int64 `db:"position" json:"-"`

	// DocumentID is the document whose validation wrote this entry
	DocumentID id.ID `db:"document_id" json:"documentId"`

	// Type mirrors the document kind (receipt, delivery, transfer, adjustment)
	Type MoveType `db:"type" json:"type"`

	// Status of the entry; always done for ledger rows
	Status MoveStatus `db:"status" json:"status"`

	// Reference is shared by all entries of one validation (e.g. REC-000042)
	Reference string `db:"reference" json:"reference"`

	// Dimensions
	WarehouseID id.ID  `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID  `db:"product_id" json:"productId"`
	ProductSKU  string `db:"product_sku" json:"productSku"`

	// FromLocation is set for outbound and transfer entries
	FromLocation *string `db:"from_location" json:"fromLocation,omitempty"`

	// ToLocation is the destination bin, or OUT for goods leaving stock
	ToLocation string `db:"to_location" json:"toLocation"`

	// Quantity is signed: positive adds stock, negative removes it
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// UserID is the acting user recorded at validation time
	UserID string `db:"user_id" json:"userId"`

	// Notes carries per-entry context (e.g. adjustment reason)
	Notes string `db:"notes" json:"notes,omitempty"`

	// CreatedAt is when the entry was written
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}

// NewStockMove creates a ledger entry for a validated document line.
func NewStockMove(
	documentID id.ID,
	moveType MoveType,
	reference string,
	warehouseID, productID id.ID,
	productSKU string,
	quantity types.Quantity,
) StockMove {
	return StockMove{
		LineID:      id.New(),
		DocumentID:  documentID,
		Type:        moveType,
		Status:      MoveStatusDone,
		Reference:   reference,
		WarehouseID: warehouseID,
		ProductID:   productID,
		ProductSKU:  productSKU,
		Quantity:    quantity,
		CreatedAt:   time.Now().UTC(),
	}
}

// WithRoute sets the source and destination locations.
func (m StockMove) WithRoute(from *string, to string) StockMove {
	m.FromLocation = from
	m.ToLocation = to
	return m
}

// WithNotes attaches a note to the entry.
func (m StockMove) WithNotes(notes string) StockMove {
	m.Notes = notes
	return m
}

// IsInbound reports whether the entry adds stock.
func (m *StockMove) IsInbound() bool {
	return m.Quantity.IsPositive()
}

// EffectiveLocation is the bin whose cached level this entry changes:
// the destination for inbound entries, the source (when set) for outbound.
func (m *StockMove) EffectiveLocation() string {
	if m.Quantity.IsNegative() && m.FromLocation != nil && *m.FromLocation != "" {
		return *m.FromLocation
	}
	return m.ToLocation
}

// StockLevel is the cached quantity for one product at one bin.
// Maintained in the same transaction as ledger writes; never negative.
type StockLevel struct {
	// Dimensions
	WarehouseID id.ID  `db:"warehouse_id" json:"warehouseId"`
	ProductID   id.ID  `db:"product_id" json:"productId"`
	Location    string `db:"location" json:"location"`

	// Balances
	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Reserved types.Quantity `db:"reserved" json:"reserved"`

	// Metadata
	LastMovementAt time.Time `db:"last_movement_at" json:"lastMovementAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Available returns quantity minus reservations.
func (l *StockLevel) Available() types.Quantity {
	return l.Quantity - l.Reserved
}
