// Package warehouse provides the Warehouse catalog.
// Warehouses are physical sites whose bins (locations) hold stock.
package warehouse

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
)

// WarehouseType defines the type of warehouse.
type WarehouseType string

const (
	TypeMain         WarehouseType = "main"
	TypeDistribution WarehouseType = "distribution"
	TypeRetail       WarehouseType = "retail"
	TypeTransit      WarehouseType = "transit"
)

// Warehouse represents a storage site for goods.
type Warehouse struct {
	entity.Catalog

	// Type defines the warehouse category
	Type WarehouseType `db:"type" json:"type"`

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// IsActive indicates if warehouse is operational
	IsActive bool `db:"is_active" json:"isActive"`

	// IsDefault indicates if this is the default warehouse
	IsDefault bool `db:"is_default" json:"isDefault"`

	// DefaultLocation is the bin used when a document line omits one
	DefaultLocation string `db:"default_location" json:"defaultLocation,omitempty"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(code, name string, whType WarehouseType) *Warehouse {
	return &Warehouse{
		Catalog:  entity.NewCatalog(code, name),
		Type:     whType,
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}

	// Type validation
	if !isValidWarehouseType(w.Type) {
		return apperror.NewValidation("invalid warehouse type").
			WithDetail("field", "type").
			WithDetail("value", string(w.Type))
	}

	return nil
}

// CanMoveStock returns true if warehouse can accept or issue stock.
func (w *Warehouse) CanMoveStock() bool {
	return w.IsActive && !w.IsFolder
}

// --- Validation Helpers ---

func isValidWarehouseType(t WarehouseType) bool {
	switch t {
	case TypeMain, TypeDistribution, TypeRetail, TypeTransit:
		return true
	}
	return false
}
