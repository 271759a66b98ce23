// Package stock provides the stock ledger and cached stock levels.
package stock

import (
	"context"
	"time"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
)

// Repository defines operations for the stock ledger and level cache.
type Repository interface {
	// Ledger operations

	// AppendEntries batch inserts ledger entries (used during validation).
	// Entries are immutable once written.
	AppendEntries(ctx context.Context, entries []entity.StockMove) error

	// GetEntriesByDocument retrieves all entries written for a document
	GetEntriesByDocument(ctx context.Context, documentID id.ID) ([]entity.StockMove, error)

	// ListEntries retrieves entries with filtering, in insertion order
	ListEntries(ctx context.Context, filter LedgerFilter) (domain.ListResult[entity.StockMove], error)

	// Level operations

	// GetLevel returns the cached level for warehouse+product+location.
	// Returns a zero-quantity level if no row exists.
	GetLevel(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error)

	// GetLevelForUpdate returns the level with a row lock for stock control
	GetLevelForUpdate(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error)

	// UpsertLevel writes the cached level (insert or update)
	UpsertLevel(ctx context.Context, level entity.StockLevel) error

	// GetLevelsByWarehouse returns levels for a warehouse
	GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, filter LevelFilter) ([]entity.StockLevel, error)

	// GetLevelsByProduct returns levels across all warehouses for a product
	GetLevelsByProduct(ctx context.Context, productID id.ID) ([]entity.StockLevel, error)

	// Reporting

	// GetTurnover calculates inbound and outbound totals for a period
	GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error)

	// Maintenance

	// RecalculateLevels rebuilds the level cache from the ledger
	RecalculateLevels(ctx context.Context, warehouseID, productID *id.ID) error
}

// LedgerFilter for filtering ledger queries.
// Category is resolved through the product catalog.
type LedgerFilter struct {
	Types       []entity.MoveType
	Statuses    []entity.MoveStatus
	WarehouseID *id.ID
	ProductID   *id.ID
	Category    string
	Reference   string
	FromDate    *time.Time
	ToDate      *time.Time
	Limit       int
	Offset      int
}

// LevelFilter for filtering level queries.
type LevelFilter struct {
	ProductIDs  []id.ID
	Location    string
	ExcludeZero bool
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	WarehouseID *id.ID
	ProductID   *id.ID
	FromDate    time.Time
	ToDate      time.Time
}

// Turnover represents inbound/outbound totals.
type Turnover struct {
	WarehouseID id.ID          `json:"warehouseId,omitempty"`
	ProductID   id.ID          `json:"productId,omitempty"`
	Inbound     types.Quantity `json:"inbound"`
	Outbound    types.Quantity `json:"outbound"`
	Net         types.Quantity `json:"net"`
}
