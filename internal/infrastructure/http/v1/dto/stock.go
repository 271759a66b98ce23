package dto

import (
	"time"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/registers/stock"
)

// --- Response DTOs for the Stock Register ---

// StockLevelResponse represents a cached stock level in API responses.
type StockLevelResponse struct {
	WarehouseID    string         `json:"warehouseId"`
	ProductID      string         `json:"productId"`
	Location       string         `json:"location"`
	Quantity       types.Quantity `json:"quantity"`
	Reserved       types.Quantity `json:"reserved"`
	LastMovementAt *time.Time     `json:"lastMovementAt,omitempty"`
}

// FromStockLevel converts entity to response DTO.
// A zero-value LastMovementAt renders as null instead of "0001-01-01".
func FromStockLevel(l entity.StockLevel) StockLevelResponse {
	var lastMovement *time.Time
	if !l.LastMovementAt.IsZero() {
		val := l.LastMovementAt
		lastMovement = &val
	}

	return StockLevelResponse{
		WarehouseID:    l.WarehouseID.String(),
		ProductID:      l.ProductID.String(),
		Location:       l.Location,
		Quantity:       l.Quantity,
		Reserved:       l.Reserved,
		LastMovementAt: lastMovement,
	}
}

// StockLevelListResponse represents a list of stock levels.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
}

// StockMoveResponse represents a ledger entry in API responses.
type StockMoveResponse struct {
	Position     int64          `json:"position"`
	LineID       string         `json:"lineId"`
	DocumentID   string         `json:"documentId"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	Reference    string         `json:"reference"`
	WarehouseID  string         `json:"warehouseId"`
	ProductID    string         `json:"productId"`
	ProductSKU   string         `json:"productSku"`
	FromLocation *string        `json:"fromLocation,omitempty"`
	ToLocation   string         `json:"toLocation"`
	Quantity     types.Quantity `json:"quantity"`
	UserID       string         `json:"userId,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// FromStockMove converts entity to response DTO.
func FromStockMove(m entity.StockMove) StockMoveResponse {
	return StockMoveResponse{
		Position:     m.Position,
		LineID:       m.LineID.String(),
		DocumentID:   m.DocumentID.String(),
		Type:         string(m.Type),
		Status:       string(m.Status),
		Reference:    m.Reference,
		WarehouseID:  m.WarehouseID.String(),
		ProductID:    m.ProductID.String(),
		ProductSKU:   m.ProductSKU,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Quantity:     m.Quantity,
		UserID:       m.UserID,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

// StockMoveListResponse represents a page of ledger entries.
type StockMoveListResponse struct {
	Items      []StockMoveResponse `json:"items"`
	TotalCount int64               `json:"totalCount"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// StockTurnoverResponse represents inbound/outbound totals for a period.
type StockTurnoverResponse struct {
	WarehouseID string         `json:"warehouseId,omitempty"`
	ProductID   string         `json:"productId,omitempty"`
	Inbound     types.Quantity `json:"inbound"`
	Outbound    types.Quantity `json:"outbound"`
	Net         types.Quantity `json:"net"`
}

// FromStockTurnover converts domain turnover to response DTO.
func FromStockTurnover(t stock.Turnover) StockTurnoverResponse {
	resp := StockTurnoverResponse{
		Inbound:  t.Inbound,
		Outbound: t.Outbound,
		Net:      t.Net,
	}
	if !id.IsNil(t.WarehouseID) {
		resp.WarehouseID = t.WarehouseID.String()
	}
	if !id.IsNil(t.ProductID) {
		resp.ProductID = t.ProductID.String()
	}
	return resp
}

// ProductAvailabilityResponse is the on-hand summary for one product.
type ProductAvailabilityResponse struct {
	ProductID string               `json:"productId"`
	OnHand    types.Quantity       `json:"onHand"`
	Levels    []StockLevelResponse `json:"levels"`
}
