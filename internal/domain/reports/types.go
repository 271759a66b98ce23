// Package reports provides report generation services.
package reports

import (
	"time"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

// --- Stock Balance Report ---

// StockBalanceReportFilter defines filter for stock balance report.
type StockBalanceReportFilter struct {
	// Filters
	WarehouseIDs []id.ID
	ProductIDs   []id.ID
	Category     string
	Location     string

	// Exclude zero balances
	ExcludeZero bool

	// Pagination
	Limit  int
	Offset int
}

// StockBalanceReportItem represents a single row in stock balance report.
type StockBalanceReportItem struct {
	WarehouseID   id.ID          `json:"warehouseId"`
	WarehouseName string         `json:"warehouseName"`
	ProductID     id.ID          `json:"productId"`
	ProductName   string         `json:"productName"`
	ProductSKU    string         `json:"productSku"`
	Category      string         `json:"category,omitempty"`
	Location      string         `json:"location"`
	Quantity      types.Quantity `json:"quantity"`
	Reserved      types.Quantity `json:"reserved"`
}

// StockBalanceReport represents the full stock balance report.
type StockBalanceReport struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Items       []StockBalanceReportItem `json:"items"`
	TotalItems  int                      `json:"totalItems"`

	// Summary
	TotalQuantity types.Quantity `json:"totalQuantity"`
}

// --- Stock Turnover Report ---

// StockTurnoverReportFilter defines filter for stock turnover report.
type StockTurnoverReportFilter struct {
	// Period (required)
	FromDate time.Time
	ToDate   time.Time

	// Filters
	WarehouseIDs []id.ID
	ProductIDs   []id.ID

	// Pagination
	Limit  int
	Offset int
}

// StockTurnoverReportItem represents a single row in turnover report.
type StockTurnoverReportItem struct {
	WarehouseID   id.ID          `json:"warehouseId,omitempty"`
	WarehouseName string         `json:"warehouseName,omitempty"`
	ProductID     id.ID          `json:"productId,omitempty"`
	ProductName   string         `json:"productName,omitempty"`
	ProductSKU    string         `json:"productSku,omitempty"`
	Inbound       types.Quantity `json:"inbound"`
	Outbound      types.Quantity `json:"outbound"`
	Net           types.Quantity `json:"net"`
}

// StockTurnoverReport represents the full turnover report.
type StockTurnoverReport struct {
	FromDate   time.Time                 `json:"fromDate"`
	ToDate     time.Time                 `json:"toDate"`
	Items      []StockTurnoverReportItem `json:"items"`
	TotalItems int                       `json:"totalItems"`

	// Summary totals
	TotalInbound  types.Quantity `json:"totalInbound"`
	TotalOutbound types.Quantity `json:"totalOutbound"`
}

// --- Document Journal ---

// DocumentJournalFilter defines filter for the cross-type document journal.
type DocumentJournalFilter struct {
	// Period
	FromDate *time.Time
	ToDate   *time.Time

	// Document types filter (receipt, delivery, transfer, adjustment)
	DocumentTypes []entity.MoveType

	// Status filter
	Statuses []entity.DocumentStatus

	// Search by reference
	ReferenceContains string

	// Filters by references
	WarehouseIDs []id.ID

	// Sorting
	SortBy    string // "date", "reference", "type"
	SortOrder string // "asc", "desc"

	// Pagination
	Limit  int
	Offset int
}

// DocumentJournalItem represents a document in the journal.
type DocumentJournalItem struct {
	ID           id.ID                 `json:"id"`
	DocumentType entity.MoveType       `json:"documentType"`
	Reference    string                `json:"reference"`
	Date         time.Time             `json:"date"`
	Status       entity.DocumentStatus `json:"status"`

	// Counterparty info (supplier or customer, depending on type)
	Counterparty string `json:"counterparty,omitempty"`

	// Warehouse info
	WarehouseID   *id.ID `json:"warehouseId,omitempty"`
	WarehouseName string `json:"warehouseName,omitempty"`

	// Totals
	TotalQuantity types.Quantity `json:"totalQuantity"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentJournal represents the document journal result.
type DocumentJournal struct {
	Items      []DocumentJournalItem `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`

	// Summary by document type
	Summary []DocumentTypeSummary `json:"summary,omitempty"`
}

// DocumentTypeSummary provides counts by document type.
type DocumentTypeSummary struct {
	DocumentType entity.MoveType `json:"documentType"`
	Count        int             `json:"count"`
	DoneCount    int             `json:"doneCount"`
	OpenCount    int             `json:"openCount"`
}

// --- Dashboard ---

// Dashboard aggregates the headline numbers for the overview screen.
type Dashboard struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// Catalog counts
	TotalProducts   int `json:"totalProducts"`
	TotalWarehouses int `json:"totalWarehouses"`

	// Stock health
	BelowReorderPoint int            `json:"belowReorderPoint"`
	TotalOnHand       types.Quantity `json:"totalOnHand"`

	// Open documents per type (draft, waiting, ready)
	OpenDocuments []DocumentTypeSummary `json:"openDocuments"`

	// Latest ledger activity
	RecentMoves []entity.StockMove `json:"recentMoves"`
}
