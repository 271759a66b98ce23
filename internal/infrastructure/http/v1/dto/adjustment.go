package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/documents/adjustment"
)

// --- Request DTOs ---

// AdjustmentLineRequest is one counted line of a stock adjustment.
// SystemQty may be omitted; the service snapshots the book quantity then.
type AdjustmentLineRequest struct {
	ProductID  string         `json:"productId" binding:"required"`
	ProductSKU string         `json:"productSku"`
	Location   string         `json:"location" binding:"required"`
	SystemQty  types.Quantity `json:"systemQty"`
	CountedQty types.Quantity `json:"countedQty"`
}

// CreateAdjustmentRequest is the request body for creating an adjustment.
type CreateAdjustmentRequest struct {
	WarehouseID string                  `json:"warehouseId" binding:"required"`
	Reason      string                  `json:"reason" binding:"required"`
	Date        *time.Time              `json:"date"`
	Notes       string                  `json:"notes"`
	Lines       []AdjustmentLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAdjustmentRequest) ToEntity() (*adjustment.Adjustment, error) {
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouseId format")
	}

	doc := adjustment.NewAdjustment(warehouseID, r.Reason)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Notes = r.Notes

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.Location, line.SystemQty, line.CountedQty)
	}

	return doc, nil
}

// UpdateAdjustmentRequest is the request body for updating an adjustment.
type UpdateAdjustmentRequest struct {
	Reason  string                  `json:"reason" binding:"required"`
	Date    *time.Time              `json:"date"`
	Notes   string                  `json:"notes"`
	Lines   []AdjustmentLineRequest `json:"lines"`
	Version int                     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced wholesale.
func (r *UpdateAdjustmentRequest) ApplyTo(doc *adjustment.Adjustment) error {
	doc.Reason = r.Reason
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Notes = r.Notes
	doc.Version = r.Version

	doc.Lines = nil
	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.Location, line.SystemQty, line.CountedQty)
	}

	return nil
}

// --- Response DTOs ---

// AdjustmentLineResponse is one line of an adjustment in API responses.
type AdjustmentLineResponse struct {
	LineID     string         `json:"lineId"`
	LineNo     int            `json:"lineNo"`
	ProductID  string         `json:"productId"`
	ProductSKU string         `json:"productSku"`
	Location   string         `json:"location"`
	SystemQty  types.Quantity `json:"systemQty"`
	CountedQty types.Quantity `json:"countedQty"`
	Difference types.Quantity `json:"difference"`
}

// AdjustmentResponse is the response body for an adjustment.
type AdjustmentResponse struct {
	DocumentResponse
	WarehouseID string                   `json:"warehouseId"`
	Reason      string                   `json:"reason"`
	Lines       []AdjustmentLineResponse `json:"lines"`
}

// FromAdjustment creates response DTO from domain entity.
func FromAdjustment(doc *adjustment.Adjustment) *AdjustmentResponse {
	lines := make([]AdjustmentLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = AdjustmentLineResponse{
			LineID:     line.LineID.String(),
			LineNo:     line.LineNo,
			ProductID:  line.ProductID.String(),
			ProductSKU: line.ProductSKU,
			Location:   line.Location,
			SystemQty:  line.SystemQty,
			CountedQty: line.CountedQty,
			Difference: line.Difference,
		}
	}

	return &AdjustmentResponse{
		DocumentResponse: FromDocument(doc.Document),
		WarehouseID:      doc.WarehouseID.String(),
		Reason:           doc.Reason,
		Lines:            lines,
	}
}
