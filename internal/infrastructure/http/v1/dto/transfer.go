package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/documents/transfer"
)

// --- Request DTOs ---

// TransferLineRequest is one line of a stock transfer.
type TransferLineRequest struct {
	ProductID    string         `json:"productId" binding:"required"`
	ProductSKU   string         `json:"productSku"`
	Quantity     types.Quantity `json:"quantity"`
	FromLocation string         `json:"fromLocation" binding:"required"`
	ToLocation   string         `json:"toLocation" binding:"required"`
}

// CreateTransferRequest is the request body for creating a transfer.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"fromWarehouseId" binding:"required"`
	ToWarehouseID   string                `json:"toWarehouseId" binding:"required"`
	Date            *time.Time            `json:"date"`
	Notes           string                `json:"notes"`
	Lines           []TransferLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateTransferRequest) ToEntity() (*transfer.Transfer, error) {
	fromID, err := id.Parse(r.FromWarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid fromWarehouseId format")
	}
	toID, err := id.Parse(r.ToWarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid toWarehouseId format")
	}

	doc := transfer.NewTransfer(fromID, toID)
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
		doc.AddLine(productID, line.ProductSKU, line.Quantity, line.FromLocation, line.ToLocation)
	}

	return doc, nil
}

// UpdateTransferRequest is the request body for updating a transfer.
type UpdateTransferRequest struct {
	Date    *time.Time            `json:"date"`
	Notes   string                `json:"notes"`
	Lines   []TransferLineRequest `json:"lines"`
	Version int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced wholesale.
func (r *UpdateTransferRequest) ApplyTo(doc *transfer.Transfer) error {
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
		doc.AddLine(productID, line.ProductSKU, line.Quantity, line.FromLocation, line.ToLocation)
	}

	return nil
}

// --- Response DTOs ---

// TransferLineResponse is one line of a transfer in API responses.
type TransferLineResponse struct {
	LineID       string         `json:"lineId"`
	LineNo       int            `json:"lineNo"`
	ProductID    string         `json:"productId"`
	ProductSKU   string         `json:"productSku"`
	Quantity     types.Quantity `json:"quantity"`
	FromLocation string         `json:"fromLocation"`
	ToLocation   string         `json:"toLocation"`
}

// TransferResponse is the response body for a transfer.
type TransferResponse struct {
	DocumentResponse
	FromWarehouseID string                 `json:"fromWarehouseId"`
	ToWarehouseID   string                 `json:"toWarehouseId"`
	TotalQuantity   types.Quantity         `json:"totalQuantity"`
	Lines           []TransferLineResponse `json:"lines"`
}

// FromTransfer creates response DTO from domain entity.
func FromTransfer(doc *transfer.Transfer) *TransferResponse {
	lines := make([]TransferLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = TransferLineResponse{
			LineID:       line.LineID.String(),
			LineNo:       line.LineNo,
			ProductID:    line.ProductID.String(),
			ProductSKU:   line.ProductSKU,
			Quantity:     line.Quantity,
			FromLocation: line.FromLocation,
			ToLocation:   line.ToLocation,
		}
	}

	return &TransferResponse{
		DocumentResponse: FromDocument(doc.Document),
		FromWarehouseID:  doc.FromWarehouseID.String(),
		ToWarehouseID:    doc.ToWarehouseID.String(),
		TotalQuantity:    doc.TotalQuantity,
		Lines:            lines,
	}
}
