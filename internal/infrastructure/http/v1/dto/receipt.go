package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/documents/receipt"
)

// --- Request DTOs ---

// ReceiptLineRequest is one line of an inbound receipt.
type ReceiptLineRequest struct {
	ProductID   string         `json:"productId" binding:"required"`
	ProductSKU  string         `json:"productSku"`
	ExpectedQty types.Quantity `json:"expectedQty"`
	ReceivedQty types.Quantity `json:"receivedQty"`
	Location    string         `json:"location"`
}

// CreateReceiptRequest is the request body for creating a receipt.
type CreateReceiptRequest struct {
	WarehouseID  string               `json:"warehouseId" binding:"required"`
	Supplier     string               `json:"supplier" binding:"required"`
	Date         *time.Time           `json:"date"`
	ExpectedDate *time.Time           `json:"expectedDate"`
	Notes        string               `json:"notes"`
	Lines        []ReceiptLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReceiptRequest) ToEntity() (*receipt.Receipt, error) {
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouseId format")
	}

	doc := receipt.NewReceipt(warehouseID, r.Supplier)
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ExpectedDate = r.ExpectedDate
	doc.Notes = r.Notes

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.ExpectedQty, line.ReceivedQty, line.Location)
	}

	return doc, nil
}

// UpdateReceiptRequest is the request body for updating a receipt.
type UpdateReceiptRequest struct {
	Supplier     string               `json:"supplier" binding:"required"`
	Date         *time.Time           `json:"date"`
	ExpectedDate *time.Time           `json:"expectedDate"`
	Notes        string               `json:"notes"`
	Lines        []ReceiptLineRequest `json:"lines"`
	Version      int                  `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced wholesale.
func (r *UpdateReceiptRequest) ApplyTo(doc *receipt.Receipt) error {
	doc.Supplier = r.Supplier
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ExpectedDate = r.ExpectedDate
	doc.Notes = r.Notes
	doc.Version = r.Version

	doc.Lines = nil
	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.ExpectedQty, line.ReceivedQty, line.Location)
	}

	return nil
}

// --- Response DTOs ---

// ReceiptLineResponse is one line of a receipt in API responses.
type ReceiptLineResponse struct {
	LineID      string         `json:"lineId"`
	LineNo      int            `json:"lineNo"`
	ProductID   string         `json:"productId"`
	ProductSKU  string         `json:"productSku"`
	ExpectedQty types.Quantity `json:"expectedQty"`
	ReceivedQty types.Quantity `json:"receivedQty"`
	Location    string         `json:"location"`
}

// ReceiptResponse is the response body for a receipt.
type ReceiptResponse struct {
	DocumentResponse
	WarehouseID   string                `json:"warehouseId"`
	Supplier      string                `json:"supplier"`
	ExpectedDate  *time.Time            `json:"expectedDate,omitempty"`
	TotalExpected types.Quantity        `json:"totalExpected"`
	TotalReceived types.Quantity        `json:"totalReceived"`
	Lines         []ReceiptLineResponse `json:"lines"`
}

// FromReceipt creates response DTO from domain entity.
func FromReceipt(doc *receipt.Receipt) *ReceiptResponse {
	lines := make([]ReceiptLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = ReceiptLineResponse{
			LineID:      line.LineID.String(),
			LineNo:      line.LineNo,
			ProductID:   line.ProductID.String(),
			ProductSKU:  line.ProductSKU,
			ExpectedQty: line.ExpectedQty,
			ReceivedQty: line.ReceivedQty,
			Location:    line.Location,
		}
	}

	return &ReceiptResponse{
		DocumentResponse: FromDocument(doc.Document),
		WarehouseID:      doc.WarehouseID.String(),
		Supplier:         doc.Supplier,
		ExpectedDate:     doc.ExpectedDate,
		TotalExpected:    doc.TotalExpected,
		TotalReceived:    doc.TotalReceived,
		Lines:            lines,
	}
}
