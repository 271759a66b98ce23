package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/documents/delivery"
)

// --- Request DTOs ---

// DeliveryLineRequest is one line of an outbound delivery.
type DeliveryLineRequest struct {
	ProductID  string         `json:"productId" binding:"required"`
	ProductSKU string         `json:"productSku"`
	OrderedQty types.Quantity `json:"orderedQty"`
	PickedQty  types.Quantity `json:"pickedQty"`
	PackedQty  types.Quantity `json:"packedQty"`
	Location   string         `json:"location"`
}

// CreateDeliveryRequest is the request body for creating a delivery.
type CreateDeliveryRequest struct {
	WarehouseID string                `json:"warehouseId" binding:"required"`
	Customer    string                `json:"customer" binding:"required"`
	Carrier     *string               `json:"carrier"`
	Date        *time.Time            `json:"date"`
	ShipDate    *time.Time            `json:"shipDate"`
	Notes       string                `json:"notes"`
	Lines       []DeliveryLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDeliveryRequest) ToEntity() (*delivery.Delivery, error) {
	warehouseID, err := id.Parse(r.WarehouseID)
	if err != nil {
		return nil, apperror.NewValidation("invalid warehouseId format")
	}

	doc := delivery.NewDelivery(warehouseID, r.Customer)
	doc.Carrier = r.Carrier
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ShipDate = r.ShipDate
	doc.Notes = r.Notes

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.OrderedQty, line.PickedQty, line.PackedQty, line.Location)
	}

	return doc, nil
}

// UpdateDeliveryRequest is the request body for updating a delivery.
type UpdateDeliveryRequest struct {
	Customer string                `json:"customer" binding:"required"`
	Carrier  *string               `json:"carrier"`
	Date     *time.Time            `json:"date"`
	ShipDate *time.Time            `json:"shipDate"`
	Notes    string                `json:"notes"`
	Lines    []DeliveryLineRequest `json:"lines"`
	Version  int                   `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced wholesale.
func (r *UpdateDeliveryRequest) ApplyTo(doc *delivery.Delivery) error {
	doc.Customer = r.Customer
	doc.Carrier = r.Carrier
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.ShipDate = r.ShipDate
	doc.Notes = r.Notes
	doc.Version = r.Version

	doc.Lines = nil
	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return apperror.NewValidation("invalid productId format").
				WithDetail("line", i+1)
		}
		doc.AddLine(productID, line.ProductSKU, line.OrderedQty, line.PickedQty, line.PackedQty, line.Location)
	}

	return nil
}

// --- Response DTOs ---

// DeliveryLineResponse is one line of a delivery in API responses.
type DeliveryLineResponse struct {
	LineID     string         `json:"lineId"`
	LineNo     int            `json:"lineNo"`
	ProductID  string         `json:"productId"`
	ProductSKU string         `json:"productSku"`
	OrderedQty types.Quantity `json:"orderedQty"`
	PickedQty  types.Quantity `json:"pickedQty"`
	PackedQty  types.Quantity `json:"packedQty"`
	Location   string         `json:"location"`
}

// DeliveryResponse is the response body for a delivery.
type DeliveryResponse struct {
	DocumentResponse
	WarehouseID  string                 `json:"warehouseId"`
	Customer     string                 `json:"customer"`
	Carrier      *string                `json:"carrier,omitempty"`
	ShipDate     *time.Time             `json:"shipDate,omitempty"`
	TotalOrdered types.Quantity         `json:"totalOrdered"`
	TotalPicked  types.Quantity         `json:"totalPicked"`
	TotalPacked  types.Quantity         `json:"totalPacked"`
	Lines        []DeliveryLineResponse `json:"lines"`
}

// FromDelivery creates response DTO from domain entity.
func FromDelivery(doc *delivery.Delivery) *DeliveryResponse {
	lines := make([]DeliveryLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = DeliveryLineResponse{
			LineID:     line.LineID.String(),
			LineNo:     line.LineNo,
			ProductID:  line.ProductID.String(),
			ProductSKU: line.ProductSKU,
			OrderedQty: line.OrderedQty,
			PickedQty:  line.PickedQty,
			PackedQty:  line.PackedQty,
			Location:   line.Location,
		}
	}

	return &DeliveryResponse{
		DocumentResponse: FromDocument(doc.Document),
		WarehouseID:      doc.WarehouseID.String(),
		Customer:         doc.Customer,
		Carrier:          doc.Carrier,
		ShipDate:         doc.ShipDate,
		TotalOrdered:     doc.TotalOrdered,
		TotalPicked:      doc.TotalPicked,
		TotalPacked:      doc.TotalPacked,
		Lines:            lines,
	}
}
