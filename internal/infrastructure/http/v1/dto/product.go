package dto

import (
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	SKU             string            `json:"sku" binding:"required"`
	Name            string            `json:"name" binding:"required"`
	Category        string            `json:"category"`
	UOM             string            `json:"uom" binding:"required"`
	Barcode         *string           `json:"barcode"`
	ReorderPoint    types.Quantity    `json:"reorderPoint"`
	ReorderQuantity types.Quantity    `json:"reorderQuantity"`
	Description     *string           `json:"description"`
	ImageURL        *string           `json:"imageUrl"`
	ParentID        *string           `json:"parentId"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.SKU, r.Name)
	p.Category = r.Category
	p.UOM = r.UOM
	p.Barcode = r.Barcode
	p.ReorderPoint = r.ReorderPoint
	p.ReorderQuantity = r.ReorderQuantity
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	SKU             string            `json:"sku" binding:"required"`
	Name            string            `json:"name" binding:"required"`
	Category        string            `json:"category"`
	UOM             string            `json:"uom" binding:"required"`
	Barcode         *string           `json:"barcode,omitempty"`
	ReorderPoint    types.Quantity    `json:"reorderPoint"`
	ReorderQuantity types.Quantity    `json:"reorderQuantity"`
	Description     *string           `json:"description,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	ParentID        *string           `json:"parentId,omitempty"`
	IsFolder        bool              `json:"isFolder"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.SKU = r.SKU
	p.Code = r.SKU
	p.Name = r.Name
	p.Category = r.Category
	p.UOM = r.UOM
	p.Barcode = r.Barcode
	p.ReorderPoint = r.ReorderPoint
	p.ReorderQuantity = r.ReorderQuantity
	p.Description = r.Description
	p.ImageURL = r.ImageURL
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID              string            `json:"id"`
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	Category        string            `json:"category,omitempty"`
	UOM             string            `json:"uom"`
	Barcode         *string           `json:"barcode,omitempty"`
	ReorderPoint    types.Quantity    `json:"reorderPoint"`
	ReorderQuantity types.Quantity    `json:"reorderQuantity"`
	Description     *string           `json:"description,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	ParentID        *string           `json:"parentId,omitempty"`
	IsFolder        bool              `json:"isFolder"`
	DeletionMark    bool              `json:"deletionMark"`
	Version         int               `json:"version"`
	Attributes      entity.Attributes `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:              p.ID.String(),
		SKU:             p.SKU,
		Name:            p.Name,
		Category:        p.Category,
		UOM:             p.UOM,
		Barcode:         p.Barcode,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		ParentID:        p.ParentID,
		IsFolder:        p.IsFolder,
		DeletionMark:    p.DeletionMark,
		Version:         p.Version,
		Attributes:      p.Attributes,
	}
}
