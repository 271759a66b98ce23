package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog. Generic CRUD comes from
// CatalogHandler; SKU, barcode and reorder lookups are product-specific.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates the product catalog handler.
func NewProductHandler(
	base *BaseHandler,
	service *product.Service,
) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// GetBySKU handles GET /products/sku/:sku
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.Error(c, apperror.NewValidation("sku is required"))
		return
	}

	p, err := h.service.FindBySKU(c.Request.Context(), sku)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// GetByBarcode handles GET /products/barcode/:barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.Error(c, apperror.NewValidation("barcode is required"))
		return
	}

	p, err := h.service.FindByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// GetBelowReorderPoint handles GET /products/reorder
func (h *ProductHandler) GetBelowReorderPoint(c *gin.Context) {
	filter := domain.DefaultListFilter()
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindBelowReorderPoint(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, p := range result.Items {
		items[i] = dto.FromProduct(p)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterExtraRoutes registers product-specific lookups beside the CRUD set.
func (h *ProductHandler) RegisterExtraRoutes(rg *gin.RouterGroup) {
	rg.GET("/sku/:sku", h.GetBySKU)
	rg.GET("/barcode/:barcode", h.GetByBarcode)
	rg.GET("/reorder", h.GetBelowReorderPoint)
}
