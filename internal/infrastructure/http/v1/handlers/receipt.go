package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents/receipt"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// ReceiptHandler serves inbound receipt documents.
type ReceiptHandler struct {
	*BaseDocumentHandler[*receipt.Receipt, dto.CreateReceiptRequest, dto.UpdateReceiptRequest]
	service *receipt.Service
}

// NewReceiptHandler creates the receipt document handler.
func NewReceiptHandler(base *BaseHandler, service *receipt.Service) *ReceiptHandler {
	config := BaseDocumentHandlerConfig[
		*receipt.Receipt,
		dto.CreateReceiptRequest,
		dto.UpdateReceiptRequest,
	]{
		Service:    service,
		EntityName: "receipt",

		MapCreateDTO: func(req dto.CreateReceiptRequest) (*receipt.Receipt, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateReceiptRequest, existing *receipt.Receipt) (*receipt.Receipt, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(doc *receipt.Receipt) any {
			return dto.FromReceipt(doc)
		},
	}

	return &ReceiptHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /documents/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	filter := receipt.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
		},
		Supplier: c.Query("supplier"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := entity.DocumentStatus(statusStr)
		if !status.IsValid() {
			h.Error(c, apperror.NewValidation("invalid status").WithDetail("status", statusStr))
			return
		}
		filter.Status = &status
	}

	if whStr := c.Query("warehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		filter.WarehouseID = &parsed
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format, expected RFC3339"))
			return
		}
		filter.DateFrom = &parsed
	}

	if toStr := c.Query("toDate"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format, expected RFC3339"))
			return
		}
		filter.DateTo = &parsed
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromReceipt(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
