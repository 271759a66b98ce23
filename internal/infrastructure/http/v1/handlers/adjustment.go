package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents/adjustment"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler serves stock adjustment documents.
type AdjustmentHandler struct {
	*BaseDocumentHandler[*adjustment.Adjustment, dto.CreateAdjustmentRequest, dto.UpdateAdjustmentRequest]
	service *adjustment.Service
}

// NewAdjustmentHandler creates the adjustment document handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	config := BaseDocumentHandlerConfig[
		*adjustment.Adjustment,
		dto.CreateAdjustmentRequest,
		dto.UpdateAdjustmentRequest,
	]{
		Service:    service,
		EntityName: "adjustment",

		MapCreateDTO: func(req dto.CreateAdjustmentRequest) (*adjustment.Adjustment, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAdjustmentRequest, existing *adjustment.Adjustment) (*adjustment.Adjustment, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(doc *adjustment.Adjustment) any {
			return dto.FromAdjustment(doc)
		},
	}

	return &AdjustmentHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /documents/adjustments
func (h *AdjustmentHandler) List(c *gin.Context) {
	filter := adjustment.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
		},
		Reason: c.Query("reason"),
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
		items[i] = dto.FromAdjustment(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
