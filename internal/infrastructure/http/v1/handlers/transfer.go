package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents/transfer"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// TransferHandler serves inter-warehouse transfer documents.
type TransferHandler struct {
	*BaseDocumentHandler[*transfer.Transfer, dto.CreateTransferRequest, dto.UpdateTransferRequest]
	service *transfer.Service
}

// NewTransferHandler creates the transfer document handler.
func NewTransferHandler(base *BaseHandler, service *transfer.Service) *TransferHandler {
	config := BaseDocumentHandlerConfig[
		*transfer.Transfer,
		dto.CreateTransferRequest,
		dto.UpdateTransferRequest,
	]{
		Service:    service,
		EntityName: "transfer",

		MapCreateDTO: func(req dto.CreateTransferRequest) (*transfer.Transfer, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateTransferRequest, existing *transfer.Transfer) (*transfer.Transfer, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(doc *transfer.Transfer) any {
			return dto.FromTransfer(doc)
		},
	}

	return &TransferHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, config),
		service:             service,
	}
}

// List handles GET /documents/transfers
func (h *TransferHandler) List(c *gin.Context) {
	filter := transfer.ListFilter{
		ListFilter: domain.ListFilter{
			Search:         c.Query("search"),
			IncludeDeleted: c.Query("includeDeleted") == "true",
			Limit:          h.ParseIntQuery(c, "limit", 50),
			Offset:         h.ParseIntQuery(c, "offset", 0),
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := entity.DocumentStatus(statusStr)
		if !status.IsValid() {
			h.Error(c, apperror.NewValidation("invalid status").WithDetail("status", statusStr))
			return
		}
		filter.Status = &status
	}

	if whStr := c.Query("fromWarehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromWarehouseId format"))
			return
		}
		filter.FromWarehouseID = &parsed
	}

	if whStr := c.Query("toWarehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toWarehouseId format"))
			return
		}
		filter.ToWarehouseID = &parsed
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
		items[i] = dto.FromTransfer(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
