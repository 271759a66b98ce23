package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/registers/stock"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock ledger and cached levels.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates the stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListLedger handles GET /registers/stock/ledger
// Entries come back in insertion order.
func (h *StockHandler) ListLedger(c *gin.Context) {
	filter := stock.LedgerFilter{
		Category:  c.Query("category"),
		Reference: c.Query("reference"),
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	}

	for _, t := range c.QueryArray("type") {
		mt := entity.MoveType(t)
		if !mt.IsValid() {
			h.Error(c, apperror.NewValidation("invalid type").WithDetail("type", t))
			return
		}
		filter.Types = append(filter.Types, mt)
	}

	if whStr := c.Query("warehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		filter.WarehouseID = &parsed
	}

	if pStr := c.Query("productId"); pStr != "" {
		parsed, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format, expected RFC3339"))
			return
		}
		filter.FromDate = &parsed
	}

	if toStr := c.Query("toDate"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format, expected RFC3339"))
			return
		}
		filter.ToDate = &parsed
	}

	result, err := h.service.ListLedger(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockMoveResponse, len(result.Items))
	for i, m := range result.Items {
		items[i] = dto.FromStockMove(m)
	}

	c.JSON(http.StatusOK, dto.StockMoveListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// GetDocumentEntries handles GET /registers/stock/ledger/document/:documentId
func (h *StockHandler) GetDocumentEntries(c *gin.Context) {
	documentID, err := id.Parse(c.Param("documentId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid documentId format"))
		return
	}

	entries, err := h.service.GetEntriesByDocument(c.Request.Context(), documentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockMoveResponse, len(entries))
	for i, m := range entries {
		items[i] = dto.FromStockMove(m)
	}

	c.JSON(http.StatusOK, dto.StockMoveListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      len(items),
	})
}

// GetProductAvailability handles GET /registers/stock/availability/:productId
func (h *StockHandler) GetProductAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	onHand, err := h.service.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	levels, err := h.service.GetProductLevels(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	levelDTOs := make([]dto.StockLevelResponse, len(levels))
	for i, l := range levels {
		levelDTOs[i] = dto.FromStockLevel(l)
	}

	c.JSON(http.StatusOK, dto.ProductAvailabilityResponse{
		ProductID: productID.String(),
		OnHand:    onHand,
		Levels:    levelDTOs,
	})
}

// GetWarehouseStock handles GET /registers/stock/levels/warehouse/:warehouseId
func (h *StockHandler) GetWarehouseStock(c *gin.Context) {
	warehouseID, err := id.Parse(c.Param("warehouseId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid warehouseId format"))
		return
	}

	levels, err := h.service.GetWarehouseStock(c.Request.Context(), warehouseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockLevelResponse, len(levels))
	for i, l := range levels {
		items[i] = dto.FromStockLevel(l)
	}

	c.JSON(http.StatusOK, dto.StockLevelListResponse{Items: items})
}

// GetTurnover handles GET /registers/stock/turnover
func (h *StockHandler) GetTurnover(c *gin.Context) {
	fromStr := c.Query("fromDate")
	toStr := c.Query("toDate")
	if fromStr == "" || toStr == "" {
		h.Error(c, apperror.NewValidation("fromDate and toDate are required"))
		return
	}

	fromDate, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid fromDate format, expected RFC3339"))
		return
	}

	toDate, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid toDate format, expected RFC3339"))
		return
	}

	filter := stock.TurnoverFilter{
		FromDate: fromDate,
		ToDate:   toDate,
	}

	if whStr := c.Query("warehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		filter.WarehouseID = &parsed
	}

	if pStr := c.Query("productId"); pStr != "" {
		parsed, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &parsed
	}

	turnover, err := h.service.GetTurnover(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockTurnover(turnover))
}

// Recalculate handles POST /registers/stock/recalculate
// Rebuilds the level cache from the ledger.
func (h *StockHandler) Recalculate(c *gin.Context) {
	var warehouseID, productID *id.ID

	if whStr := c.Query("warehouseId"); whStr != "" {
		parsed, err := id.Parse(whStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid warehouseId format"))
			return
		}
		warehouseID = &parsed
	}

	if pStr := c.Query("productId"); pStr != "" {
		parsed, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		productID = &parsed
	}

	if err := h.service.RecalculateLevels(c.Request.Context(), warehouseID, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock levels recalculated")
}
