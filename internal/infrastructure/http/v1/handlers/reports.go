package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/domain/reports"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the reporting endpoints. Domain report structs
// carry JSON tags, so responses go out without a DTO layer.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates the reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStockBalance handles GET /reports/stock-balance
func (h *ReportsHandler) GetStockBalance(c *gin.Context) {
	var req dto.StockBalanceReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetStockBalance(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStockTurnover handles GET /reports/stock-turnover
func (h *ReportsHandler) GetStockTurnover(c *gin.Context) {
	var req dto.StockTurnoverReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetStockTurnover(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetDocumentJournal handles GET /reports/document-journal
func (h *ReportsHandler) GetDocumentJournal(c *gin.Context) {
	var req dto.DocumentJournalRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	journal, err := h.service.GetDocumentJournal(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, journal)
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
