package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// DocumentService defines the interface that services must implement
// for BaseDocumentHandler. Listing is type-specific and stays on the
// concrete handlers.
type DocumentService[T any] interface {
	GetByID(ctx context.Context, docID id.ID) (T, error)
	Create(ctx context.Context, doc T) error
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	SetStatus(ctx context.Context, docID id.ID, next entity.DocumentStatus) (T, error)
	Validate(ctx context.Context, docID id.ID) (T, error)
	Cancel(ctx context.Context, docID id.ID) (T, error)
}

// BaseDocumentHandler provides generic HTTP handlers for document entities.
type BaseDocumentHandler[T any, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    DocumentService[T]
	entityName string

	// Mapper functions
	mapCreateDTO func(dto CreateDTO) (T, error)
	mapUpdateDTO func(dto UpdateDTO, existing T) (T, error)
	mapToDTO     func(doc T) any
}

// BaseDocumentHandlerConfig configures the document handler.
type BaseDocumentHandlerConfig[T any, CreateDTO any, UpdateDTO any] struct {
	Service      DocumentService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) (T, error)
	MapUpdateDTO func(dto UpdateDTO, existing T) (T, error)
	MapToDTO     func(doc T) any
}

// NewBaseDocumentHandler creates a new base document handler.
func NewBaseDocumentHandler[T any, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg BaseDocumentHandlerConfig[T, CreateDTO, UpdateDTO],
) *BaseDocumentHandler[T, CreateDTO, UpdateDTO] {
	return &BaseDocumentHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) parseID(c *gin.Context) (id.ID, bool) {
	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return docID, false
	}
	return docID, true
}

// Get handles GET /{entity}/:id
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Create handles POST /{entity}
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.mapToDTO(doc))
}

// Update handles PUT /{entity}/:id
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc, err = h.mapUpdateDTO(req, doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Delete handles DELETE /{entity}/:id
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetStatus handles POST /{entity}/:id/status
// Moves a document along draft -> waiting -> ready. Completion goes
// through Validate; cancellation through Cancel.
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) SetStatus(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.SetStatus(c.Request.Context(), docID, entity.DocumentStatus(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Validate handles POST /{entity}/:id/validate
// Completes the document and writes its ledger entries atomically.
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Validate(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Validate(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// Cancel handles POST /{entity}/:id/cancel
func (h *BaseDocumentHandler[T, CreateDTO, UpdateDTO]) Cancel(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.Cancel(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}
