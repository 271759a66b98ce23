// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockmaster/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	GetTree(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// All document handlers must implement these methods.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetStatus(c *gin.Context)
	Validate(c *gin.Context)
	Cancel(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
//
// Usage:
//
//	repo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
//	service := warehouse.NewService(repo, cfg.TxManager, cfg.RefGen)
//	handler := handlers.NewWarehouseHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, "catalog:warehouse")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
	group.GET("/tree", middleware.RequirePermission(permission+":read"), handler.GetTree)
}

// RegisterDocumentRoutes registers CRUD + lifecycle routes for a document.
// Status moves along the draft -> waiting -> ready chain via /status;
// completion goes through /validate and cancellation through /cancel.
//
// Usage:
//
//	repo := document_repo.NewReceiptRepo(cfg.TxManager)
//	service := receipt.NewService(repo, engine, cfg.RefGen, resolver, cfg.TxManager)
//	handler := handlers.NewReceiptHandler(baseHandler, service)
//	RegisterDocumentRoutes(documents.Group("/receipts"), handler, "document:receipt")
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/status", middleware.RequirePermission(permission+":update"), handler.SetStatus)
	group.POST("/:id/validate", middleware.RequirePermission(permission+":validate"), handler.Validate)
	group.POST("/:id/cancel", middleware.RequirePermission(permission+":cancel"), handler.Cancel)
}
