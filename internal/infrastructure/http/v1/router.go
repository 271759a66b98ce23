// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockmaster/internal/core/refgen"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/domain/documents"
	"stockmaster/internal/domain/documents/adjustment"
	"stockmaster/internal/domain/documents/delivery"
	"stockmaster/internal/domain/documents/receipt"
	"stockmaster/internal/domain/documents/transfer"
	"stockmaster/internal/domain/registers/stock"
	"stockmaster/internal/domain/reports"
	"stockmaster/internal/domain/validation"
	"stockmaster/internal/infrastructure/http/v1/handlers"
	"stockmaster/internal/infrastructure/http/v1/middleware"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmaster/internal/infrastructure/storage/postgres/document_repo"
	"stockmaster/internal/infrastructure/storage/postgres/register_repo"
	"stockmaster/internal/infrastructure/storage/postgres/report_repo"
	"stockmaster/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, stats)
	Pool *postgres.Pool

	// TxManager manages transactions for repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// RefGen issues document references (REC-000042 style)
	RefGen refgen.Generator

	// Audit records entity changes; nil disables audit logging
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.JWTValidator))
	{
		registerCatalogRoutes(apiV1, cfg)
		registerDocumentRoutes(apiV1, cfg)
		registerRegisterRoutes(apiV1, cfg)
		registerReportRoutes(apiV1, cfg)
	}

	return router
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.RefGen)
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		RegisterCatalogRoutes(group, handler, "catalog:product")
		handler.RegisterExtraRoutes(group)
	}

	// --- WAREHOUSES ---
	{
		repo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
		service := warehouse.NewService(repo, cfg.TxManager, cfg.RefGen)
		handler := handlers.NewWarehouseHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, "catalog:warehouse")
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	// Shared dependencies: every document type validates through the same
	// engine and ledger service.
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	engine := validation.NewEngine(stockService, cfg.TxManager)

	warehouseRepo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
	resolver := documents.NewLocationResolver(warehouseRepo)

	// --- RECEIPTS ---
	{
		repo := document_repo.NewReceiptRepo(cfg.TxManager)
		service := receipt.NewService(repo, engine, cfg.RefGen, resolver, cfg.TxManager)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(auditDocumentHook[*receipt.Receipt](cfg.Audit, "receipt", postgres.AuditActionCreate))
			service.Hooks().OnAfterUpdate(auditDocumentHook[*receipt.Receipt](cfg.Audit, "receipt", postgres.AuditActionUpdate))
		}

		handler := handlers.NewReceiptHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/receipts"), handler, "document:receipt")
	}

	// --- DELIVERIES ---
	{
		repo := document_repo.NewDeliveryRepo(cfg.TxManager)
		service := delivery.NewService(repo, engine, cfg.RefGen, resolver, cfg.TxManager)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(auditDocumentHook[*delivery.Delivery](cfg.Audit, "delivery", postgres.AuditActionCreate))
			service.Hooks().OnAfterUpdate(auditDocumentHook[*delivery.Delivery](cfg.Audit, "delivery", postgres.AuditActionUpdate))
		}

		handler := handlers.NewDeliveryHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/deliveries"), handler, "document:delivery")
	}

	// --- TRANSFERS ---
	{
		repo := document_repo.NewTransferRepo(cfg.TxManager)
		service := transfer.NewService(repo, warehouseRepo, engine, cfg.RefGen, cfg.TxManager)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(auditDocumentHook[*transfer.Transfer](cfg.Audit, "transfer", postgres.AuditActionCreate))
			service.Hooks().OnAfterUpdate(auditDocumentHook[*transfer.Transfer](cfg.Audit, "transfer", postgres.AuditActionUpdate))
		}

		handler := handlers.NewTransferHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/transfers"), handler, "document:transfer")
	}

	// --- ADJUSTMENTS ---
	{
		repo := document_repo.NewAdjustmentRepo(cfg.TxManager)
		service := adjustment.NewService(repo, stockService, engine, cfg.RefGen, cfg.TxManager)

		if cfg.Audit != nil {
			service.Hooks().OnAfterCreate(auditDocumentHook[*adjustment.Adjustment](cfg.Audit, "adjustment", postgres.AuditActionCreate))
			service.Hooks().OnAfterUpdate(auditDocumentHook[*adjustment.Adjustment](cfg.Audit, "adjustment", postgres.AuditActionUpdate))
		}

		handler := handlers.NewAdjustmentHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/adjustments"), handler, "document:adjustment")
	}
}

// auditDocumentHook records a document lifecycle change in the audit log.
// Audit failures are logged, never propagated into the business operation.
func auditDocumentHook[T validation.Document](audit *postgres.AuditService, entityType string, action postgres.AuditAction) func(ctx context.Context, doc T) error {
	return func(ctx context.Context, doc T) error {
		err := audit.LogChange(ctx, entityType, doc.GetID(), action, map[string]any{
			"reference": doc.GetReference(),
			"status":    string(doc.GetStatus()),
		})
		if err != nil {
			logger.Warn(ctx, "audit log failed",
				"entity_type", entityType,
				"entity_id", doc.GetID().String(),
				"error", err,
			)
		}
		return nil
	}
}

// registerRegisterRoutes registers stock register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	stockHandler := handlers.NewStockHandler(baseHandler, stockService)

	stockGroup := registers.Group("/stock")
	read := middleware.RequirePermission("register:stock:read")
	stockGroup.GET("/ledger", read, stockHandler.ListLedger)
	stockGroup.GET("/ledger/document/:documentId", read, stockHandler.GetDocumentEntries)
	stockGroup.GET("/availability/:productId", read, stockHandler.GetProductAvailability)
	stockGroup.GET("/levels/warehouse/:warehouseId", read, stockHandler.GetWarehouseStock)
	stockGroup.GET("/turnover", read, stockHandler.GetTurnover)

	// Maintenance: rebuilds the level cache from the ledger
	stockGroup.POST("/recalculate", middleware.RequirePermission("register:stock:recalculate"), stockHandler.Recalculate)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup.GET("/stock-balance", middleware.RequirePermission("report:stock:read"), reportHandler.GetStockBalance)
	reportsGroup.GET("/stock-turnover", middleware.RequirePermission("report:stock:read"), reportHandler.GetStockTurnover)
	reportsGroup.GET("/document-journal", middleware.RequirePermission("report:documents:read"), reportHandler.GetDocumentJournal)
	reportsGroup.GET("/dashboard", middleware.RequirePermission("report:dashboard:read"), reportHandler.GetDashboard)
}
