// Package v1 provides HTTP API version 1.
package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/id"
	"repairdesk/internal/domain/audit"
	"repairdesk/internal/domain/catalogs/category"
	"repairdesk/internal/domain/catalogs/customer"
	"repairdesk/internal/domain/catalogs/product"
	"repairdesk/internal/domain/catalogs/unit"
	"repairdesk/internal/domain/documents/purchase"
	"repairdesk/internal/domain/documents/repair"
	"repairdesk/internal/domain/documents/sale"
	"repairdesk/internal/domain/inventory"
	"repairdesk/internal/domain/reports"
	"repairdesk/internal/domain/settings"
	"repairdesk/internal/infrastructure/http/v1/handlers"
	"repairdesk/internal/infrastructure/http/v1/middleware"
	"repairdesk/internal/infrastructure/storage/postgres"
	"repairdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"repairdesk/internal/infrastructure/storage/postgres/document_repo"
	"repairdesk/internal/infrastructure/storage/postgres/report_repo"
	"repairdesk/pkg/logger"
	"repairdesk/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Numerator for document number generation
	Numerator *numerator.Service

	// Audit records entity change history (optional)
	Audit *postgres.AuditService

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool

	// IdempotencyTTL is how long acquired keys and cached responses live
	IdempotencyTTL time.Duration
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
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

	deps := buildDomain(cfg)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		if cfg.IdempotencyEnabled {
			ttl := cfg.IdempotencyTTL
			if ttl <= 0 {
				ttl = 10 * time.Minute
			}
			store := postgres.NewIdempotencyStore(cfg.Pool, cfg.TxManager, ttl)
			protected.Use(middleware.Idempotency(store))
		}

		registerCatalogRoutes(protected, deps)
		registerDocumentRoutes(protected, deps)
		registerReportRoutes(protected, deps)
		registerSettingsRoutes(protected, deps)
	}

	return router
}

// domainDeps is the assembled domain layer shared by the route groups.
type domainDeps struct {
	categoryService *category.Service
	unitService     *unit.Service
	customerService *customer.Service
	productService  *product.Service

	purchaseService *purchase.Service
	saleService     *sale.Service
	repairService   *repair.Service

	reportsService  *reports.Service
	settingsService *settings.Service
}

// buildDomain wires repositories, the inventory engine and services.
func buildDomain(cfg RouterConfig) *domainDeps {
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	unitRepo := catalog_repo.NewUnitRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)

	purchaseRepo := document_repo.NewPurchaseRepo(cfg.TxManager)
	saleRepo := document_repo.NewSaleRepo(cfg.TxManager)
	repairRepo := document_repo.NewRepairRepo(cfg.TxManager)

	categoryService := category.NewService(categoryRepo, cfg.TxManager, cfg.Numerator)
	unitService := unit.NewService(unitRepo, cfg.TxManager, cfg.Numerator)
	customerService := customer.NewService(customerRepo, cfg.TxManager, cfg.Numerator)
	productService := product.NewService(productRepo, cfg.TxManager, cfg.Numerator, product.Deps{
		Categories: categoryRepo,
		Units:      unitRepo,
	})

	// Reference guards: a catalog entry cannot be deleted while other
	// records still point at it.
	categoryService.GuardReferences(productRepo.CountByCategory)
	unitService.GuardReferences(productRepo.CountByUnit)
	customerService.GuardReferences(func(ctx context.Context, customerID id.ID) (int64, error) {
		return sumCounts(ctx, customerID,
			saleRepo.CountByCustomer,
			repairRepo.CountByCustomer,
		)
	})
	productService.GuardReferences(func(ctx context.Context, productID id.ID) (int64, error) {
		return sumCounts(ctx, productID,
			purchaseRepo.CountByProduct,
			saleRepo.CountByProduct,
			repairRepo.CountByProduct,
		)
	})

	// The engine is the only write path for product stock state.
	engine := inventory.NewEngine(productRepo)

	purchaseService := purchase.NewService(purchaseRepo, engine, cfg.Numerator, cfg.TxManager)
	saleService := sale.NewService(saleRepo, engine, customerService, cfg.Numerator, cfg.TxManager)
	repairService := repair.NewService(repairRepo, engine, customerService, cfg.Numerator, cfg.TxManager)

	purchaseService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *purchase.Purchase) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	saleService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *sale.Sale) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	repairService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *repair.Repair) error {
		audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})

	if cfg.Audit != nil {
		registerAuditHooks(cfg.Audit, purchaseService, saleService, repairService, productService)
	}

	settingsService := settings.NewService(postgres.NewSettingsRepo(cfg.TxManager))
	reportsService := reports.NewService(report_repo.NewReportRepo(cfg.TxManager), settingsService)

	return &domainDeps{
		categoryService: categoryService,
		unitService:     unitService,
		customerService: customerService,
		productService:  productService,
		purchaseService: purchaseService,
		saleService:     saleService,
		repairService:   repairService,
		reportsService:  reportsService,
		settingsService: settingsService,
	}
}

// registerAuditHooks records change history for documents and products.
// After-hooks run once the business transaction has committed, so entries
// are best-effort: a failed audit write is logged as a warning and never
// rolls back the change it describes.
func registerAuditHooks(
	auditService *postgres.AuditService,
	purchaseService *purchase.Service,
	saleService *sale.Service,
	repairService *repair.Service,
	productService *product.Service,
) {
	purchaseService.Hooks().OnAfterCreate(func(ctx context.Context, doc *purchase.Purchase) error {
		return auditService.LogChange(ctx, "purchase", doc.ID, postgres.AuditActionCreate, postgres.StructToMap(doc))
	})
	saleService.Hooks().OnAfterCreate(func(ctx context.Context, doc *sale.Sale) error {
		return auditService.LogChange(ctx, "sale", doc.ID, postgres.AuditActionCreate, postgres.StructToMap(doc))
	})
	repairService.Hooks().OnAfterCreate(func(ctx context.Context, doc *repair.Repair) error {
		return auditService.LogChange(ctx, "repair", doc.ID, postgres.AuditActionCreate, postgres.StructToMap(doc))
	})

	productService.Hooks().OnAfterUpdate(func(ctx context.Context, p *product.Product) error {
		return auditService.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, postgres.StructToMap(p))
	})
	productService.Hooks().OnAfterDelete(func(ctx context.Context, p *product.Product) error {
		return auditService.LogChange(ctx, "product", p.ID, postgres.AuditActionDelete, nil)
	})
}

// sumCounts adds up reference counts across several counters.
func sumCounts(ctx context.Context, entityID id.ID, counters ...func(context.Context, id.ID) (int64, error)) (int64, error) {
	var total int64
	for _, count := range counters {
		n, err := count(ctx, entityID)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/categories"),
		handlers.NewCategoryHandler(baseHandler, deps.categoryService), "catalog:category")
	RegisterCatalogRoutes(catalogs.Group("/units"),
		handlers.NewUnitHandler(baseHandler, deps.unitService), "catalog:unit")
	RegisterCatalogRoutes(catalogs.Group("/customers"),
		handlers.NewCustomerHandler(baseHandler, deps.customerService), "catalog:customer")
	RegisterCatalogRoutes(catalogs.Group("/products"),
		handlers.NewProductHandler(baseHandler, deps.productService), "catalog:product")
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	docs := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	RegisterDocumentRoutes(docs.Group("/purchases"),
		handlers.NewPurchaseHandler(baseHandler, deps.purchaseService), "document:purchase")
	RegisterDocumentRoutes(docs.Group("/sales"),
		handlers.NewSaleHandler(baseHandler, deps.saleService), "document:sale")
	RegisterDocumentRoutes(docs.Group("/repairs"),
		handlers.NewRepairHandler(baseHandler, deps.repairService), "document:repair")
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	handler := handlers.NewReportsHandler(baseHandler, deps.reportsService)
	reportsGroup.GET("/low-stock", middleware.RequirePermission("report:stock:read"), handler.GetLowStock)
	reportsGroup.GET("/sales-summary", middleware.RequirePermission("report:sales:read"), handler.GetSalesSummary)
	reportsGroup.GET("/valuation", middleware.RequirePermission("report:stock:read"), handler.GetValuation)
}

// registerSettingsRoutes registers settings endpoints.
func registerSettingsRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	settingsGroup := rg.Group("/settings")
	baseHandler := handlers.NewBaseHandler()

	handler := handlers.NewSettingsHandler(baseHandler, deps.settingsService)
	settingsGroup.GET("", middleware.RequirePermission("settings:read"), handler.Get)
	settingsGroup.PUT("", middleware.RequirePermission("settings:update"), handler.Update)
}
