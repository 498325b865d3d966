package router

import (
	"supplyease/internal/config"
	"supplyease/internal/handler"
	"supplyease/internal/idgen"
	"supplyease/internal/infra"
	"supplyease/internal/middleware"
	"supplyease/internal/model"
	"supplyease/internal/repository"
	"supplyease/internal/service"
	"supplyease/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// rdb may be nil: keys are then guarded by the unique index alone, the
// dashboard is computed on every call and no notifications are queued.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}

	// ── Infrastructure ───────────────────────────────────────────────────────
	genOpts := []idgen.Option{}
	var (
		notifier service.Notifier
		cache    service.Cache
	)
	if rdb != nil {
		genOpts = append(genOpts, idgen.WithReserver(infra.NewKeyReserver(rdb)))
		notifier = worker.NewDispatcher(rdb)
		cache = infra.NewJSONCache(rdb)
	}
	minter := service.NewKeyMinter(idgen.New(genOpts...), cfg.IDMaxAttempts)

	// ── Repositories ─────────────────────────────────────────────────────────
	prRepo := repository.NewPurchaseRequestRepository(db)
	srRepo := repository.NewSourcingRequestRepository(db)
	poRepo := repository.NewPurchaseOrderRepository(db)
	dsRepo := repository.NewDeliveryStatusRepository(db)
	chainRepo := repository.NewChainRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	prSvc := service.NewPurchaseRequestService(prRepo, minter)
	srSvc := service.NewSourcingRequestService(srRepo, minter, cache)
	poSvc := service.NewPurchaseOrderService(poRepo, dsRepo, minter, notifier, cache)
	deliverySvc := service.NewDeliveryService(dsRepo, notifier, cache)
	chainSvc := service.NewChainService(chainRepo, prRepo, srRepo, poRepo, notifier, cache)
	supplierSvc := service.NewSupplierService(supplierRepo, minter)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	prH := handler.NewPurchaseRequestsHandler(prSvc)
	srH := handler.NewSourcingRequestsHandler(srSvc)
	poH := handler.NewPurchaseOrdersHandler(poSvc)
	deliveriesH := handler.NewDeliveriesHandler(deliverySvc)
	chainsH := handler.NewChainsHandler(chainSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	var breaker handler.BreakerState
	if mailCB != nil {
		breaker = mailCB
	}
	r.GET("/health", handler.Health(db, rdb, breaker))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter().Middleware(), authH.Login)
	}

	admin := middleware.RequireRole(model.RoleAdmin)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSupplier)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		prs := v1.Group("/purchase-requests")
		{
			prs.GET("", anyRole, prH.List)
			prs.GET("/:id", anyRole, prH.Get)
			prs.POST("", admin, prH.Create)
			prs.POST("/import", admin, prH.Import)
			prs.GET("/import/template", admin, prH.ImportTemplate)
		}
		v1.GET("/pr/:pr_number", anyRole, prH.GetByNumber)

		srs := v1.Group("/sourcing-requests")
		{
			srs.GET("", anyRole, srH.List)
			srs.GET("/:id", anyRole, srH.Get)
			srs.POST("", admin, srH.Create)
		}
		v1.GET("/sr/:sr_number", anyRole, srH.GetByNumber)

		pos := v1.Group("/purchase-orders")
		{
			pos.GET("", anyRole, poH.List)
			pos.GET("/:id", anyRole, poH.Get)
			pos.POST("", admin, poH.Create)
		}

		chains := v1.Group("/chains")
		{
			chains.GET("", anyRole, chainsH.List)
			chains.GET("/:id", anyRole, chainsH.Get)
			chains.PUT("/:id", admin, chainsH.Update)
			chains.DELETE("/:id", admin, chainsH.Delete)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.GET("", anyRole, deliveriesH.List)
			deliveries.GET("/:id", anyRole, deliveriesH.Get)
			deliveries.PUT("/:id", anyRole, deliveriesH.Update)
			deliveries.DELETE("/:id", admin, deliveriesH.Delete)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", anyRole, suppliersH.List)
			suppliers.GET("/:id", anyRole, suppliersH.Get)
			suppliers.POST("", admin, suppliersH.Create)
			suppliers.PUT("/:id", admin, suppliersH.Update)
			suppliers.DELETE("/:id", admin, suppliersH.Delete)
		}

		v1.GET("/dashboard", anyRole, dashboardH.Summary)

		users := v1.Group("/users", admin)
		{
			users.GET("", usersH.List)
			users.POST("", usersH.Create)
		}
	}

	return r
}
