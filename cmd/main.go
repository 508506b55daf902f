package main

import (
	"context"
	"time"

	"techos-service/internal/auth"
	"techos-service/internal/handler"
	"techos-service/internal/middleware"
	"techos-service/internal/model"
	"techos-service/internal/store"
	"techos-service/pkg/config"
	"techos-service/pkg/database"
	"techos-service/pkg/jwtutil"
	"techos-service/pkg/logger"
	"techos-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting service-order platform...", zap.String("environment", cfg.Server.Env))

	// Connect to the database and migrate the schema
	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Token revocation store. Redis being down is not fatal: revocation
	// degrades to signature-and-expiry-only validation.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, token revocation disabled", zap.Error(err))
		redisClient = nil
	}
	cancel()

	// Stores
	companies := store.NewCompanyStore(db)
	users := store.NewUserStore(db)
	clients := store.NewClientStore(db)
	products := store.New[model.Product, *model.Product](db, store.Config{KeyColumn: "name", TenantScoped: true})
	brands := store.New[model.Brand, *model.Brand](db, store.Config{KeyColumn: "name", TenantScoped: true})
	technicians := store.New[model.Technician, *model.Technician](db, store.Config{KeyColumn: "name", TenantScoped: true})
	orders := store.NewOrderStore(db)

	if cfg.IsDevelopment() {
		if err := store.Seed(context.Background(), db, log); err != nil {
			log.Fatal("Failed to seed development fixtures", zap.Error(err))
		}
	}

	// Identity engine
	sessions := auth.NewSessionStore(redisClient, log)
	authSvc := auth.NewService(users, sessions, cfg, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	companyHandler := handler.NewCompanyHandler(companies)
	userHandler := handler.NewUserHandler(users)
	clientHandler := handler.NewClientHandler(clients)
	productHandler := handler.NewProductHandler(products)
	brandHandler := handler.NewBrandHandler(brands)
	technicianHandler := handler.NewTechnicianHandler(technicians)
	orderHandler := handler.NewOrderHandler(orders)
	exportHandler := handler.NewExportHandler(orders, products, brands, technicians)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/session", authHandler.Session)
	authGroup.POST("/logout", authHandler.Logout)

	// API routes - all require a valid token
	api := e.Group("/api")
	api.Use(middleware.RequireAuth(authSvc))

	// Platform administration - super admin only
	superAdmin := api.Group("/super-admin")
	superAdmin.Use(middleware.RequireRoles(auth.RouteCompanyDashboard, auth.RoleSuperAdmin))
	superAdmin.GET("/stats", companyHandler.Stats)
	superAdmin.GET("/companies", companyHandler.List)
	superAdmin.POST("/companies", companyHandler.Create)
	superAdmin.GET("/companies/:id", companyHandler.Get)
	superAdmin.PUT("/companies/:id", companyHandler.Update)
	superAdmin.DELETE("/companies/:id", companyHandler.Delete)
	superAdmin.PATCH("/companies/:id/toggle", companyHandler.Toggle)
	superAdmin.GET("/users", userHandler.List)
	superAdmin.POST("/users", userHandler.Create)
	superAdmin.GET("/users/:id", userHandler.Get)
	superAdmin.PUT("/users/:id", userHandler.Update)
	superAdmin.DELETE("/users/:id", userHandler.Delete)
	superAdmin.PATCH("/users/:id/toggle", userHandler.Toggle)

	// Company settings - the admin's window onto its own tenant record
	settings := api.Group("/settings")
	settings.Use(middleware.RequireRoles(auth.RouteCompanyDashboard, auth.RoleCompanyAdmin))
	settings.Use(middleware.RequireTenantContext)
	settings.GET("", companyHandler.GetSettings)
	settings.PUT("", companyHandler.UpdateSettings)

	// Account management within the company - admin only
	companyUsers := api.Group("/users")
	companyUsers.Use(middleware.RequireRoles(auth.RouteCompanyDashboard, auth.RoleCompanyAdmin))
	companyUsers.Use(middleware.RequireTenantContext)
	companyUsers.GET("", userHandler.List)
	companyUsers.POST("", userHandler.Create)
	companyUsers.GET("/:id", userHandler.Get)
	companyUsers.PUT("/:id", userHandler.Update)
	companyUsers.DELETE("/:id", userHandler.Delete)
	companyUsers.PATCH("/:id/toggle", userHandler.Toggle)

	// Tenant-scoped business routes - company admins and regular users
	tenant := api.Group("")
	tenant.Use(middleware.RequireRoles(auth.RouteLogin, auth.RoleCompanyAdmin, auth.RoleUser))
	tenant.Use(middleware.RequireTenantContext)

	registerCatalog := func(prefix string, h interface {
		List(echo.Context) error
		Get(echo.Context) error
		Create(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Toggle(echo.Context) error
	}) {
		g := tenant.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/toggle", h.Toggle)
	}
	registerCatalog("/products", productHandler)
	registerCatalog("/brands", brandHandler)
	registerCatalog("/technicians", technicianHandler)

	clientsGroup := tenant.Group("/clients")
	clientsGroup.GET("", clientHandler.List)
	clientsGroup.GET("/search", clientHandler.Search)
	clientsGroup.POST("", clientHandler.Create)
	clientsGroup.GET("/:id", clientHandler.Get)
	clientsGroup.PUT("/:id", clientHandler.Update)
	clientsGroup.DELETE("/:id", clientHandler.Delete)
	clientsGroup.PATCH("/:id/toggle", clientHandler.Toggle)

	ordersGroup := tenant.Group("/orders")
	ordersGroup.GET("", orderHandler.List)
	ordersGroup.GET("/search", orderHandler.Search)
	ordersGroup.GET("/stats", orderHandler.Stats)
	ordersGroup.GET("/urgent", orderHandler.Urgent)
	ordersGroup.GET("/calendar", orderHandler.Calendar)
	ordersGroup.GET("/export", exportHandler.Orders)
	ordersGroup.POST("", orderHandler.Create)
	ordersGroup.GET("/:id", orderHandler.Get)
	ordersGroup.PUT("/:id", orderHandler.Update)
	ordersGroup.DELETE("/:id", orderHandler.Delete)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
