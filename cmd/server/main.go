package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/puestoweb/backend/internal/application/catalog"
	"github.com/puestoweb/backend/internal/application/collections"
	inventoryapp "github.com/puestoweb/backend/internal/application/inventory"
	partnerapp "github.com/puestoweb/backend/internal/application/partner"
	reportapp "github.com/puestoweb/backend/internal/application/report"
	salesapp "github.com/puestoweb/backend/internal/application/sales"
	"github.com/puestoweb/backend/internal/infrastructure/cache"
	"github.com/puestoweb/backend/internal/infrastructure/config"
	"github.com/puestoweb/backend/internal/infrastructure/logger"
	"github.com/puestoweb/backend/internal/infrastructure/persistence"
	"github.com/puestoweb/backend/internal/interfaces/http/handler"
	"github.com/puestoweb/backend/internal/interfaces/http/middleware"
	"github.com/puestoweb/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PuestoWeb Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)

	// Transaction scopes
	salesTxScope := persistence.NewGormSalesTransactionScope(db.DB)
	collectionsTxScope := persistence.NewGormCollectionsTransactionScope(db.DB)
	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Debt summary projection cache. Redis when several instances share
	// the store, in-memory otherwise.
	var debtCache collections.DebtSummaryCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisDebtSummaryCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		debtCache = redisCache
		log.Info("Redis debt summary cache enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		debtCache = cache.NewInMemoryDebtSummaryCache()
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	checkoutService := salesapp.NewCheckoutService(saleRepo, productRepo, customerRepo, salesTxScope, debtCache)
	paymentService := collections.NewPaymentService(saleRepo, paymentRepo, customerRepo, collectionsTxScope, debtCache)
	debtService := collections.NewDebtService(saleRepo, paymentRepo, customerRepo, debtCache)
	debtService.SetSummaryTTL(cfg.Cache.DebtSummaryTTL)
	movementService := inventoryapp.NewMovementService(productRepo, movementRepo, inventoryTxScope)
	reportService := reportapp.NewReportService(saleRepo, productRepo, debtService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine)
	r.Register(handler.NewProductHandler(productService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewSaleHandler(checkoutService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewDebtHandler(debtService)).
		Register(handler.NewInventoryHandler(movementService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSystemHandler())
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
