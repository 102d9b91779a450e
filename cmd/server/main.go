package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stokledger/backend/internal/application/catalog"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	partnerapp "github.com/stokledger/backend/internal/application/partner"
	tradeapp "github.com/stokledger/backend/internal/application/trade"
	"github.com/stokledger/backend/internal/infrastructure/cache"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"github.com/stokledger/backend/internal/infrastructure/migration"
	"github.com/stokledger/backend/internal/infrastructure/persistence"
	"github.com/stokledger/backend/internal/infrastructure/telemetry"
	"github.com/stokledger/backend/internal/interfaces/http/handler"
	"github.com/stokledger/backend/internal/interfaces/http/middleware"
	"github.com/stokledger/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Tee application logs into the OTLP exporter once it exists
	if core := providers.ZapCore(logger.ParseLevel(cfg.Log.Level)); core != nil {
		log, err = logger.New(logCfg, core)
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting stock ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	repos := persistence.NewRepositories(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	metrics, err := telemetry.NewLedgerMetrics(providers.Meter())
	if err != nil {
		log.Fatal("Failed to create ledger metrics", zap.Error(err))
	}

	paymentService := financeapp.NewPaymentService(txScope, repos)
	paymentService.SetRecorder(metrics)
	saleService := tradeapp.NewSaleService(txScope, repos)
	saleService.SetRecorder(metrics)
	purchaseService := tradeapp.NewPurchaseService(txScope, repos)
	purchaseService.SetRecorder(metrics)
	returnService := tradeapp.NewReturnService(txScope, repos)
	returnService.SetRecorder(metrics)

	handlers := router.Handlers{
		System:   handler.NewSystemHandler(cfg.App.Name, version, db),
		Category: handler.NewCategoryHandler(catalogapp.NewCategoryService(repos.CategoryRepo())),
		Product: handler.NewProductHandler(
			catalogapp.NewProductService(repos.ProductRepo(), repos.CategoryRepo()),
			catalogapp.NewPriceRuleService(txScope, repos.PriceRuleRepo()),
		),
		Supplier: handler.NewSupplierHandler(partnerapp.NewSupplierService(repos.SupplierRepo())),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Sale:     handler.NewSaleHandler(saleService),
		Return:   handler.NewReturnHandler(returnService),
		Cash:     handler.NewCashHandler(financeapp.NewCashService(txScope, repos), paymentService),
		Report: handler.NewReportHandler(
			inventoryapp.NewInventoryService(repos),
			financeapp.NewReportService(repos),
			handler.ReportDefaults{
				LowStockThreshold: cfg.Ledger.LowStockThreshold,
				ExpiryWindowDays:  cfg.Ledger.ExpiryWindowDays,
			},
		),
	}

	idempotencyStore := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	middleware.SetupValidator()
	engine, err := router.NewEngine(handlers, router.EngineOptions{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     providers.Enabled(),
		},
		Meter: providers.Meter(),
		Idempotency: middleware.IdempotencyConfig{
			Store: idempotencyStore,
			TTL:   cfg.Ledger.IdempotencyTTL,
		},
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// openDatabase connects with the zap-backed GORM logger, attaches the
// tracing plugin and applies the embedded migrations
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}
	log.Info("Database connected",
		zap.String("driver", cfg.Database.Driver),
	)

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.InstrumentDB(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:   dbSystem,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	// The migrator shares the pool, so it is not closed here
	migrator, err := migration.New(sqlDB, cfg.Database.Driver, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrator.Up(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
