package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"github.com/stokledger/backend/internal/interfaces/http/handler"
	"github.com/stokledger/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers served by the engine
type Handlers struct {
	System   *handler.SystemHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Supplier *handler.SupplierHandler
	Purchase *handler.PurchaseHandler
	Sale     *handler.SaleHandler
	Return   *handler.ReturnHandler
	Cash     *handler.CashHandler
	Report   *handler.ReportHandler
}

// EngineOptions configures the middleware chain of NewEngine
type EngineOptions struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	Tracing     middleware.TracingConfig
	Meter       metric.Meter
	Idempotency middleware.IdempotencyConfig
}

// NewEngine builds the gin engine: global middleware, /health and the
// /api/v1 ledger routes
func NewEngine(h Handlers, opts EngineOptions) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	if len(opts.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = opts.HTTP.CORSAllowOrigins
	}
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.TracingWithConfig(opts.Tracing),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		middleware.HTTPMetrics(opts.Meter),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(opts.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	NewRouter(engine, WithMiddleware(middleware.Idempotency(opts.Idempotency))).
		Register(ledgerGroups(h)...).
		Setup()

	return engine, nil
}

func ledgerGroups(h Handlers) []RouteRegistrar {
	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	categories := NewDomainGroup("categories", "/categories").
		POST("", h.Category.Create).
		GET("", h.Category.List)

	products := NewDomainGroup("products", "/products").
		POST("", h.Product.Create).
		GET("", h.Product.List).
		GET("/barcode/:barcode", h.Product.GetByBarcode).
		GET("/:id", h.Product.GetByID).
		PUT("/:id", h.Product.Update).
		GET("/:id/price-rule", h.Product.GetPriceRule).
		PUT("/:id/price-rule", h.Product.SetPriceRule).
		GET("/:id/stock", h.Report.TotalStock).
		GET("/:id/lots", h.Report.ListLots)

	suppliers := NewDomainGroup("suppliers", "/suppliers").
		POST("", h.Supplier.Create).
		GET("", h.Supplier.List).
		GET("/:id", h.Supplier.GetByID).
		PUT("/:id", h.Supplier.Update)

	purchases := NewDomainGroup("purchase-receipts", "/purchase-receipts").
		POST("", h.Purchase.Create).
		GET("/:id", h.Purchase.GetByID).
		POST("/:id/lines", h.Purchase.PostLine)

	sales := NewDomainGroup("sale-receipts", "/sale-receipts").
		POST("", h.Sale.Open).
		GET("/today", h.Sale.Today).
		GET("/summary", h.Sale.Summary).
		GET("/:id", h.Sale.GetByID).
		POST("/:id/lines", h.Sale.PostLine).
		PUT("/:id/lines/:lineId", h.Sale.EditLine).
		DELETE("/:id/lines/:lineId", h.Sale.RemoveLine)

	supplierReturns := NewDomainGroup("supplier-returns", "/supplier-returns").
		POST("", h.Return.CreateSupplierReturn).
		GET("", h.Return.ListSupplierReturns).
		PUT("/:id/status", h.Return.TransitionSupplierReturn)

	customerReturns := NewDomainGroup("customer-returns", "/customer-returns").
		POST("", h.Return.CreateCustomerReturn).
		GET("", h.Return.ListCustomerReturns).
		PUT("/:id/status", h.Return.TransitionCustomerReturn)

	cash := NewDomainGroup("cash", "/cash").
		POST("/register", h.Cash.OpenRegister).
		GET("/register", h.Cash.Balance).
		GET("/movements", h.Cash.Movements)

	payments := NewDomainGroup("payments", "/payments").
		POST("", h.Cash.RecordPayment).
		GET("", h.Cash.ListPayments)

	reports := NewDomainGroup("reports", "/reports").
		GET("/low-stock", h.Report.LowStock).
		GET("/expiring-lots", h.Report.ExpiringLots).
		GET("/expired-lots", h.Report.ExpiredLots).
		GET("/inventory", h.Report.Inventory).
		GET("/monthly-summary", h.Report.MonthlySummary)

	return []RouteRegistrar{
		system, categories, products, suppliers, purchases, sales,
		supplierReturns, customerReturns, cash, payments, reports,
	}
}
