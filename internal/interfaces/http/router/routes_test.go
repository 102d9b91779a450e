package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	catalogapp "github.com/stokledger/backend/internal/application/catalog"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	partnerapp "github.com/stokledger/backend/internal/application/partner"
	tradeapp "github.com/stokledger/backend/internal/application/trade"
	"github.com/stokledger/backend/internal/infrastructure/cache"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"github.com/stokledger/backend/internal/infrastructure/persistence"
	"github.com/stokledger/backend/internal/infrastructure/persistence/testdb"
	"github.com/stokledger/backend/internal/interfaces/http/handler"
	"github.com/stokledger/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

type apiResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

func (r apiResponse) data() map[string]any {
	data, _ := r.Body["data"].(map[string]any)
	return data
}

func (r apiResponse) errorCode() string {
	errInfo, _ := r.Body["error"].(map[string]any)
	code, _ := errInfo["code"].(string)
	return code
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	db := testdb.NewSQLite(t)
	repos := persistence.NewRepositories(db)
	txScope := persistence.NewGormTransactionScope(db)

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	handlers := Handlers{
		System:   handler.NewSystemHandler("ledger", "test", nil),
		Category: handler.NewCategoryHandler(catalogapp.NewCategoryService(repos.CategoryRepo())),
		Product: handler.NewProductHandler(
			catalogapp.NewProductService(repos.ProductRepo(), repos.CategoryRepo()),
			catalogapp.NewPriceRuleService(txScope, repos.PriceRuleRepo()),
		),
		Supplier: handler.NewSupplierHandler(partnerapp.NewSupplierService(repos.SupplierRepo())),
		Purchase: handler.NewPurchaseHandler(tradeapp.NewPurchaseService(txScope, repos)),
		Sale:     handler.NewSaleHandler(tradeapp.NewSaleService(txScope, repos)),
		Return:   handler.NewReturnHandler(tradeapp.NewReturnService(txScope, repos)),
		Cash: handler.NewCashHandler(
			financeapp.NewCashService(txScope, repos),
			financeapp.NewPaymentService(txScope, repos),
		),
		Report: handler.NewReportHandler(
			inventoryapp.NewInventoryService(repos),
			financeapp.NewReportService(repos),
			handler.ReportDefaults{LowStockThreshold: 10, ExpiryWindowDays: 30},
		),
	}

	middleware.SetupValidator()
	engine, err := NewEngine(handlers, EngineOptions{
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 20},
		Idempotency: middleware.IdempotencyConfig{Store: store, TTL: time.Minute},
	})
	require.NoError(t, err)
	return &apiClient{t: t, engine: engine}
}

func (a *apiClient) do(method, path string, body any, headers ...string) apiResponse {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	resp := apiResponse{Code: w.Code, Header: w.Header()}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp.Body), w.Body.String())
	}
	return resp
}

func decimalField(t *testing.T, m map[string]any, key string) decimal.Decimal {
	t.Helper()
	raw, ok := m[key].(string)
	require.True(t, ok, "%s should be a decimal string, got %v", key, m[key])
	return decimal.RequireFromString(raw)
}

func TestLedgerAPI_PurchaseThenSell(t *testing.T) {
	api := newAPIClient(t)

	supplier := api.do(http.MethodPost, "/api/v1/suppliers", map[string]any{"company_name": "Acme Wholesale"})
	require.Equal(t, http.StatusCreated, supplier.Code, supplier.Body)
	supplierID := supplier.data()["id"].(string)

	product := api.do(http.MethodPost, "/api/v1/products", map[string]any{
		"stock_code": "MILK-1", "name": "Milk", "unit": "lt", "barcode": "8690000000011",
	})
	require.Equal(t, http.StatusCreated, product.Code, product.Body)
	productID := product.data()["id"].(string)

	byBarcode := api.do(http.MethodGet, "/api/v1/products/barcode/8690000000011", nil)
	require.Equal(t, http.StatusOK, byBarcode.Code)
	assert.Equal(t, productID, byBarcode.data()["id"])

	receipt := api.do(http.MethodPost, "/api/v1/purchase-receipts", map[string]any{
		"receipt_number": "INV-100", "supplier_id": supplierID,
	}, middleware.CashierHeader, "deniz")
	require.Equal(t, http.StatusCreated, receipt.Code, receipt.Body)
	assert.Equal(t, "deniz", receipt.data()["recorded_by"])
	receiptID := receipt.data()["id"].(string)

	line := api.do(http.MethodPost, "/api/v1/purchase-receipts/"+receiptID+"/lines", map[string]any{
		"product_id": productID, "quantity": 10, "unit_price": "10", "location": "A1",
	})
	require.Equal(t, http.StatusCreated, line.Code, line.Body)
	rule := line.data()["price_rule"].(map[string]any)
	assert.True(t, decimal.NewFromInt(15).Equal(decimalField(t, rule, "net_price")))
	register := line.data()["register"].(map[string]any)
	assert.True(t, decimal.NewFromInt(-100).Equal(decimalField(t, register, "balance")))

	stock := api.do(http.MethodGet, "/api/v1/products/"+productID+"/stock", nil)
	require.Equal(t, http.StatusOK, stock.Code)
	assert.Equal(t, float64(10), stock.data()["total"])

	sale := api.do(http.MethodPost, "/api/v1/sale-receipts", nil, middleware.CashierHeader, "deniz")
	require.Equal(t, http.StatusCreated, sale.Code, sale.Body)
	assert.Equal(t, "deniz", sale.data()["cashier_ref"])
	saleID := sale.data()["id"].(string)

	sold := api.do(http.MethodPost, "/api/v1/sale-receipts/"+saleID+"/lines", map[string]any{
		"product_id": productID, "quantity": 3,
	}, middleware.IdempotencyKeyHeader, "scan-1")
	require.Equal(t, http.StatusCreated, sold.Code, sold.Body)
	soldLine := sold.data()["line"].(map[string]any)
	assert.True(t, decimal.NewFromInt(45).Equal(decimalField(t, soldLine, "line_total")))

	t.Run("a retried scan is not sold twice", func(t *testing.T) {
		retry := api.do(http.MethodPost, "/api/v1/sale-receipts/"+saleID+"/lines", map[string]any{
			"product_id": productID, "quantity": 3,
		}, middleware.IdempotencyKeyHeader, "scan-1")
		assert.Equal(t, http.StatusCreated, retry.Code)
		assert.Equal(t, "true", retry.Header.Get(middleware.IdempotentReplayHeader))

		stock := api.do(http.MethodGet, "/api/v1/products/"+productID+"/stock", nil)
		assert.Equal(t, float64(7), stock.data()["total"])
	})

	t.Run("overselling reports the available quantity", func(t *testing.T) {
		short := api.do(http.MethodPost, "/api/v1/sale-receipts/"+saleID+"/lines", map[string]any{
			"product_id": productID, "quantity": 100,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, short.Code)
		assert.Equal(t, "ERR_INSUFFICIENT_STOCK", short.errorCode())
		details := short.Body["error"].(map[string]any)["details"].(map[string]any)
		assert.Equal(t, float64(7), details["available"])
		assert.Equal(t, float64(100), details["requested"])
	})

	t.Run("editing and removing the line restores stock", func(t *testing.T) {
		lineID := soldLine["id"].(string)
		edited := api.do(http.MethodPut, "/api/v1/sale-receipts/"+saleID+"/lines/"+lineID, map[string]any{
			"product_id": productID, "quantity": 1,
		})
		require.Equal(t, http.StatusOK, edited.Code, edited.Body)

		removed := api.do(http.MethodDelete, "/api/v1/sale-receipts/"+saleID+"/lines/"+lineID, nil)
		require.Equal(t, http.StatusOK, removed.Code, removed.Body)
		assert.True(t, decimal.Zero.Equal(decimalField(t, removed.data(), "total")))

		stock := api.do(http.MethodGet, "/api/v1/products/"+productID+"/stock", nil)
		assert.Equal(t, float64(10), stock.data()["total"])
	})

	t.Run("cash reflects purchase and sale", func(t *testing.T) {
		balance := api.do(http.MethodGet, "/api/v1/cash/register", nil)
		require.Equal(t, http.StatusOK, balance.Code)
		assert.True(t, decimal.NewFromInt(-100).Equal(decimalField(t, balance.data(), "balance")))

		movements := api.do(http.MethodGet, "/api/v1/cash/movements?kind=purchase", nil)
		require.Equal(t, http.StatusOK, movements.Code)
		assert.Equal(t, float64(1), movements.Body["meta"].(map[string]any)["total"])
	})
}

func TestLedgerAPI_Errors(t *testing.T) {
	api := newAPIClient(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"unknown product", http.MethodGet, "/api/v1/products/6f1c2a52-8a51-4a55-b7a4-1f5b0d3c9e10", nil, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"malformed id", http.MethodGet, "/api/v1/products/abc", nil, http.StatusBadRequest, "ERR_BAD_REQUEST"},
		{"missing fields", http.MethodPost, "/api/v1/products", map[string]any{"name": "No code"}, http.StatusBadRequest, "ERR_VALIDATION"},
		{"bad unit", http.MethodPost, "/api/v1/products", map[string]any{"stock_code": "X", "name": "X", "unit": "barrel"}, http.StatusBadRequest, "ERR_VALIDATION"},
		{"no register yet", http.MethodGet, "/api/v1/cash/register", nil, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"bad month", http.MethodGet, "/api/v1/reports/monthly-summary?year=2024&month=13", nil, http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"bad threshold", http.MethodGet, "/api/v1/reports/low-stock?threshold=lots", nil, http.StatusBadRequest, "ERR_BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.Code, resp.Body)
			assert.Equal(t, tt.code, resp.errorCode())
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}

	t.Run("second register is a conflict", func(t *testing.T) {
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/cash/register", nil).Code)
		again := api.do(http.MethodPost, "/api/v1/cash/register", nil)
		assert.Equal(t, http.StatusConflict, again.Code)
		assert.Equal(t, "ERR_DUPLICATE_SINGLETON", again.errorCode())
	})
}

func TestLedgerAPI_Health(t *testing.T) {
	api := newAPIClient(t)

	resp := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.data()["status"])
}
