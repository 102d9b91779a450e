package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
)

// ReportDefaults are used when a report request leaves its parameter out
type ReportDefaults struct {
	LowStockThreshold int64
	ExpiryWindowDays  int
}

// ReportHandler handles stock queries and ledger reports
type ReportHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	reportService    *financeapp.ReportService
	defaults         ReportDefaults
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(inventoryService *inventoryapp.InventoryService, reportService *financeapp.ReportService, defaults ReportDefaults) *ReportHandler {
	return &ReportHandler{
		inventoryService: inventoryService,
		reportService:    reportService,
		defaults:         defaults,
	}
}

// StockTotalResponse is the body of GET /products/:id/stock
type StockTotalResponse struct {
	ProductID string `json:"product_id"`
	Total     int64  `json:"total"`
}

// TotalStock handles GET /products/:id/stock
func (h *ReportHandler) TotalStock(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	total, err := h.inventoryService.TotalStock(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, StockTotalResponse{ProductID: id.String(), Total: total})
}

// ListLots handles GET /products/:id/lots
func (h *ReportHandler) ListLots(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	lots, err := h.inventoryService.ListLots(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// LowStock handles GET /reports/low-stock?threshold=
func (h *ReportHandler) LowStock(c *gin.Context) {
	threshold := h.defaults.LowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.BadRequest(c, "threshold must be an integer")
			return
		}
		threshold = parsed
	}

	levels, err := h.inventoryService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}

// ExpiringLots handles GET /reports/expiring-lots?days=
func (h *ReportHandler) ExpiringLots(c *gin.Context) {
	days, err := queryInt(c, "days", h.defaults.ExpiryWindowDays)
	if err != nil {
		h.BadRequest(c, "days must be an integer")
		return
	}

	lots, err := h.inventoryService.ExpiringLots(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// ExpiredLots handles GET /reports/expired-lots
func (h *ReportHandler) ExpiredLots(c *gin.Context) {
	lots, err := h.inventoryService.ExpiredLots(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// Inventory handles GET /reports/inventory
func (h *ReportHandler) Inventory(c *gin.Context) {
	report, err := h.inventoryService.Report(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// MonthlySummary handles GET /reports/monthly-summary?year=&month=
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.MonthlyLedgerSummary(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
