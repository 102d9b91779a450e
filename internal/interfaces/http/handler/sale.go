package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/stokledger/backend/internal/application/trade"
	"github.com/stokledger/backend/internal/infrastructure/logger"
)

// SaleHandler handles till (sale receipt) endpoints
type SaleHandler struct {
	BaseHandler
	saleService *tradeapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *tradeapp.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// SaleLineBody is the body of the sale line endpoints
type SaleLineBody struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"gt=0"`
}

// Open handles POST /sale-receipts. An empty body is allowed; the
// cashier defaults to the X-Cashier header.
func (h *SaleHandler) Open(c *gin.Context) {
	var req tradeapp.OpenSaleReceiptRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}
	ctx := c.Request.Context()
	if req.CashierRef == "" {
		req.CashierRef = logger.GetCashier(ctx)
	}

	receipt, err := h.saleService.OpenSaleReceipt(ctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// GetByID handles GET /sale-receipts/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.saleService.GetSaleReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// Today handles GET /sale-receipts/today
func (h *SaleHandler) Today(c *gin.Context) {
	receipts, err := h.saleService.ListTodayReceipts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipts)
}

// Summary handles GET /sale-receipts/summary
func (h *SaleHandler) Summary(c *gin.Context) {
	summary, err := h.saleService.SalesSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// PostLine handles POST /sale-receipts/:id/lines
func (h *SaleHandler) PostLine(c *gin.Context) {
	receiptID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	h.postLine(c, receiptID, nil)
}

// EditLine handles PUT /sale-receipts/:id/lines/:lineId, replacing the
// line's quantity
func (h *SaleHandler) EditLine(c *gin.Context) {
	receiptID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseID(c, "lineId")
	if !ok {
		return
	}
	h.postLine(c, receiptID, &lineID)
}

func (h *SaleHandler) postLine(c *gin.Context, receiptID uuid.UUID, lineID *uuid.UUID) {
	var body SaleLineBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.saleService.PostSaleLine(c.Request.Context(), tradeapp.PostSaleLineRequest{
		ReceiptID: receiptID,
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
		LineID:    lineID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if lineID != nil {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// RemoveLine handles DELETE /sale-receipts/:id/lines/:lineId
func (h *SaleHandler) RemoveLine(c *gin.Context) {
	receiptID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.ParseID(c, "lineId")
	if !ok {
		return
	}

	receipt, err := h.saleService.RemoveSaleLine(c.Request.Context(), receiptID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}
