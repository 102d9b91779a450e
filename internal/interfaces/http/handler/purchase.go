package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	tradeapp "github.com/stokledger/backend/internal/application/trade"
	"github.com/stokledger/backend/internal/infrastructure/logger"
)

// PurchaseHandler handles purchase receipt endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseLineBody is the body of POST /purchase-receipts/:id/lines
type PurchaseLineBody struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Location   string          `json:"location" binding:"required,max=50"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// Create handles POST /purchase-receipts.
// RecordedBy falls back to the X-Cashier header.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	ctx := c.Request.Context()
	if req.RecordedBy == "" {
		req.RecordedBy = logger.GetCashier(ctx)
	}

	receipt, err := h.purchaseService.CreatePurchaseReceipt(ctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// GetByID handles GET /purchase-receipts/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.purchaseService.GetPurchaseReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receipt)
}

// PostLine handles POST /purchase-receipts/:id/lines
func (h *PurchaseHandler) PostLine(c *gin.Context) {
	receiptID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var body PurchaseLineBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.purchaseService.PostPurchaseLine(c.Request.Context(), tradeapp.PostPurchaseLineRequest{
		ReceiptID:  receiptID,
		ProductID:  body.ProductID,
		Quantity:   body.Quantity,
		UnitPrice:  body.UnitPrice,
		Location:   body.Location,
		ExpiryDate: body.ExpiryDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
