package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	"github.com/stokledger/backend/internal/infrastructure/logger"
)

// CashHandler handles the cash register and expense payment endpoints
type CashHandler struct {
	BaseHandler
	cashService    *financeapp.CashService
	paymentService *financeapp.PaymentService
}

// NewCashHandler creates a new CashHandler
func NewCashHandler(cashService *financeapp.CashService, paymentService *financeapp.PaymentService) *CashHandler {
	return &CashHandler{
		cashService:    cashService,
		paymentService: paymentService,
	}
}

// OpenRegister handles POST /cash/register
func (h *CashHandler) OpenRegister(c *gin.Context) {
	register, err := h.cashService.OpenRegister(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, register)
}

// Balance handles GET /cash/register
func (h *CashHandler) Balance(c *gin.Context) {
	register, err := h.cashService.Balance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, register)
}

// Movements handles GET /cash/movements
func (h *CashHandler) Movements(c *gin.Context) {
	var filter financeapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.cashService.Movements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RecordPayment handles POST /payments.
// RecordedBy falls back to the X-Cashier header.
func (h *CashHandler) RecordPayment(c *gin.Context) {
	var req financeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	ctx := c.Request.Context()
	if req.RecordedBy == "" {
		req.RecordedBy = logger.GetCashier(ctx)
	}

	result, err := h.paymentService.RecordPayment(ctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListPayments handles GET /payments?year=&month=, defaulting to the current month
func (h *CashHandler) ListPayments(c *gin.Context) {
	year, month, ok := h.monthQuery(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.List(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
