package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/stokledger/backend/internal/application/trade"
)

// ReturnHandler handles supplier and customer return endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *tradeapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *tradeapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// CreateSupplierReturn handles POST /supplier-returns
func (h *ReturnHandler) CreateSupplierReturn(c *gin.Context) {
	var req tradeapp.CreateSupplierReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ret, err := h.returnService.CreateSupplierReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// TransitionSupplierReturn handles PUT /supplier-returns/:id/status
func (h *ReturnHandler) TransitionSupplierReturn(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.TransitionSupplierReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ret, err := h.returnService.TransitionSupplierReturn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// ListSupplierReturns handles GET /supplier-returns
func (h *ReturnHandler) ListSupplierReturns(c *gin.Context) {
	returns, err := h.returnService.ListSupplierReturns(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}

// CreateCustomerReturn handles POST /customer-returns
func (h *ReturnHandler) CreateCustomerReturn(c *gin.Context) {
	var req tradeapp.CreateCustomerReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ret, err := h.returnService.CreateCustomerReturn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// TransitionCustomerReturn handles PUT /customer-returns/:id/status
func (h *ReturnHandler) TransitionCustomerReturn(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.TransitionCustomerReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ret, err := h.returnService.TransitionCustomerReturn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// ListCustomerReturns handles GET /customer-returns
func (h *ReturnHandler) ListCustomerReturns(c *gin.Context) {
	returns, err := h.returnService.ListCustomerReturns(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, returns)
}
