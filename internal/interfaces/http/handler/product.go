package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stokledger/backend/internal/application/catalog"
)

// ProductHandler handles product and price rule endpoints
type ProductHandler struct {
	BaseHandler
	productService   *catalogapp.ProductService
	priceRuleService *catalogapp.PriceRuleService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, priceRuleService *catalogapp.PriceRuleService) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		priceRuleService: priceRuleService,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByBarcode handles GET /products/barcode/:barcode
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productService.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetPriceRule handles GET /products/:id/price-rule
func (h *ProductHandler) GetPriceRule(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rule, err := h.priceRuleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// SetPriceRule handles PUT /products/:id/price-rule
func (h *ProductHandler) SetPriceRule(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.SetPriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rule, err := h.priceRuleService.Set(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}
