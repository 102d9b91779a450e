package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	StockCode  string     `json:"stock_code" binding:"required,max=50"`
	Name       string     `json:"name" binding:"required,max=100"`
	CategoryID *uuid.UUID `json:"category_id"`
	Unit       string     `json:"unit" binding:"omitempty,oneof=adet kg lt m m2 paket"`
	Barcode    string     `json:"barcode" binding:"omitempty,max=13,numeric"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged; the stock code and unit cannot change.
type UpdateProductRequest struct {
	Name       *string    `json:"name" binding:"omitempty,max=100"`
	CategoryID *uuid.UUID `json:"category_id"`
	Barcode    *string    `json:"barcode" binding:"omitempty,max=13"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID  `json:"id"`
	StockCode  string     `json:"stock_code"`
	Name       string     `json:"name"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Unit       string     `json:"unit"`
	Barcode    string     `json:"barcode,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		StockCode:  p.StockCode,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Unit:       p.Unit.String(),
		Barcode:    p.Barcode,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SetPriceRuleRequest represents a manual edit of a product's pricing.
// Nil fields keep their current value, or the default when the product has no rule yet.
type SetPriceRuleRequest struct {
	CostPrice *decimal.Decimal `json:"cost_price"`
	Margin    *decimal.Decimal `json:"margin"`
	VAT       *decimal.Decimal `json:"vat"`
	Discount  *decimal.Decimal `json:"discount"`
}

// PriceRuleResponse represents a price rule in API responses
type PriceRuleResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProductID uuid.UUID              `json:"product_id"`
	CostPrice decimal.Decimal        `json:"cost_price"`
	Margin    decimal.Decimal        `json:"margin"`
	VAT       decimal.Decimal        `json:"vat"`
	Discount  decimal.Decimal        `json:"discount"`
	NetPrice  decimal.Decimal        `json:"net_price"`
	Breakdown catalog.PriceBreakdown `json:"breakdown"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ToPriceRuleResponse converts a domain PriceRule to PriceRuleResponse
func ToPriceRuleResponse(r *catalog.PriceRule) PriceRuleResponse {
	return PriceRuleResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		CostPrice: r.CostPrice,
		Margin:    r.Margin,
		VAT:       r.VAT,
		Discount:  r.Discount,
		NetPrice:  r.NetPrice,
		Breakdown: r.Breakdown(),
		UpdatedAt: r.UpdatedAt,
	}
}
