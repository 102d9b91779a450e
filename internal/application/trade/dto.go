package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/stokledger/backend/internal/application/catalog"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	"github.com/stokledger/backend/internal/domain/trade"
)

// ==================== Purchase Receipt DTOs ====================

// CreatePurchaseReceiptRequest represents a request to record a supplier delivery
type CreatePurchaseReceiptRequest struct {
	ReceiptNumber string     `json:"receipt_number" binding:"required,max=50"`
	SupplierID    uuid.UUID  `json:"supplier_id" binding:"required"`
	ReceiptDate   *time.Time `json:"receipt_date"`
	RecordedBy    string     `json:"recorded_by" binding:"omitempty,max=100"`
}

// PostPurchaseLineRequest represents a request to add a line to a purchase receipt
type PostPurchaseLineRequest struct {
	ReceiptID  uuid.UUID       `json:"receipt_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   int64           `json:"quantity" binding:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Location   string          `json:"location" binding:"required,max=50"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// PurchaseReceiptResponse represents a purchase receipt in API responses
type PurchaseReceiptResponse struct {
	ID            uuid.UUID              `json:"id"`
	ReceiptNumber string                 `json:"receipt_number"`
	SupplierID    uuid.UUID              `json:"supplier_id"`
	LotCode       string                 `json:"lot_code"`
	Total         decimal.Decimal        `json:"total"`
	ReceiptDate   time.Time              `json:"receipt_date"`
	RecordedBy    string                 `json:"recorded_by,omitempty"`
	Lines         []PurchaseLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// PurchaseLineResponse represents a purchase line in API responses
type PurchaseLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	ReceiptID  uuid.UUID       `json:"receipt_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	Location   string          `json:"location"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}

// PurchaseLineResult is the outcome of posting a purchase line: the line,
// the receipt with its new total, the recomputed price rule and the
// register after the purchase debit
type PurchaseLineResult struct {
	Line      PurchaseLineResponse            `json:"line"`
	Receipt   PurchaseReceiptResponse         `json:"receipt"`
	PriceRule catalogapp.PriceRuleResponse    `json:"price_rule"`
	Register  financeapp.CashRegisterResponse `json:"register"`
}

// ToPurchaseReceiptResponse converts a domain PurchaseReceipt to PurchaseReceiptResponse
func ToPurchaseReceiptResponse(r *trade.PurchaseReceipt) PurchaseReceiptResponse {
	resp := PurchaseReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		SupplierID:    r.SupplierID,
		LotCode:       r.LotCode,
		Total:         r.Total,
		ReceiptDate:   r.ReceiptDate,
		RecordedBy:    r.RecordedBy,
		CreatedAt:     r.CreatedAt,
	}
	for i := range r.Lines {
		resp.Lines = append(resp.Lines, ToPurchaseLineResponse(&r.Lines[i]))
	}
	return resp
}

// ToPurchaseLineResponse converts a domain PurchaseLine to PurchaseLineResponse
func ToPurchaseLineResponse(l *trade.PurchaseLine) PurchaseLineResponse {
	return PurchaseLineResponse{
		ID:         l.ID,
		ReceiptID:  l.ReceiptID,
		ProductID:  l.ProductID,
		Quantity:   l.Quantity,
		UnitPrice:  l.UnitPrice,
		LineTotal:  l.LineTotal,
		Location:   l.Location,
		ExpiryDate: l.ExpiryDate,
	}
}

// ==================== Sale Receipt DTOs ====================

// OpenSaleReceiptRequest represents a request to open a sale receipt
type OpenSaleReceiptRequest struct {
	CashierRef string `json:"cashier_ref" binding:"omitempty,max=100"`
}

// PostSaleLineRequest represents a request to sell a product on a receipt.
// When LineID is set the existing line's quantity is replaced.
type PostSaleLineRequest struct {
	ReceiptID uuid.UUID  `json:"receipt_id" binding:"required"`
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int64      `json:"quantity" binding:"gt=0"`
	LineID    *uuid.UUID `json:"line_id"`
}

// SaleReceiptResponse represents a sale receipt in API responses
type SaleReceiptResponse struct {
	ID            uuid.UUID          `json:"id"`
	ReceiptNumber int64              `json:"receipt_number"`
	CashierRef    string             `json:"cashier_ref,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleLineResponse represents a sale line in API responses
type SaleLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ReceiptID uuid.UUID       `json:"receipt_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Revision  int             `json:"revision"`
}

// SaleLineResult is the outcome of posting a sale line. Movement is nil
// when an edit left the line total unchanged.
type SaleLineResult struct {
	Line     SaleLineResponse                 `json:"line"`
	Receipt  SaleReceiptResponse              `json:"receipt"`
	Movement *financeapp.CashMovementResponse `json:"movement,omitempty"`
}

// SalesSummary is the running sales figure shown at the till
type SalesSummary struct {
	TodayTotal  decimal.Decimal `json:"today_total"`
	TodayCount  int64           `json:"today_count"`
	MonthTotal  decimal.Decimal `json:"month_total"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// ToSaleReceiptResponse converts a domain SaleReceipt to SaleReceiptResponse
func ToSaleReceiptResponse(r *trade.SaleReceipt) SaleReceiptResponse {
	resp := SaleReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		CashierRef:    r.CashierRef,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt,
	}
	for i := range r.Lines {
		resp.Lines = append(resp.Lines, ToSaleLineResponse(&r.Lines[i]))
	}
	return resp
}

// ToSaleLineResponse converts a domain SaleLine to SaleLineResponse
func ToSaleLineResponse(l *trade.SaleLine) SaleLineResponse {
	return SaleLineResponse{
		ID:        l.ID,
		ReceiptID: l.ReceiptID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		LineTotal: l.LineTotal,
		Revision:  l.Revision,
	}
}

// ==================== Return DTOs ====================

// CreateSupplierReturnRequest represents a request to send stock back to a supplier
type CreateSupplierReturnRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	LotID      *uuid.UUID `json:"lot_id"`
	SupplierID uuid.UUID  `json:"supplier_id" binding:"required"`
	Quantity   int64      `json:"quantity" binding:"gt=0"`
	Reason     string     `json:"reason" binding:"required,max=200"`
	Notes      string     `json:"notes" binding:"omitempty,max=500"`
}

// TransitionSupplierReturnRequest represents a request to resolve a supplier return
type TransitionSupplierReturnRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted rejected exchanged"`
}

// SupplierReturnResponse represents a supplier return in API responses
type SupplierReturnResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	LotID         *uuid.UUID `json:"lot_id,omitempty"`
	SupplierID    uuid.UUID  `json:"supplier_id"`
	Quantity      int64      `json:"quantity"`
	Reason        string     `json:"reason"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	OpenedAt      time.Time  `json:"opened_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	StockRestored bool       `json:"stock_restored"`
}

// ToSupplierReturnResponse converts a domain SupplierReturn to SupplierReturnResponse
func ToSupplierReturnResponse(r *trade.SupplierReturn) SupplierReturnResponse {
	return SupplierReturnResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		LotID:         r.LotID,
		SupplierID:    r.SupplierID,
		Quantity:      r.Quantity,
		Reason:        r.Reason,
		Notes:         r.Notes,
		Status:        string(r.Status),
		OpenedAt:      r.OpenedAt,
		ResolvedAt:    r.ResolvedAt,
		StockRestored: r.StockRestored,
	}
}

// CreateCustomerReturnRequest represents a request to take goods back from a customer.
// A return may be created directly in its final status.
type CreateCustomerReturnRequest struct {
	SaleLineID   *uuid.UUID       `json:"sale_line_id"`
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	Quantity     int64            `json:"quantity" binding:"gt=0"`
	Reason       string           `json:"reason" binding:"required,max=200"`
	Notes        string           `json:"notes" binding:"omitempty,max=500"`
	Status       string           `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	Resolution   string           `json:"resolution" binding:"omitempty,oneof=refund exchange coupon"`
	RefundAmount *decimal.Decimal `json:"refund_amount"`
}

// TransitionCustomerReturnRequest represents a request to process a customer return
type TransitionCustomerReturnRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending approved rejected"`
	Resolution *string `json:"resolution" binding:"omitempty,oneof=refund exchange coupon"`
}

// CustomerReturnResponse represents a customer return in API responses
type CustomerReturnResponse struct {
	ID             uuid.UUID       `json:"id"`
	SaleLineID     *uuid.UUID      `json:"sale_line_id,omitempty"`
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       int64           `json:"quantity"`
	Reason         string          `json:"reason"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
	Resolution     string          `json:"resolution,omitempty"`
	RefundAmount   decimal.Decimal `json:"refund_amount"`
	OpenedAt       time.Time       `json:"opened_at"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty"`
	EffectsApplied bool            `json:"effects_applied"`
}

// ToCustomerReturnResponse converts a domain CustomerReturn to CustomerReturnResponse
func ToCustomerReturnResponse(r *trade.CustomerReturn) CustomerReturnResponse {
	return CustomerReturnResponse{
		ID:             r.ID,
		SaleLineID:     r.SaleLineID,
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		Reason:         r.Reason,
		Notes:          r.Notes,
		Status:         string(r.Status),
		Resolution:     string(r.Resolution),
		RefundAmount:   r.RefundAmount,
		OpenedAt:       r.OpenedAt,
		ProcessedAt:    r.ProcessedAt,
		EffectsApplied: r.EffectsApplied,
	}
}
