package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/finance"
)

// CashRegisterResponse represents the register in API responses
type CashRegisterResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCashRegisterResponse converts the domain register to CashRegisterResponse
func ToCashRegisterResponse(r *finance.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		Balance:   r.Balance,
		UpdatedAt: r.UpdatedAt,
	}
}

// CashMovementResponse represents a cash movement in API responses
type CashMovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	Key         string          `json:"key"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	SaleLineID  *uuid.UUID      `json:"sale_line_id,omitempty"`
	SourceID    uuid.UUID       `json:"source_id"`
	Description string          `json:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// ToCashMovementResponse converts a domain CashMovement to CashMovementResponse
func ToCashMovementResponse(m *finance.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		ID:          m.ID,
		Key:         m.Key,
		Kind:        string(m.Kind),
		Amount:      m.Amount,
		SaleLineID:  m.SaleLineID,
		SourceID:    m.SourceID,
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
	}
}

// MovementListFilter represents filter options for listing movements
type MovementListFilter struct {
	Kind     string     `form:"kind" json:"kind" binding:"omitempty,oneof=sale purchase refund payment"`
	From     *time.Time `form:"from" json:"from"`
	To       *time.Time `form:"to" json:"to"`
	Page     int        `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=100"`
}

// RecordPaymentRequest represents a request to record an expense payment
type RecordPaymentRequest struct {
	Category    string          `json:"category" binding:"required,oneof=invoice rent salary tax electricity water internet shipping other"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=200"`
	PaidOn      *time.Time      `json:"paid_on"`
	RecordedBy  string          `json:"recorded_by" binding:"omitempty,max=100"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PaidOn      time.Time       `json:"paid_on"`
	RecordedBy  string          `json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Category:    string(p.Category),
		Amount:      p.Amount,
		Description: p.Description,
		PaidOn:      p.PaidOn,
		RecordedBy:  p.RecordedBy,
		CreatedAt:   p.CreatedAt,
	}
}

// RecordPaymentResult is a recorded payment and the register after the debit
type RecordPaymentResult struct {
	Payment  PaymentResponse      `json:"payment"`
	Register CashRegisterResponse `json:"register"`
}
