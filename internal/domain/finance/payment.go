package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// PaymentCategory represents what an outgoing payment was for
type PaymentCategory string

const (
	PaymentInvoice     PaymentCategory = "invoice"
	PaymentRent        PaymentCategory = "rent"
	PaymentSalary      PaymentCategory = "salary"
	PaymentTax         PaymentCategory = "tax"
	PaymentElectricity PaymentCategory = "electricity"
	PaymentWater       PaymentCategory = "water"
	PaymentInternet    PaymentCategory = "internet"
	PaymentShipping    PaymentCategory = "shipping"
	PaymentOther       PaymentCategory = "other"
)

// AllPaymentCategories returns every category in reporting order
func AllPaymentCategories() []PaymentCategory {
	return []PaymentCategory{
		PaymentInvoice, PaymentRent, PaymentSalary, PaymentTax, PaymentElectricity,
		PaymentWater, PaymentInternet, PaymentShipping, PaymentOther,
	}
}

// IsValid checks if the category is a valid PaymentCategory
func (c PaymentCategory) IsValid() bool {
	for _, known := range AllPaymentCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Payment is an expense paid out of the cash register
type Payment struct {
	shared.BaseEntity
	Category    PaymentCategory
	Amount      decimal.Decimal
	Description string
	PaidOn      time.Time
	RecordedBy  string
}

// NewPayment creates a payment
func NewPayment(category PaymentCategory, amount decimal.Decimal, description string, paidOn time.Time, recordedBy string) (*Payment, error) {
	description = strings.TrimSpace(description)
	if !category.IsValid() {
		return nil, shared.InvalidInput(fmt.Sprintf("Unknown payment category %q", category))
	}
	if !amount.IsPositive() {
		return nil, shared.InvalidInput("Payment amount must be positive")
	}
	if description == "" {
		return nil, shared.InvalidInput("Payment description cannot be empty")
	}
	if paidOn.IsZero() {
		paidOn = shared.Now()
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		Category:    category,
		Amount:      amount.Round(2),
		Description: description,
		PaidOn:      shared.DateOf(paidOn),
		RecordedBy:  strings.TrimSpace(recordedBy),
	}, nil
}
