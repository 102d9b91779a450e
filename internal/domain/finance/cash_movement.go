package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// MovementKind classifies a cash movement by the operation that caused it
type MovementKind string

const (
	MovementSale     MovementKind = "sale"
	MovementPurchase MovementKind = "purchase"
	MovementRefund   MovementKind = "refund"
	MovementPayment  MovementKind = "payment"
)

// IsValid checks if the kind is a valid MovementKind
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementSale, MovementPurchase, MovementRefund, MovementPayment:
		return true
	}
	return false
}

// CashMovement is an append-only entry of the cash ledger. Key is unique:
// posting a movement whose key already exists changes nothing.
type CashMovement struct {
	ID          uuid.UUID
	Key         string
	Kind        MovementKind
	Amount      decimal.Decimal // positive credits the register, negative debits it
	SaleLineID  *uuid.UUID      // set only on the initial credit of a sale line
	SourceID    uuid.UUID
	Description string
	OccurredAt  time.Time
}

// NewCashMovement creates a movement for the given idempotency key
func NewCashMovement(key string, kind MovementKind, amount decimal.Decimal, sourceID uuid.UUID, description string) (*CashMovement, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, shared.InvalidInput("Movement key cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.InvalidInput(fmt.Sprintf("Unknown movement kind %q", kind))
	}
	return &CashMovement{
		ID:          uuid.New(),
		Key:         key,
		Kind:        kind,
		Amount:      amount.Round(2),
		SourceID:    sourceID,
		Description: description,
		OccurredAt:  shared.Now(),
	}, nil
}

// SaleLineKey keys the initial cash credit of a sale line
func SaleLineKey(lineID uuid.UUID) string {
	return "sale_line:" + lineID.String()
}

// SaleLineRevisionKey keys the adjustment posted when a sale line is edited
func SaleLineRevisionKey(lineID uuid.UUID, revision int) string {
	return fmt.Sprintf("sale_line:%s:rev:%d", lineID, revision)
}

// SaleLineVoidKey keys the reversal posted when a sale line is removed
func SaleLineVoidKey(lineID uuid.UUID) string {
	return "sale_line:" + lineID.String() + ":void"
}

// PurchaseLineKey keys the cash debit of a purchase line
func PurchaseLineKey(lineID uuid.UUID) string {
	return "purchase_line:" + lineID.String()
}

// RefundKey keys the refund of a customer return
func RefundKey(returnID uuid.UUID) string {
	return "customer_return:" + returnID.String() + ":refund"
}

// PaymentKey keys the cash debit of a payment
func PaymentKey(paymentID uuid.UUID) string {
	return "payment:" + paymentID.String()
}
