package trade

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// SaleReceipt groups the lines of one sale. ReceiptNumber comes from an
// atomic sequence and Total always equals the sum of its current lines.
type SaleReceipt struct {
	shared.BaseEntity
	ReceiptNumber int64
	CashierRef    string
	Total         decimal.Decimal
	Lines         []SaleLine
}

// NewSaleReceipt creates an empty sale receipt
func NewSaleReceipt(receiptNumber int64, cashierRef string) (*SaleReceipt, error) {
	if receiptNumber <= 0 {
		return nil, shared.InvalidInput("Receipt number must be positive")
	}
	return &SaleReceipt{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: receiptNumber,
		CashierRef:    strings.TrimSpace(cashierRef),
		Total:         decimal.Zero,
	}, nil
}

// RecalculateTotal sets Total to the sum of lines and keeps them on the receipt
func (r *SaleReceipt) RecalculateTotal(lines []SaleLine) {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	r.Lines = lines
	r.Total = total
	r.Touch()
}

// SaleLine is one product sold on a receipt. UnitPrice is the net price at
// the time the line was first posted and does not change afterwards.
type SaleLine struct {
	shared.BaseEntity
	ReceiptID uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	Revision  int
}

// NewSaleLine creates a sale line priced at unitPrice
func NewSaleLine(receiptID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*SaleLine, error) {
	if receiptID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.InvalidInput("Receipt and product are required")
	}
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.InvalidInput("Unit price cannot be negative")
	}
	return &SaleLine{
		BaseEntity: shared.NewBaseEntity(),
		ReceiptID:  receiptID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		LineTotal:  LineTotal(unitPrice, quantity),
	}, nil
}

// ChangeQuantity sets a new quantity, recomputes the line total at the
// original unit price and bumps the revision
func (l *SaleLine) ChangeQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.InvalidInput("Quantity must be positive")
	}
	l.Quantity = quantity
	l.LineTotal = LineTotal(l.UnitPrice, quantity)
	l.Revision++
	l.Touch()
	return nil
}

// LineTotal returns unitPrice × quantity rounded half-up to 2 places
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}
