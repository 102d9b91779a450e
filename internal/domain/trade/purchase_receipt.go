package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// PurchaseReceipt is a supplier delivery. All of its lines share one lot code.
type PurchaseReceipt struct {
	shared.BaseEntity
	ReceiptNumber string
	SupplierID    uuid.UUID
	LotCode       string
	Total         decimal.Decimal
	ReceiptDate   time.Time
	RecordedBy    string
	Lines         []PurchaseLine
}

// NewPurchaseReceipt creates an empty purchase receipt
func NewPurchaseReceipt(receiptNumber string, supplierID uuid.UUID, lotCode string, receiptDate time.Time, recordedBy string) (*PurchaseReceipt, error) {
	receiptNumber = strings.TrimSpace(receiptNumber)
	if receiptNumber == "" {
		return nil, shared.InvalidInput("Receipt number cannot be empty")
	}
	if len(receiptNumber) > 50 {
		return nil, shared.InvalidInput("Receipt number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.InvalidInput("Supplier is required")
	}
	if lotCode == "" {
		return nil, shared.InvalidInput("Lot code cannot be empty")
	}
	if receiptDate.IsZero() {
		receiptDate = shared.Now()
	}
	return &PurchaseReceipt{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: receiptNumber,
		SupplierID:    supplierID,
		LotCode:       lotCode,
		Total:         decimal.Zero,
		ReceiptDate:   shared.DateOf(receiptDate),
		RecordedBy:    strings.TrimSpace(recordedBy),
	}, nil
}

// RecalculateTotal sets Total to the sum of lines and returns how much it changed
func (r *PurchaseReceipt) RecalculateTotal(lines []PurchaseLine) decimal.Decimal {
	previous := r.Total
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	r.Lines = lines
	r.Total = total
	r.Touch()
	return total.Sub(previous)
}

// PurchaseLine is one product received on a purchase receipt
type PurchaseLine struct {
	shared.BaseEntity
	ReceiptID  uuid.UUID
	ProductID  uuid.UUID
	Quantity   int64
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
	Location   string
	ExpiryDate *time.Time
}

// NewPurchaseLine creates a purchase line
func NewPurchaseLine(receiptID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal, location string, expiry *time.Time) (*PurchaseLine, error) {
	location = strings.TrimSpace(location)
	if receiptID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.InvalidInput("Receipt and product are required")
	}
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.InvalidInput("Unit price cannot be negative")
	}
	if !unitPrice.Equal(unitPrice.Round(2)) {
		return nil, shared.InvalidInput("Unit price cannot have more than 2 decimal places")
	}
	if location == "" {
		return nil, shared.InvalidInput("Location cannot be empty")
	}
	if expiry != nil {
		day := shared.DateOf(*expiry)
		expiry = &day
	}
	return &PurchaseLine{
		BaseEntity: shared.NewBaseEntity(),
		ReceiptID:  receiptID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		LineTotal:  LineTotal(unitPrice, quantity),
		Location:   location,
		ExpiryDate: expiry,
	}, nil
}
