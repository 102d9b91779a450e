package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// ReturnsLocation is where stock is placed when it comes back for a
// product that has no lot to credit
const ReturnsLocation = "RETURNS"

// Lot is a quantity of one product received together. The sum of a
// product's lot quantities is its available stock.
type Lot struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	LotCode    string
	Location   string
	Quantity   int64
	ExpiryDate *time.Time
	EnteredAt  time.Time
	UnitCost   decimal.Decimal // cost per unit captured when the stock was received
}

// NewLot creates a new lot
func NewLot(productID uuid.UUID, lotCode, location string, quantity int64, expiry *time.Time, unitCost decimal.Decimal) (*Lot, error) {
	lotCode = strings.TrimSpace(lotCode)
	location = strings.TrimSpace(location)

	if productID == uuid.Nil {
		return nil, shared.InvalidInput("Product ID cannot be empty")
	}
	if lotCode == "" {
		return nil, shared.InvalidInput("Lot code cannot be empty")
	}
	if location == "" {
		return nil, shared.InvalidInput("Location cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.InvalidInput("Lot quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.InvalidInput("Unit cost cannot be negative")
	}

	base := shared.NewBaseEntity()
	return &Lot{
		BaseEntity: base,
		ProductID:  productID,
		LotCode:    lotCode,
		Location:   location,
		Quantity:   quantity,
		ExpiryDate: normalizeExpiry(expiry),
		EnteredAt:  base.CreatedAt,
		UnitCost:   unitCost,
	}, nil
}

// Debit removes quantity from the lot. It fails without changing the lot
// when the lot holds less than quantity.
func (l *Lot) Debit(quantity int64) error {
	if quantity <= 0 {
		return shared.InvalidInput("Quantity must be positive")
	}
	if quantity > l.Quantity {
		return shared.NewInsufficientStockError(l.Quantity, quantity)
	}
	l.Quantity -= quantity
	l.Touch()
	return nil
}

// Credit adds quantity back to the lot without changing its unit cost
func (l *Lot) Credit(quantity int64) error {
	if quantity <= 0 {
		return shared.InvalidInput("Quantity must be positive")
	}
	l.Quantity += quantity
	l.Touch()
	return nil
}

// Merge adds a received quantity to the lot and blends its unit cost
// proportionally with the cost of the incoming units.
func (l *Lot) Merge(quantity int64, unitCost decimal.Decimal) error {
	if quantity <= 0 {
		return shared.InvalidInput("Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.InvalidInput("Unit cost cannot be negative")
	}
	l.UnitCost = BlendCost(l.Quantity, l.UnitCost, quantity, unitCost)
	l.Quantity += quantity
	l.Touch()
	return nil
}

// IsExpired reports whether the lot expired before the day of asOf
func (l *Lot) IsExpired(asOf time.Time) bool {
	if l.ExpiryDate == nil {
		return false
	}
	return l.ExpiryDate.Before(shared.DateOf(asOf))
}

// ExpiresWithin reports whether the lot expires between the day of asOf and
// days later, both inclusive
func (l *Lot) ExpiresWithin(asOf time.Time, days int) bool {
	if l.ExpiryDate == nil {
		return false
	}
	today := shared.DateOf(asOf)
	return !l.ExpiryDate.Before(today) && !l.ExpiryDate.After(today.AddDate(0, 0, days))
}

// DaysUntilExpiry returns the whole days between asOf and expiry, -1 if the lot does not expire
func (l *Lot) DaysUntilExpiry(asOf time.Time) int {
	if l.ExpiryDate == nil {
		return -1
	}
	return int(l.ExpiryDate.Sub(shared.DateOf(asOf)).Hours() / 24)
}

func normalizeExpiry(expiry *time.Time) *time.Time {
	if expiry == nil || expiry.IsZero() {
		return nil
	}
	day := shared.DateOf(*expiry)
	return &day
}
