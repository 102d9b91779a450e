package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterID is the fixed key of the only cash register row
const RegisterID = 1

// CashRegister holds the shop's cash balance. Exactly one row exists; the
// balance only changes by applying cash movements.
type CashRegister struct {
	ID        int
	Balance   decimal.Decimal
	UpdatedAt time.Time
}
