package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// CashRegisterRepository defines the interface for the cash register row
type CashRegisterRepository interface {
	// Create inserts the register with a zero balance. It fails with
	// ErrDuplicateSingleton when the register already exists.
	Create(ctx context.Context) (*CashRegister, error)

	// Get returns the register
	Get(ctx context.Context) (*CashRegister, error)

	// ApplyDelta adds amount to the balance atomically, creating the
	// register if it does not exist yet
	ApplyDelta(ctx context.Context, amount decimal.Decimal) error
}

// MovementFilter narrows a movement listing
type MovementFilter struct {
	shared.Filter
	Kind MovementKind
	From *time.Time
	To   *time.Time
}

// CashMovementRepository defines the interface for the cash movement log
type CashMovementRepository interface {
	// Insert appends a movement. It returns false, without error, when a
	// movement with the same key already exists.
	Insert(ctx context.Context, movement *CashMovement) (bool, error)

	// FindByKey finds a movement by its key
	FindByKey(ctx context.Context, key string) (*CashMovement, error)

	// FindAll lists movements, newest first
	FindAll(ctx context.Context, filter MovementFilter) ([]CashMovement, int64, error)

	// SumByKindBetween sums and counts movements of kind within [from, to)
	SumByKindBetween(ctx context.Context, kind MovementKind, from, to time.Time) (decimal.Decimal, int64, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindPaidBetween finds payments paid within [from, to), newest first
	FindPaidBetween(ctx context.Context, from, to time.Time) ([]Payment, error)

	// TotalsByCategoryBetween sums payments paid within [from, to) per category
	TotalsByCategoryBetween(ctx context.Context, from, to time.Time) (map[PaymentCategory]decimal.Decimal, error)

	// Save creates a payment
	Save(ctx context.Context, payment *Payment) error
}
