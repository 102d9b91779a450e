package finance

import (
	"context"

	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/finance"
)

// CashLedger applies cash movements to the register. Like LotStore it must
// be built from the repositories of the transaction that causes the
// movement, so the movement row and the balance change commit together.
type CashLedger struct {
	registers finance.CashRegisterRepository
	movements finance.CashMovementRepository
}

// NewCashLedger creates a CashLedger over the given repositories
func NewCashLedger(registers finance.CashRegisterRepository, movements finance.CashMovementRepository) *CashLedger {
	return &CashLedger{
		registers: registers,
		movements: movements,
	}
}

// NewCashLedgerFrom creates a CashLedger over a repository set
func NewCashLedgerFrom(repos common.Repositories) *CashLedger {
	return NewCashLedger(repos.CashRegisterRepo(), repos.CashMovementRepo())
}

// Open creates the register with a zero balance. A second call fails with
// ErrDuplicateSingleton.
func (l *CashLedger) Open(ctx context.Context) (*finance.CashRegister, error) {
	return l.registers.Create(ctx)
}

// Post appends movement and adds its amount to the balance. When a
// movement with the same key was already posted nothing changes and Post
// reports false.
func (l *CashLedger) Post(ctx context.Context, movement *finance.CashMovement) (bool, error) {
	inserted, err := l.movements.Insert(ctx, movement)
	if err != nil || !inserted {
		return false, err
	}
	if err := l.registers.ApplyDelta(ctx, movement.Amount); err != nil {
		return false, err
	}
	return true, nil
}

// Balance returns the register
func (l *CashLedger) Balance(ctx context.Context) (*finance.CashRegister, error) {
	return l.registers.Get(ctx)
}
