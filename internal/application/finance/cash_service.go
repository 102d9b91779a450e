package finance

import (
	"context"

	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
)

// CashService exposes the cash register outside of the engines
type CashService struct {
	txScope   common.TransactionScope
	registers finance.CashRegisterRepository
	movements finance.CashMovementRepository
}

// NewCashService creates a new CashService
func NewCashService(txScope common.TransactionScope, repos common.Repositories) *CashService {
	return &CashService{
		txScope:   txScope,
		registers: repos.CashRegisterRepo(),
		movements: repos.CashMovementRepo(),
	}
}

// OpenRegister creates the cash register with a zero balance
func (s *CashService) OpenRegister(ctx context.Context) (*CashRegisterResponse, error) {
	var register *finance.CashRegister
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		register, err = NewCashLedgerFrom(repos).Open(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := ToCashRegisterResponse(register)
	return &resp, nil
}

// Balance returns the current register balance
func (s *CashService) Balance(ctx context.Context) (*CashRegisterResponse, error) {
	register, err := s.registers.Get(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToCashRegisterResponse(register)
	return &resp, nil
}

// Movements lists cash movements, newest first
func (s *CashService) Movements(ctx context.Context, filter MovementListFilter) (*shared.Paginated[CashMovementResponse], error) {
	if err := common.Validate(filter); err != nil {
		return nil, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := finance.MovementFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "occurred_at",
			OrderDir: "desc",
		},
		Kind: finance.MovementKind(filter.Kind),
		From: filter.From,
		To:   filter.To,
	}

	movements, total, err := s.movements.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	items := make([]CashMovementResponse, len(movements))
	for i := range movements {
		items[i] = ToCashMovementResponse(&movements[i])
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
