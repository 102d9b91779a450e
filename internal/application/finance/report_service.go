package finance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
)

// ReportService builds the monthly cash summary
type ReportService struct {
	movements finance.CashMovementRepository
	sales     trade.SaleReceiptRepository
	purchases trade.PurchaseReceiptRepository
	payments  finance.PaymentRepository
	registers finance.CashRegisterRepository
}

// NewReportService creates a new ReportService
func NewReportService(repos common.Repositories) *ReportService {
	return &ReportService{
		movements: repos.CashMovementRepo(),
		sales:     repos.SaleReceiptRepo(),
		purchases: repos.PurchaseReceiptRepo(),
		payments:  repos.PaymentRepo(),
		registers: repos.CashRegisterRepo(),
	}
}

// MonthlyLedgerSummary summarizes one calendar month. Sales are the cash
// movements of kind sale, including edit adjustments and voids; purchases
// are the totals of receipts dated in the month. Payments are grouped by
// category.
func (s *ReportService) MonthlyLedgerSummary(ctx context.Context, year, month int) (*finance.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, shared.InvalidInput("Month must be between 1 and 12")
	}
	if year < 1 {
		return nil, shared.InvalidInput("Year must be positive")
	}
	from, to := shared.MonthRange(year, timeMonth(month))

	sales, _, err := s.movements.SumByKindBetween(ctx, finance.MovementSale, from, to)
	if err != nil {
		return nil, err
	}
	_, salesCount, err := s.sales.SumTotalsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	refunds, _, err := s.movements.SumByKindBetween(ctx, finance.MovementRefund, from, to)
	if err != nil {
		return nil, err
	}
	purchases, purchaseCount, err := s.purchases.SumTotalsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.TotalsByCategoryBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	register, err := s.registers.Get(ctx)
	switch {
	case err == nil:
		balance = register.Balance
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	summary := finance.NewMonthlySummary(year, timeMonth(month), sales, salesCount, purchases, purchaseCount, payments, refunds.Neg(), balance)
	return &summary, nil
}

func timeMonth(month int) time.Month {
	return time.Month(month)
}
