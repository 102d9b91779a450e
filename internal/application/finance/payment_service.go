package finance

import (
	"context"

	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
)

// PaymentService records expense payments paid out of the register
type PaymentService struct {
	txScope  common.TransactionScope
	payments finance.PaymentRepository
	recorder common.Recorder
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txScope common.TransactionScope, repos common.Repositories) *PaymentService {
	return &PaymentService{
		txScope:  txScope,
		payments: repos.PaymentRepo(),
		recorder: common.NoopRecorder{},
	}
}

// SetRecorder sets the recorder that receives cash measurements
func (s *PaymentService) SetRecorder(recorder common.Recorder) {
	s.recorder = recorder
}

// RecordPayment stores a payment and debits its amount from the register
// in the same transaction
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	paidOn := shared.Now()
	if req.PaidOn != nil {
		paidOn = *req.PaidOn
	}
	payment, err := finance.NewPayment(finance.PaymentCategory(req.Category), req.Amount, req.Description, paidOn, req.RecordedBy)
	if err != nil {
		return nil, err
	}

	var register *finance.CashRegister
	var movement *finance.CashMovement
	err = s.txScope.Execute(ctx, func(repos common.Repositories) error {
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		ledger := NewCashLedgerFrom(repos)
		movement, err = finance.NewCashMovement(finance.PaymentKey(payment.ID), finance.MovementPayment, payment.Amount.Neg(), payment.ID, payment.Description)
		if err != nil {
			return err
		}
		if _, err := ledger.Post(ctx, movement); err != nil {
			return err
		}
		register, err = ledger.Balance(ctx)
		return err
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "record_payment", err)
		return nil, err
	}
	s.recorder.CashPosted(ctx, string(movement.Kind), movement.Amount)

	return &RecordPaymentResult{
		Payment:  ToPaymentResponse(payment),
		Register: ToCashRegisterResponse(register),
	}, nil
}

// List returns payments paid in a calendar month, newest first
func (s *PaymentService) List(ctx context.Context, year int, month int) ([]PaymentResponse, error) {
	if month < 1 || month > 12 {
		return nil, shared.InvalidInput("Month must be between 1 and 12")
	}
	from, to := shared.MonthRange(year, timeMonth(month))
	payments, err := s.payments.FindPaidBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = ToPaymentResponse(&payments[i])
	}
	return out, nil
}
