package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
)

// ReturnService handles goods going back to suppliers and coming back from
// customers
type ReturnService struct {
	txScope         common.TransactionScope
	supplierReturns trade.SupplierReturnRepository
	customerReturns trade.CustomerReturnRepository
	recorder        common.Recorder
}

// NewReturnService creates a new ReturnService
func NewReturnService(txScope common.TransactionScope, repos common.Repositories) *ReturnService {
	return &ReturnService{
		txScope:         txScope,
		supplierReturns: repos.SupplierReturnRepo(),
		customerReturns: repos.CustomerReturnRepo(),
		recorder:        common.NoopRecorder{},
	}
}

// SetRecorder sets the recorder that receives stock and cash measurements
func (s *ReturnService) SetRecorder(recorder common.Recorder) {
	s.recorder = recorder
}

// ==================== Supplier returns ====================

// CreateSupplierReturn opens a return to a supplier. When a lot is given
// the quantity leaves that lot immediately.
func (s *ReturnService) CreateSupplierReturn(ctx context.Context, req CreateSupplierReturnRequest) (*SupplierReturnResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var ret *trade.SupplierReturn
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		if _, err := repos.SupplierRepo().FindByID(ctx, req.SupplierID); err != nil {
			return err
		}
		if _, err := repos.ProductRepo().FindByID(ctx, req.ProductID); err != nil {
			return err
		}

		var err error
		ret, err = trade.NewSupplierReturn(req.ProductID, req.LotID, req.SupplierID, req.Quantity, req.Reason, req.Notes)
		if err != nil {
			return err
		}

		if ret.LotID != nil {
			lot, err := repos.LotRepo().FindByID(ctx, *ret.LotID)
			if err != nil {
				return err
			}
			if lot.ProductID != ret.ProductID {
				return shared.InvalidInput("Lot does not belong to the returned product")
			}
			if _, err := inventoryapp.NewLotStoreFrom(repos).DebitLot(ctx, lot.ID, ret.Quantity); err != nil {
				return err
			}
		}
		return repos.SupplierReturnRepo().Save(ctx, ret)
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "create_supplier_return", err)
		return nil, err
	}
	if ret.LotID != nil {
		s.recorder.StockMoved(ctx, common.StockReturnedSupplier, ret.Quantity)
	}

	resp := ToSupplierReturnResponse(ret)
	return &resp, nil
}

// TransitionSupplierReturn resolves a pending supplier return. A rejected
// return puts its quantity back on the lot it was taken from, once.
func (s *ReturnService) TransitionSupplierReturn(ctx context.Context, id uuid.UUID, req TransitionSupplierReturnRequest) (*SupplierReturnResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var (
		ret      *trade.SupplierReturn
		restored bool
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		ret, err = repos.SupplierReturnRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := ret.TransitionTo(trade.SupplierReturnStatus(req.Status)); err != nil {
			return err
		}

		if ret.NeedsStockRestore() {
			if _, err := inventoryapp.NewLotStoreFrom(repos).CreditLot(ctx, *ret.LotID, ret.Quantity); err != nil {
				return err
			}
			ret.MarkStockRestored()
			restored = true
		}
		return repos.SupplierReturnRepo().Save(ctx, ret)
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "transition_supplier_return", err)
		return nil, err
	}
	if restored {
		s.recorder.StockMoved(ctx, common.StockReleased, ret.Quantity)
	}

	resp := ToSupplierReturnResponse(ret)
	return &resp, nil
}

// ListSupplierReturns lists supplier returns, newest first
func (s *ReturnService) ListSupplierReturns(ctx context.Context) ([]SupplierReturnResponse, error) {
	returns, err := s.supplierReturns.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierReturnResponse, len(returns))
	for i := range returns {
		out[i] = ToSupplierReturnResponse(&returns[i])
	}
	return out, nil
}

// ==================== Customer returns ====================

// CreateCustomerReturn records goods brought back by a customer. When the
// return references a sale line the product must match, and together with
// the line's earlier non-rejected returns the quantity may not exceed what
// the line sold. An omitted refund defaults to the line's unit price.
// A return created as approved applies its effects right away.
func (s *ReturnService) CreateCustomerReturn(ctx context.Context, req CreateCustomerReturnRequest) (*CustomerReturnResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	if req.RefundAmount != nil && req.RefundAmount.IsNegative() {
		return nil, shared.InvalidInput("refund_amount cannot be negative")
	}

	var (
		ret     *trade.CustomerReturn
		effects *returnEffects
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		if _, err := repos.ProductRepo().FindByID(ctx, req.ProductID); err != nil {
			return err
		}

		refund := decimal.Zero
		if req.RefundAmount != nil {
			refund = *req.RefundAmount
		}
		if req.SaleLineID != nil {
			// the line lock serializes returns against the same line
			line, err := repos.SaleLineRepo().FindByIDForUpdate(ctx, *req.SaleLineID)
			if err != nil {
				return err
			}
			if line.ProductID != req.ProductID {
				return shared.InvalidInput("Sale line does not match the returned product")
			}
			returned, err := repos.CustomerReturnRepo().SumQuantityBySaleLine(ctx, line.ID)
			if err != nil {
				return err
			}
			if returned+req.Quantity > line.Quantity {
				return shared.InvalidInput(fmt.Sprintf(
					"Cannot return %d, the sale line sold %d and %d were already returned",
					req.Quantity, line.Quantity, returned,
				))
			}
			if req.RefundAmount == nil {
				refund = trade.LineTotal(line.UnitPrice, req.Quantity)
			}
		}

		var err error
		ret, err = trade.NewCustomerReturn(req.ProductID, req.SaleLineID, req.Quantity, req.Reason, req.Notes, trade.Resolution(req.Resolution), refund)
		if err != nil {
			return err
		}
		if req.Status != "" {
			if _, err := ret.TransitionTo(trade.CustomerReturnStatus(req.Status), nil); err != nil {
				return err
			}
		}

		effects, err = s.applyCustomerEffects(ctx, repos, ret)
		if err != nil {
			return err
		}
		return repos.CustomerReturnRepo().Save(ctx, ret)
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "create_customer_return", err)
		return nil, err
	}
	s.recordEffects(ctx, effects)

	resp := ToCustomerReturnResponse(ret)
	return &resp, nil
}

// TransitionCustomerReturn moves a customer return to status. The
// persisted status is read under a row lock and compared with the new one:
// only entering approved releases the stock and, for a refund, pays the
// customer out of the register. Approving an approved return changes
// nothing.
func (s *ReturnService) TransitionCustomerReturn(ctx context.Context, id uuid.UUID, req TransitionCustomerReturnRequest) (*CustomerReturnResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	var resolution *trade.Resolution
	if req.Resolution != nil {
		r := trade.Resolution(*req.Resolution)
		resolution = &r
	}

	var (
		ret     *trade.CustomerReturn
		effects *returnEffects
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		ret, err = repos.CustomerReturnRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if _, err := ret.TransitionTo(trade.CustomerReturnStatus(req.Status), resolution); err != nil {
			return err
		}

		effects, err = s.applyCustomerEffects(ctx, repos, ret)
		if err != nil {
			return err
		}
		return repos.CustomerReturnRepo().Save(ctx, ret)
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "transition_customer_return", err)
		return nil, err
	}
	s.recordEffects(ctx, effects)

	resp := ToCustomerReturnResponse(ret)
	return &resp, nil
}

// ListCustomerReturns lists customer returns, newest first
func (s *ReturnService) ListCustomerReturns(ctx context.Context) ([]CustomerReturnResponse, error) {
	returns, err := s.customerReturns.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CustomerReturnResponse, len(returns))
	for i := range returns {
		out[i] = ToCustomerReturnResponse(&returns[i])
	}
	return out, nil
}

type returnEffects struct {
	released int64
	refund   decimal.Decimal
}

// applyCustomerEffects releases the returned quantity and posts the refund
// if the return is approved and its effects have not been applied yet
func (s *ReturnService) applyCustomerEffects(ctx context.Context, repos common.Repositories, ret *trade.CustomerReturn) (*returnEffects, error) {
	if !ret.NeedsEffects() {
		return nil, nil
	}

	if _, err := inventoryapp.NewLotStoreFrom(repos).Release(ctx, ret.ProductID, ret.Quantity); err != nil {
		return nil, err
	}
	effects := &returnEffects{released: ret.Quantity, refund: decimal.Zero}

	if refund := ret.RefundDue(); refund.IsPositive() {
		movement, err := finance.NewCashMovement(
			finance.RefundKey(ret.ID),
			finance.MovementRefund,
			refund.Neg(),
			ret.ID,
			fmt.Sprintf("Refund for customer return: %s", ret.Reason),
		)
		if err != nil {
			return nil, err
		}
		posted, err := financeapp.NewCashLedgerFrom(repos).Post(ctx, movement)
		if err != nil {
			return nil, err
		}
		if posted {
			effects.refund = movement.Amount
		}
	}

	ret.MarkEffectsApplied()
	return effects, nil
}

func (s *ReturnService) recordEffects(ctx context.Context, effects *returnEffects) {
	if effects == nil {
		return
	}
	s.recorder.StockMoved(ctx, common.StockReleased, effects.released)
	if !effects.refund.IsZero() {
		s.recorder.CashPosted(ctx, string(finance.MovementRefund), effects.refund)
	}
}
