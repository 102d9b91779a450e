package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/application/common"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
)

// SaleReceiptSequence names the counter sale receipt numbers are drawn from
const SaleReceiptSequence = "sale_receipt"

// SaleService runs the till: it opens receipts and posts, edits and removes
// sale lines. Every posting allocates stock, recomputes the receipt total
// and credits the register in one transaction.
type SaleService struct {
	txScope  common.TransactionScope
	receipts trade.SaleReceiptRepository
	lines    trade.SaleLineRepository
	recorder common.Recorder
	now      func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(txScope common.TransactionScope, repos common.Repositories) *SaleService {
	return &SaleService{
		txScope:  txScope,
		receipts: repos.SaleReceiptRepo(),
		lines:    repos.SaleLineRepo(),
		recorder: common.NoopRecorder{},
		now:      shared.Now,
	}
}

// SetRecorder sets the recorder that receives stock and cash measurements
func (s *SaleService) SetRecorder(recorder common.Recorder) {
	s.recorder = recorder
}

// OpenSaleReceipt opens an empty receipt numbered from the receipt sequence
func (s *SaleService) OpenSaleReceipt(ctx context.Context, req OpenSaleReceiptRequest) (*SaleReceiptResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var receipt *trade.SaleReceipt
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		number, err := repos.SequenceRepo().Next(ctx, SaleReceiptSequence)
		if err != nil {
			return err
		}
		receipt, err = trade.NewSaleReceipt(number, req.CashierRef)
		if err != nil {
			return err
		}
		return repos.SaleReceiptRepo().Save(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	resp := ToSaleReceiptResponse(receipt)
	return &resp, nil
}

// PostSaleLine sells a product on a receipt, or changes the quantity of an
// existing line when LineID is set. The unit price is the product's net
// price when the line is first posted. On an edit the old quantity goes
// back to stock before the new one is taken, and only the difference in
// line total reaches the register.
func (s *SaleService) PostSaleLine(ctx context.Context, req PostSaleLineRequest) (*SaleLineResult, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var (
		line     *trade.SaleLine
		receipt  *trade.SaleReceipt
		movement *finance.CashMovement
		released int64
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		receipt, err = repos.SaleReceiptRepo().FindByIDForUpdate(ctx, req.ReceiptID)
		if err != nil {
			return err
		}
		if _, err := repos.ProductRepo().FindByIDForUpdate(ctx, req.ProductID); err != nil {
			return err
		}

		rule, err := repos.PriceRuleRepo().FindByProduct(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrPriceNotDefined
			}
			return err
		}

		if req.LineID != nil {
			line, err = s.findLine(ctx, repos, receipt.ID, *req.LineID)
			if err != nil {
				return err
			}
			if line.ProductID != req.ProductID {
				return shared.InvalidInput("The product of a sale line cannot change")
			}
			released = line.Quantity
		}

		// Check availability; an edited line's own quantity counts as available
		store := inventoryapp.NewLotStoreFrom(repos)
		total, err := store.Total(ctx, req.ProductID)
		if err != nil {
			return err
		}
		available := total + released
		if available == 0 {
			return shared.ErrOutOfStock
		}
		if available < req.Quantity {
			return shared.NewInsufficientStockError(available, req.Quantity)
		}

		if line == nil {
			line, err = trade.NewSaleLine(receipt.ID, req.ProductID, req.Quantity, rule.NetPrice)
			if err != nil {
				return err
			}
			movement, err = finance.NewCashMovement(
				finance.SaleLineKey(line.ID),
				finance.MovementSale,
				line.LineTotal,
				receipt.ID,
				fmt.Sprintf("Sale receipt %d", receipt.ReceiptNumber),
			)
			if err != nil {
				return err
			}
			movement.SaleLineID = &line.ID
		} else {
			if _, err := store.Release(ctx, line.ProductID, released); err != nil {
				return err
			}
			previous := line.LineTotal
			if err := line.ChangeQuantity(req.Quantity); err != nil {
				return err
			}
			if delta := line.LineTotal.Sub(previous); !delta.IsZero() {
				movement, err = finance.NewCashMovement(
					finance.SaleLineRevisionKey(line.ID, line.Revision),
					finance.MovementSale,
					delta,
					receipt.ID,
					fmt.Sprintf("Sale receipt %d adjustment", receipt.ReceiptNumber),
				)
				if err != nil {
					return err
				}
			}
		}

		if _, err := store.Allocate(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
		if err := repos.SaleLineRepo().Save(ctx, line); err != nil {
			return err
		}
		if err := s.recalculate(ctx, repos, receipt); err != nil {
			return err
		}

		if movement != nil {
			if _, err := financeapp.NewCashLedgerFrom(repos).Post(ctx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "post_sale_line", err)
		return nil, err
	}

	if released > 0 {
		s.recorder.StockMoved(ctx, common.StockReleased, released)
	}
	s.recorder.StockMoved(ctx, common.StockAllocated, line.Quantity)
	result := &SaleLineResult{
		Line:    ToSaleLineResponse(line),
		Receipt: ToSaleReceiptResponse(receipt),
	}
	if movement != nil {
		s.recorder.CashPosted(ctx, string(movement.Kind), movement.Amount)
		resp := financeapp.ToCashMovementResponse(movement)
		result.Movement = &resp
	}
	return result, nil
}

// RemoveSaleLine deletes a line from a receipt, puts its quantity back in
// stock and reverses its current total in the register
func (s *SaleService) RemoveSaleLine(ctx context.Context, receiptID, lineID uuid.UUID) (*SaleReceiptResponse, error) {
	var (
		receipt  *trade.SaleReceipt
		line     *trade.SaleLine
		movement *finance.CashMovement
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		receipt, err = repos.SaleReceiptRepo().FindByIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		line, err = s.findLine(ctx, repos, receipt.ID, lineID)
		if err != nil {
			return err
		}

		if _, err := inventoryapp.NewLotStoreFrom(repos).Release(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
		if err := repos.SaleLineRepo().Delete(ctx, line.ID); err != nil {
			return err
		}
		if err := s.recalculate(ctx, repos, receipt); err != nil {
			return err
		}

		movement, err = finance.NewCashMovement(
			finance.SaleLineVoidKey(line.ID),
			finance.MovementSale,
			line.LineTotal.Neg(),
			receipt.ID,
			fmt.Sprintf("Sale receipt %d line removed", receipt.ReceiptNumber),
		)
		if err != nil {
			return err
		}
		_, err = financeapp.NewCashLedgerFrom(repos).Post(ctx, movement)
		return err
	})
	if err != nil {
		s.recorder.OperationRejected(ctx, "remove_sale_line", err)
		return nil, err
	}
	s.recorder.StockMoved(ctx, common.StockReleased, line.Quantity)
	s.recorder.CashPosted(ctx, string(movement.Kind), movement.Amount)

	resp := ToSaleReceiptResponse(receipt)
	return &resp, nil
}

// GetSaleReceipt returns a sale receipt with its lines
func (s *SaleService) GetSaleReceipt(ctx context.Context, id uuid.UUID) (*SaleReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.FindByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt.Lines = lines
	resp := ToSaleReceiptResponse(receipt)
	return &resp, nil
}

// ListTodayReceipts lists the receipts opened today, newest first
func (s *SaleService) ListTodayReceipts(ctx context.Context) ([]SaleReceiptResponse, error) {
	today := shared.DateOf(s.now())
	receipts, err := s.receipts.FindCreatedBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out := make([]SaleReceiptResponse, len(receipts))
	for i := range receipts {
		out[i] = ToSaleReceiptResponse(&receipts[i])
	}
	return out, nil
}

// SalesSummary returns today's and this month's receipt totals
func (s *SaleService) SalesSummary(ctx context.Context) (*SalesSummary, error) {
	now := s.now()
	today := shared.DateOf(now)
	todayTotal, todayCount, err := s.receipts.SumTotalsBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	monthStart, monthEnd := shared.MonthRange(today.Year(), today.Month())
	monthTotal, _, err := s.receipts.SumTotalsBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return &SalesSummary{
		TodayTotal:  todayTotal,
		TodayCount:  todayCount,
		MonthTotal:  monthTotal,
		GeneratedAt: now,
	}, nil
}

func (s *SaleService) findLine(ctx context.Context, repos common.Repositories, receiptID, lineID uuid.UUID) (*trade.SaleLine, error) {
	line, err := repos.SaleLineRepo().FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.ReceiptID != receiptID {
		return nil, shared.NotFoundError("Sale line", lineID)
	}
	return line, nil
}

// recalculate sets the receipt total from its persisted lines and saves it
func (s *SaleService) recalculate(ctx context.Context, repos common.Repositories, receipt *trade.SaleReceipt) error {
	lines, err := repos.SaleLineRepo().FindByReceipt(ctx, receipt.ID)
	if err != nil {
		return err
	}
	receipt.RecalculateTotal(lines)
	return repos.SaleReceiptRepo().Save(ctx, receipt)
}
