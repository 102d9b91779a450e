package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	catalogapp "github.com/stokledger/backend/internal/application/catalog"
	"github.com/stokledger/backend/internal/application/common"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
)

// PurchaseService records supplier deliveries. Posting a line receives the
// stock into the receipt's lot, reprices the product from its lot costs
// and debits the register, all in one transaction.
type PurchaseService struct {
	txScope  common.TransactionScope
	receipts trade.PurchaseReceiptRepository
	lines    trade.PurchaseLineRepository
	recorder common.Recorder
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(txScope common.TransactionScope, repos common.Repositories) *PurchaseService {
	return &PurchaseService{
		txScope:  txScope,
		receipts: repos.PurchaseReceiptRepo(),
		lines:    repos.PurchaseLineRepo(),
		recorder: common.NoopRecorder{},
	}
}

// SetRecorder sets the recorder that receives stock and cash measurements
func (s *PurchaseService) SetRecorder(recorder common.Recorder) {
	s.recorder = recorder
}

// CreatePurchaseReceipt opens a purchase receipt under the supplier's
// external receipt number and allocates the day's next lot code for it
func (s *PurchaseService) CreatePurchaseReceipt(ctx context.Context, req CreatePurchaseReceiptRequest) (*PurchaseReceiptResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	var receipt *trade.PurchaseReceipt
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		if _, err := repos.SupplierRepo().FindByID(ctx, req.SupplierID); err != nil {
			return err
		}

		exists, err := repos.PurchaseReceiptRepo().ExistsByReceiptNumber(ctx, req.ReceiptNumber)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Purchase receipt %s already exists", req.ReceiptNumber))
		}

		lotCode, err := inventoryapp.NewLotStoreFrom(repos).NextLotCode(ctx, shared.Now())
		if err != nil {
			return err
		}

		receiptDate := shared.Now()
		if req.ReceiptDate != nil {
			receiptDate = *req.ReceiptDate
		}
		receipt, err = trade.NewPurchaseReceipt(req.ReceiptNumber, req.SupplierID, lotCode, receiptDate, req.RecordedBy)
		if err != nil {
			return err
		}
		return repos.PurchaseReceiptRepo().Save(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseReceiptResponse(receipt)
	return &resp, nil
}

// PostPurchaseLine adds a line to a purchase receipt. The quantity enters
// the receipt's lot at the line's unit price, the receipt total is
// recomputed, the product's price rule is recalculated from the weighted
// average cost of its lots and the register is debited by the change in
// receipt total.
func (s *PurchaseService) PostPurchaseLine(ctx context.Context, req PostPurchaseLineRequest) (*PurchaseLineResult, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	if req.UnitPrice.IsNegative() {
		return nil, shared.InvalidInput("unit_price cannot be negative")
	}

	var (
		line     *trade.PurchaseLine
		receipt  *trade.PurchaseReceipt
		rule     *catalog.PriceRule
		register *finance.CashRegister
		movement *finance.CashMovement
	)
	err := s.txScope.Execute(ctx, func(repos common.Repositories) error {
		var err error
		receipt, err = repos.PurchaseReceiptRepo().FindByIDForUpdate(ctx, req.ReceiptID)
		if err != nil {
			return err
		}

		line, err = trade.NewPurchaseLine(receipt.ID, req.ProductID, req.Quantity, req.UnitPrice, req.Location, req.ExpiryDate)
		if err != nil {
			return err
		}

		// Receive locks the product row, serializing with sales of the same product
		store := inventoryapp.NewLotStoreFrom(repos)
		if _, err := store.Receive(ctx, inventoryapp.ReceiveLot{
			ProductID: line.ProductID,
			LotCode:   receipt.LotCode,
			Location:  line.Location,
			Quantity:  line.Quantity,
			Expiry:    line.ExpiryDate,
			UnitCost:  line.UnitPrice,
		}); err != nil {
			return err
		}
		if err := repos.PurchaseLineRepo().Save(ctx, line); err != nil {
			return err
		}

		// Recompute receipt total
		lines, err := repos.PurchaseLineRepo().FindByReceipt(ctx, receipt.ID)
		if err != nil {
			return err
		}
		delta := receipt.RecalculateTotal(lines)
		if err := repos.PurchaseReceiptRepo().Save(ctx, receipt); err != nil {
			return err
		}

		// Reprice the product
		rule, err = s.reprice(ctx, repos, store, line)
		if err != nil {
			return err
		}

		// Debit the register by what the receipt grew
		ledger := financeapp.NewCashLedgerFrom(repos)
		movement, err = finance.NewCashMovement(
			finance.PurchaseLineKey(line.ID),
			finance.MovementPurchase,
			delta.Neg(),
			receipt.ID,
			fmt.Sprintf("Purchase receipt %s", receipt.ReceiptNumber),
		)
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
		s.recorder.OperationRejected(ctx, "post_purchase_line", err)
		return nil, err
	}
	s.recorder.StockMoved(ctx, common.StockReceived, line.Quantity)
	s.recorder.CashPosted(ctx, string(movement.Kind), movement.Amount)

	return &PurchaseLineResult{
		Line:      ToPurchaseLineResponse(line),
		Receipt:   ToPurchaseReceiptResponse(receipt),
		PriceRule: catalogapp.ToPriceRuleResponse(rule),
		Register:  financeapp.ToCashRegisterResponse(register),
	}, nil
}

// reprice sets the product's cost to the weighted average unit cost of its
// lots holding stock, creating a rule with default margin, VAT and
// discount when the product has none
func (s *PurchaseService) reprice(ctx context.Context, repos common.Repositories, store *inventoryapp.LotStore, line *trade.PurchaseLine) (*catalog.PriceRule, error) {
	lots, err := store.Lots(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	cost, ok := inventory.WeightedAverageCost(lots)
	if !ok {
		cost = line.UnitPrice
	}

	rule, err := repos.PriceRuleRepo().FindByProduct(ctx, line.ProductID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		rule, err = catalog.NewDefaultPriceRule(line.ProductID, cost)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := rule.SetCost(cost); err != nil {
			return nil, err
		}
	}

	if err := repos.PriceRuleRepo().Save(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// GetPurchaseReceipt returns a purchase receipt with its lines
func (s *PurchaseService) GetPurchaseReceipt(ctx context.Context, id uuid.UUID) (*PurchaseReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.FindByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt.Lines = lines
	resp := ToPurchaseReceiptResponse(receipt)
	return &resp, nil
}
