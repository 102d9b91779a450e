package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/shared"
)

// ReceiveLot describes stock arriving into a lot
type ReceiveLot struct {
	ProductID uuid.UUID
	LotCode   string
	Location  string
	Quantity  int64
	Expiry    *time.Time
	UnitCost  decimal.Decimal
}

// LotStore holds the allocation and replenishment primitives over a
// product's lots. It must be built from repositories of one transaction:
// every mutating call first locks the product row, so concurrent callers
// working on the same product are serialized until that transaction ends.
type LotStore struct {
	products   catalog.ProductRepository
	priceRules catalog.PriceRuleRepository
	lots       inventory.LotRepository
	sequences  shared.SequenceRepository
}

// NewLotStore creates a LotStore over the given repositories
func NewLotStore(
	products catalog.ProductRepository,
	priceRules catalog.PriceRuleRepository,
	lots inventory.LotRepository,
	sequences shared.SequenceRepository,
) *LotStore {
	return &LotStore{
		products:   products,
		priceRules: priceRules,
		lots:       lots,
		sequences:  sequences,
	}
}

// NewLotStoreFrom creates a LotStore over a repository set
func NewLotStoreFrom(repos common.Repositories) *LotStore {
	return NewLotStore(repos.ProductRepo(), repos.PriceRuleRepo(), repos.LotRepo(), repos.SequenceRepo())
}

// Allocate consumes quantity from the product's lots, soonest expiry
// first. When the lots hold less than quantity it fails with an
// InsufficientStockError and no lot is changed.
func (s *LotStore) Allocate(ctx context.Context, productID uuid.UUID, quantity int64) (*inventory.AllocationPlan, error) {
	lots, err := s.lockLots(ctx, productID)
	if err != nil {
		return nil, err
	}

	plan, err := inventory.Allocate(productID, lots, quantity)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*inventory.Lot, len(lots))
	for _, lot := range lots {
		byID[lot.ID] = lot
	}
	for _, d := range plan.Deductions {
		if err := s.lots.Save(ctx, byID[d.LotID]); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// Release credits quantity back to the product. The highest-priority lot
// still holding stock receives it; when every lot is empty the
// highest-priority lot does; when the product has no lots a new lot is
// opened in the returns location, costed at the product's current cost
// price, so that the stock is not lost.
func (s *LotStore) Release(ctx context.Context, productID uuid.UUID, quantity int64) (*inventory.Lot, error) {
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	lots, err := s.lockLots(ctx, productID)
	if err != nil {
		return nil, err
	}

	target := inventory.ReleaseTarget(lots)
	if target == nil {
		cost, err := s.currentCost(ctx, productID)
		if err != nil {
			return nil, err
		}
		code, err := s.NextLotCode(ctx, shared.Now())
		if err != nil {
			return nil, err
		}
		target, err = inventory.NewLot(productID, code, inventory.ReturnsLocation, quantity, nil, cost)
		if err != nil {
			return nil, err
		}
	} else if err := target.Credit(quantity); err != nil {
		return nil, err
	}

	if err := s.lots.Save(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// currentCost returns the cost price of the product's price rule, zero when
// the product has never been priced
func (s *LotStore) currentCost(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	rule, err := s.priceRules.FindByProduct(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rule.CostPrice, nil
}

// Receive adds stock to the lot identified by product, lot code and
// location, creating it when absent. Merged stock blends the lot's unit
// cost with the incoming cost.
func (s *LotStore) Receive(ctx context.Context, in ReceiveLot) (*inventory.Lot, error) {
	if in.Quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if _, err := s.products.FindByIDForUpdate(ctx, in.ProductID); err != nil {
		return nil, err
	}

	lot, err := s.lots.FindByKeyForUpdate(ctx, in.ProductID, in.LotCode, in.Location)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		lot, err = inventory.NewLot(in.ProductID, in.LotCode, in.Location, in.Quantity, in.Expiry, in.UnitCost)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := lot.Merge(in.Quantity, in.UnitCost); err != nil {
			return nil, err
		}
	}

	if err := s.lots.Save(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// DebitLot removes quantity from one specific lot
func (s *LotStore) DebitLot(ctx context.Context, lotID uuid.UUID, quantity int64) (*inventory.Lot, error) {
	lot, err := s.lockLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if err := lot.Debit(quantity); err != nil {
		return nil, err
	}
	if err := s.lots.Save(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// CreditLot puts quantity back on one specific lot
func (s *LotStore) CreditLot(ctx context.Context, lotID uuid.UUID, quantity int64) (*inventory.Lot, error) {
	lot, err := s.lockLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if err := lot.Credit(quantity); err != nil {
		return nil, err
	}
	if err := s.lots.Save(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// Total returns the product's available stock
func (s *LotStore) Total(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.lots.SumQuantity(ctx, productID)
}

// Lots returns the product's lots in allocation order
func (s *LotStore) Lots(ctx context.Context, productID uuid.UUID) ([]*inventory.Lot, error) {
	lots, err := s.lots.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toPointers(lots), nil
}

// NextLotCode allocates the next lot code of day
func (s *LotStore) NextLotCode(ctx context.Context, day time.Time) (string, error) {
	seq, err := s.sequences.Next(ctx, inventory.LotCodeSequence(day))
	if err != nil {
		return "", err
	}
	return inventory.FormatLotCode(day, seq), nil
}

// lockLots locks the product row and then its lots, in that order, and
// returns the lots in allocation order
func (s *LotStore) lockLots(ctx context.Context, productID uuid.UUID) ([]*inventory.Lot, error) {
	if _, err := s.products.FindByIDForUpdate(ctx, productID); err != nil {
		return nil, err
	}
	lots, err := s.lots.FindByProductForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	ordered := toPointers(lots)
	inventory.SortByPriority(ordered)
	return ordered, nil
}

func (s *LotStore) lockLot(ctx context.Context, lotID uuid.UUID) (*inventory.Lot, error) {
	lot, err := s.lots.FindByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByIDForUpdate(ctx, lot.ProductID); err != nil {
		return nil, err
	}
	return s.lots.FindByIDForUpdate(ctx, lotID)
}

func toPointers(lots []inventory.Lot) []*inventory.Lot {
	out := make([]*inventory.Lot, len(lots))
	for i := range lots {
		out[i] = &lots[i]
	}
	return out
}
