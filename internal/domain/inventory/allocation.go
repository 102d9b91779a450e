package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
)

// Deduction is the quantity taken from a single lot
type Deduction struct {
	LotID     uuid.UUID `json:"lot_id"`
	LotCode   string    `json:"lot_code"`
	Location  string    `json:"location"`
	Quantity  int64     `json:"quantity"`
	Remaining int64     `json:"remaining"`
}

// AllocationPlan lists the per-lot deductions that satisfy a request
type AllocationPlan struct {
	ProductID  uuid.UUID   `json:"product_id"`
	Requested  int64       `json:"requested"`
	Deductions []Deduction `json:"deductions"`
}

// Allocated returns the total quantity deducted by the plan
func (p *AllocationPlan) Allocated() int64 {
	var total int64
	for _, d := range p.Deductions {
		total += d.Quantity
	}
	return total
}

// Less orders lots by allocation priority: soonest expiry first, lots
// without expiry last, then by entry time.
func Less(a, b *Lot) bool {
	switch {
	case a.ExpiryDate == nil && b.ExpiryDate != nil:
		return false
	case a.ExpiryDate != nil && b.ExpiryDate == nil:
		return true
	case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
		return a.ExpiryDate.Before(*b.ExpiryDate)
	}
	return a.EnteredAt.Before(b.EnteredAt)
}

// SortByPriority sorts lots in place into allocation order
func SortByPriority(lots []*Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		return Less(lots[i], lots[j])
	})
}

// Available returns the summed quantity of the lots
func Available(lots []*Lot) int64 {
	var total int64
	for _, l := range lots {
		total += l.Quantity
	}
	return total
}

// Allocate debits quantity from lots in priority order. Availability is
// checked before any lot is touched, so on error no lot has changed.
// The returned plan lists the lots that were debited.
func Allocate(productID uuid.UUID, lots []*Lot, quantity int64) (*AllocationPlan, error) {
	if quantity <= 0 {
		return nil, shared.InvalidInput("Quantity must be positive")
	}
	if available := Available(lots); available < quantity {
		return nil, shared.NewInsufficientStockError(available, quantity)
	}

	ordered := make([]*Lot, len(lots))
	copy(ordered, lots)
	SortByPriority(ordered)

	plan := &AllocationPlan{ProductID: productID, Requested: quantity}
	remaining := quantity
	for _, lot := range ordered {
		if remaining == 0 {
			break
		}
		if lot.Quantity == 0 {
			continue
		}
		take := min(remaining, lot.Quantity)
		if err := lot.Debit(take); err != nil {
			return nil, err
		}
		remaining -= take
		plan.Deductions = append(plan.Deductions, Deduction{
			LotID:     lot.ID,
			LotCode:   lot.LotCode,
			Location:  lot.Location,
			Quantity:  take,
			Remaining: lot.Quantity,
		})
	}
	return plan, nil
}

// ReleaseTarget picks the lot that returned stock is credited to: the
// highest-priority lot still holding stock, otherwise the highest-priority
// lot. It returns nil when there are no lots.
func ReleaseTarget(lots []*Lot) *Lot {
	if len(lots) == 0 {
		return nil
	}
	ordered := make([]*Lot, len(lots))
	copy(ordered, lots)
	SortByPriority(ordered)
	for _, lot := range ordered {
		if lot.Quantity > 0 {
			return lot
		}
	}
	return ordered[0]
}
