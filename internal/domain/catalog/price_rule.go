package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

// Defaults applied when a price rule is created implicitly by a purchase
var (
	DefaultMargin   = decimal.NewFromInt(25)
	DefaultVAT      = decimal.NewFromInt(20)
	DefaultDiscount = decimal.Zero
)

// PriceRule holds the pricing inputs of a product and the net price derived
// from them. There is at most one rule per product.
type PriceRule struct {
	shared.BaseEntity
	ProductID uuid.UUID
	CostPrice decimal.Decimal
	Margin    decimal.Decimal
	VAT       decimal.Decimal
	Discount  decimal.Decimal
	NetPrice  decimal.Decimal
}

// NewPriceRule creates a price rule with the given inputs
func NewPriceRule(productID uuid.UUID, cost, margin, vat, discount decimal.Decimal) (*PriceRule, error) {
	if productID == uuid.Nil {
		return nil, shared.InvalidInput("Product ID cannot be empty")
	}
	if err := ValidatePricingInputs(cost, margin, vat, discount); err != nil {
		return nil, err
	}
	rule := &PriceRule{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		CostPrice:  cost,
		Margin:     margin,
		VAT:        vat,
		Discount:   discount,
	}
	rule.Recalculate()
	return rule, nil
}

// NewDefaultPriceRule creates a price rule for cost using the default margin, VAT and discount
func NewDefaultPriceRule(productID uuid.UUID, cost decimal.Decimal) (*PriceRule, error) {
	return NewPriceRule(productID, cost, DefaultMargin, DefaultVAT, DefaultDiscount)
}

// Update replaces all pricing inputs and recomputes the net price
func (r *PriceRule) Update(cost, margin, vat, discount decimal.Decimal) error {
	if err := ValidatePricingInputs(cost, margin, vat, discount); err != nil {
		return err
	}
	r.CostPrice = cost
	r.Margin = margin
	r.VAT = vat
	r.Discount = discount
	r.Recalculate()
	return nil
}

// SetCost replaces the cost price and recomputes the net price
func (r *PriceRule) SetCost(cost decimal.Decimal) error {
	return r.Update(cost, r.Margin, r.VAT, r.Discount)
}

// Recalculate derives NetPrice from the current inputs
func (r *PriceRule) Recalculate() {
	r.NetPrice = CalculateNetPrice(r.CostPrice, r.Margin, r.VAT, r.Discount)
	r.Touch()
}

// Breakdown returns the intermediate amounts of the current net price
func (r *PriceRule) Breakdown() PriceBreakdown {
	return Breakdown(r.CostPrice, r.Margin, r.VAT, r.Discount)
}
