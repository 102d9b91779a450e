package inventory

import (
	"github.com/shopspring/decimal"
)

// BlendCost returns the unit cost of two quantities merged together,
// weighted by quantity and kept to 4 decimal places
func BlendCost(qtyA int64, costA decimal.Decimal, qtyB int64, costB decimal.Decimal) decimal.Decimal {
	total := qtyA + qtyB
	if total <= 0 {
		return costB
	}
	value := costA.Mul(decimal.NewFromInt(qtyA)).Add(costB.Mul(decimal.NewFromInt(qtyB)))
	return value.Div(decimal.NewFromInt(total)).Round(4)
}

// WeightedAverageCost averages the unit cost of the lots that still hold
// stock, weighted by their quantity and rounded to 2 decimal places. Lots
// without a unit cost, such as returns of a never-priced product, are left
// out. ok is false when no costed lot holds stock.
func WeightedAverageCost(lots []*Lot) (cost decimal.Decimal, ok bool) {
	var quantity int64
	value := decimal.Zero
	for _, lot := range lots {
		if lot.Quantity <= 0 || !lot.UnitCost.IsPositive() {
			continue
		}
		quantity += lot.Quantity
		value = value.Add(lot.UnitCost.Mul(decimal.NewFromInt(lot.Quantity)))
	}
	if quantity == 0 {
		return decimal.Zero, false
	}
	return value.Div(decimal.NewFromInt(quantity)).Round(2), true
}

// StockValue returns the cost value of the stock held in the lots
func StockValue(lots []*Lot) decimal.Decimal {
	value := decimal.Zero
	for _, lot := range lots {
		value = value.Add(lot.UnitCost.Mul(decimal.NewFromInt(lot.Quantity)))
	}
	return value.Round(2)
}
