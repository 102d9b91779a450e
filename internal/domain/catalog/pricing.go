package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
)

var hundred = decimal.NewFromInt(100)

// Allowed VAT rates, in percent
var allowedVATRates = []decimal.Decimal{
	decimal.NewFromInt(1),
	decimal.NewFromInt(10),
	decimal.NewFromInt(20),
}

// PriceBreakdown lists every intermediate amount of a net price calculation
type PriceBreakdown struct {
	Cost           decimal.Decimal `json:"cost"`
	Profit         decimal.Decimal `json:"profit"`
	PreVAT         decimal.Decimal `json:"pre_vat"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	ListPrice      decimal.Decimal `json:"list_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetPrice       decimal.Decimal `json:"net_price"`
}

// Breakdown computes the full price breakdown. Only the net price is rounded
// (half-up to 2 places); intermediate amounts keep full precision.
func Breakdown(cost, margin, vat, discount decimal.Decimal) PriceBreakdown {
	profit := cost.Mul(margin).Div(hundred)
	preVAT := cost.Add(profit)
	vatAmount := preVAT.Mul(vat).Div(hundred)
	listPrice := preVAT.Add(vatAmount)
	discountAmount := listPrice.Mul(discount).Div(hundred)

	return PriceBreakdown{
		Cost:           cost,
		Profit:         profit,
		PreVAT:         preVAT,
		VATAmount:      vatAmount,
		ListPrice:      listPrice,
		DiscountAmount: discountAmount,
		NetPrice:       listPrice.Sub(discountAmount).Round(2),
	}
}

// CalculateNetPrice derives the net sale price from cost, margin %, VAT % and discount %
func CalculateNetPrice(cost, margin, vat, discount decimal.Decimal) decimal.Decimal {
	return Breakdown(cost, margin, vat, discount).NetPrice
}

// ValidatePricingInputs checks the inputs of a price calculation
func ValidatePricingInputs(cost, margin, vat, discount decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.InvalidInput("Cost price cannot be negative")
	}
	if margin.IsNegative() {
		return shared.InvalidInput("Margin cannot be negative")
	}
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return shared.InvalidInput("Discount must be between 0 and 100")
	}
	if !IsAllowedVATRate(vat) {
		return shared.InvalidInput("VAT rate must be one of 1, 10, 20")
	}
	return nil
}

// IsAllowedVATRate reports whether vat is a supported VAT rate
func IsAllowedVATRate(vat decimal.Decimal) bool {
	for _, rate := range allowedVATRates {
		if vat.Equal(rate) {
			return true
		}
	}
	return false
}
