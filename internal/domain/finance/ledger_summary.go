package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the amount paid in one payment category
type CategoryTotal struct {
	Category PaymentCategory `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlySummary is the cash result of one calendar month
type MonthlySummary struct {
	Year                 int             `json:"year"`
	Month                time.Month      `json:"month"`
	SalesTotal           decimal.Decimal `json:"sales_total"`
	SalesCount           int64           `json:"sales_count"`
	PurchasesTotal       decimal.Decimal `json:"purchases_total"`
	PurchaseReceiptCount int64           `json:"purchase_receipt_count"`
	PaymentsByCategory   []CategoryTotal `json:"payments_by_category"`
	PaymentsTotal        decimal.Decimal `json:"payments_total"`
	RefundsTotal         decimal.Decimal `json:"refunds_total"`
	ExpensesTotal        decimal.Decimal `json:"expenses_total"`
	NetResult            decimal.Decimal `json:"net_result"`
	CashBalance          decimal.Decimal `json:"cash_balance"`
}

// NewMonthlySummary assembles a summary: expenses are purchases plus
// payments, and the net result is sales minus expenses. Only categories with
// a positive total are listed.
func NewMonthlySummary(year int, month time.Month, sales decimal.Decimal, salesCount int64, purchases decimal.Decimal, purchaseCount int64, payments map[PaymentCategory]decimal.Decimal, refunds, balance decimal.Decimal) MonthlySummary {
	byCategory := make([]CategoryTotal, 0, len(payments))
	paymentsTotal := decimal.Zero
	for _, category := range AllPaymentCategories() {
		total, ok := payments[category]
		if !ok {
			continue
		}
		paymentsTotal = paymentsTotal.Add(total)
		if total.IsPositive() {
			byCategory = append(byCategory, CategoryTotal{Category: category, Total: total})
		}
	}
	expenses := purchases.Add(paymentsTotal)

	return MonthlySummary{
		Year:                 year,
		Month:                month,
		SalesTotal:           sales,
		SalesCount:           salesCount,
		PurchasesTotal:       purchases,
		PurchaseReceiptCount: purchaseCount,
		PaymentsByCategory:   byCategory,
		PaymentsTotal:        paymentsTotal,
		RefundsTotal:         refunds,
		ExpensesTotal:        expenses,
		NetResult:            sales.Sub(expenses),
		CashBalance:          balance,
	}
}
