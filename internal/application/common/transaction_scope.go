package common

import (
	"context"

	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
)

// TransactionScope runs ledger operations inside one database transaction.
// If the function returns an error, the transaction is rolled back and no
// write made through repos survives. If it succeeds, the transaction is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to every repository. Inside Execute all of
// them share the same underlying transaction.
type Repositories interface {
	ProductRepo() catalog.ProductRepository
	CategoryRepo() catalog.CategoryRepository
	PriceRuleRepo() catalog.PriceRuleRepository
	SupplierRepo() partner.SupplierRepository
	LotRepo() inventory.LotRepository
	SequenceRepo() shared.SequenceRepository
	SaleReceiptRepo() trade.SaleReceiptRepository
	SaleLineRepo() trade.SaleLineRepository
	PurchaseReceiptRepo() trade.PurchaseReceiptRepository
	PurchaseLineRepo() trade.PurchaseLineRepository
	SupplierReturnRepo() trade.SupplierReturnRepository
	CustomerReturnRepo() trade.CustomerReturnRepository
	CashRegisterRepo() finance.CashRegisterRepository
	CashMovementRepo() finance.CashMovementRepository
	PaymentRepo() finance.PaymentRepository
}
