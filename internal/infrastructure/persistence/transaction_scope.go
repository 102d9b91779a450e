package persistence

import (
	"context"

	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos common.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// gormRepositories provides access to all repositories over one *gorm.DB,
// which is either the connection pool or a transaction.
type gormRepositories struct {
	db *gorm.DB
}

// NewRepositories returns every repository bound to db
func NewRepositories(db *gorm.DB) common.Repositories {
	return &gormRepositories{db: db}
}

func (r *gormRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.db)
}

func (r *gormRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.db)
}

func (r *gormRepositories) PriceRuleRepo() catalog.PriceRuleRepository {
	return NewGormPriceRuleRepository(r.db)
}

func (r *gormRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.db)
}

func (r *gormRepositories) LotRepo() inventory.LotRepository {
	return NewGormLotRepository(r.db)
}

func (r *gormRepositories) SequenceRepo() shared.SequenceRepository {
	return NewGormSequenceRepository(r.db)
}

func (r *gormRepositories) SaleReceiptRepo() trade.SaleReceiptRepository {
	return NewGormSaleReceiptRepository(r.db)
}

func (r *gormRepositories) SaleLineRepo() trade.SaleLineRepository {
	return NewGormSaleLineRepository(r.db)
}

func (r *gormRepositories) PurchaseReceiptRepo() trade.PurchaseReceiptRepository {
	return NewGormPurchaseReceiptRepository(r.db)
}

func (r *gormRepositories) PurchaseLineRepo() trade.PurchaseLineRepository {
	return NewGormPurchaseLineRepository(r.db)
}

func (r *gormRepositories) SupplierReturnRepo() trade.SupplierReturnRepository {
	return NewGormSupplierReturnRepository(r.db)
}

func (r *gormRepositories) CustomerReturnRepo() trade.CustomerReturnRepository {
	return NewGormCustomerReturnRepository(r.db)
}

func (r *gormRepositories) CashRegisterRepo() finance.CashRegisterRepository {
	return NewGormCashRegisterRepository(r.db)
}

func (r *gormRepositories) CashMovementRepo() finance.CashMovementRepository {
	return NewGormCashMovementRepository(r.db)
}

func (r *gormRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.db)
}

// Ensure GormTransactionScope implements TransactionScope
var _ common.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormRepositories implements Repositories
var _ common.Repositories = (*gormRepositories)(nil)
