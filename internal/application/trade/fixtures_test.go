package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	financeapp "github.com/stokledger/backend/internal/application/finance"
	inventoryapp "github.com/stokledger/backend/internal/application/inventory"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/infrastructure/persistence"
	"github.com/stokledger/backend/internal/infrastructure/persistence/testdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ledgerFixture wires the trade services over a migrated SQLite database
type ledgerFixture struct {
	ctx       context.Context
	db        *gorm.DB
	repos     common.Repositories
	txScope   *persistence.GormTransactionScope
	purchases *PurchaseService
	sales     *SaleService
	returns   *ReturnService
	supplier  *partner.Supplier
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	return newLedgerFixtureOn(t, testdb.NewSQLite(t))
}

func newLedgerFixtureOn(t *testing.T, db *gorm.DB) *ledgerFixture {
	t.Helper()
	repos := persistence.NewRepositories(db)
	txScope := persistence.NewGormTransactionScope(db)
	f := &ledgerFixture{
		ctx:       context.Background(),
		db:        db,
		repos:     repos,
		txScope:   txScope,
		purchases: NewPurchaseService(txScope, repos),
		sales:     NewSaleService(txScope, repos),
		returns:   NewReturnService(txScope, repos),
	}

	supplier, err := partner.NewSupplier("Acme Wholesale", "5550100", "Main St 1")
	require.NoError(t, err)
	require.NoError(t, repos.SupplierRepo().Save(f.ctx, supplier))
	f.supplier = supplier
	return f
}

func (f *ledgerFixture) product(t *testing.T, stockCode string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(stockCode, "Product "+stockCode, catalog.UnitPiece)
	require.NoError(t, err)
	require.NoError(t, f.repos.ProductRepo().Save(f.ctx, product))
	return product
}

// price gives the product a rule whose net price is cost × 1.25 × 1.20
func (f *ledgerFixture) price(t *testing.T, productID uuid.UUID, cost string) *catalog.PriceRule {
	t.Helper()
	rule, err := catalog.NewDefaultPriceRule(productID, decimal.RequireFromString(cost))
	require.NoError(t, err)
	require.NoError(t, f.repos.PriceRuleRepo().Save(f.ctx, rule))
	return rule
}

// lot stores a lot directly, bypassing the receipt engine
func (f *ledgerFixture) lot(t *testing.T, productID uuid.UUID, code string, quantity int64, expiry *time.Time, enteredAt time.Time) *inventory.Lot {
	t.Helper()
	lot, err := inventory.NewLot(productID, code, "A1", quantity, expiry, decimal.NewFromInt(10))
	require.NoError(t, err)
	lot.EnteredAt = enteredAt
	require.NoError(t, f.repos.LotRepo().Save(f.ctx, lot))
	return lot
}

func (f *ledgerFixture) openRegister(t *testing.T) {
	t.Helper()
	err := f.txScope.Execute(f.ctx, func(repos common.Repositories) error {
		_, err := financeapp.NewCashLedgerFrom(repos).Open(f.ctx)
		return err
	})
	require.NoError(t, err)
}

func (f *ledgerFixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	register, err := f.repos.CashRegisterRepo().Get(f.ctx)
	require.NoError(t, err)
	return register.Balance
}

func (f *ledgerFixture) stock(t *testing.T, productID uuid.UUID) int64 {
	t.Helper()
	total, err := inventoryapp.NewLotStoreFrom(f.repos).Total(f.ctx, productID)
	require.NoError(t, err)
	return total
}

func (f *ledgerFixture) lotQuantity(t *testing.T, lotID uuid.UUID) int64 {
	t.Helper()
	lot, err := f.repos.LotRepo().FindByID(f.ctx, lotID)
	require.NoError(t, err)
	return lot.Quantity
}

// stockedProduct creates a priced product holding quantity in one lot
func (f *ledgerFixture) stockedProduct(t *testing.T, stockCode string, quantity int64) *catalog.Product {
	t.Helper()
	product := f.product(t, stockCode)
	f.price(t, product.ID, "10")
	f.lot(t, product.ID, "L20240101-001", quantity, nil, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	return product
}

func (f *ledgerFixture) openReceipt(t *testing.T) *SaleReceiptResponse {
	t.Helper()
	receipt, err := f.sales.OpenSaleReceipt(f.ctx, OpenSaleReceiptRequest{CashierRef: "till-1"})
	require.NoError(t, err)
	return receipt
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
