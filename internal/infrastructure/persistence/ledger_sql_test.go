package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests pin the PostgreSQL statements the engines rely on for
// concurrency: row locks and single-statement upserts.

func TestLotRepository_LocksRows(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormLotRepository(db.DB)
	productID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "lots" WHERE product_id = \$1 ORDER BY expiry_date IS NULL, expiry_date ASC, entered_at ASC FOR UPDATE`).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "lot_code", "location", "quantity"}))

	lots, err := repo.FindByProductForUpdate(context.Background(), productID)
	require.NoError(t, err)
	assert.Empty(t, lots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_LocksRow(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormProductRepository(db.DB)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock_code", "name", "unit"}).
			AddRow(id, "SKU-1", "Thing", "adet"))

	product, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", product.StockCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepository_Next(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormSequenceRepository(db.DB)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sequences (name, value) VALUES ($1, 1) ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1 RETURNING value`)).
		WithArgs("sale_receipt").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(42)))

	value, err := repo.Next(context.Background(), "sale_receipt")
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashRegisterRepository_ApplyDelta(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormCashRegisterRepository(db.DB)

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO UPDATE SET balance = cash_registers.balance + excluded.balance`)).
		WithArgs(finance.RegisterID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ApplyDelta(context.Background(), decimal.RequireFromString("-12.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCashMovementRepository_Insert(t *testing.T) {
	movement, err := finance.NewCashMovement("sale:1", finance.MovementSale, decimal.NewFromInt(15), uuid.New(), "Sale receipt 1")
	require.NoError(t, err)
	insert := regexp.QuoteMeta(`INSERT INTO "cash_movements"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("idempotency_key") DO NOTHING`)

	t.Run("new key is inserted", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := NewGormCashMovementRepository(db.DB).Insert(context.Background(), movement)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing key is skipped", func(t *testing.T) {
		db, mock := newMockDatabase(t)

		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := NewGormCashMovementRepository(db.DB).Insert(context.Background(), movement)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCustomerReturnRepository_SumQuantityBySaleLine(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := NewGormCustomerReturnRepository(db.DB)
	lineID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "customer_returns" WHERE sale_line_id = \$1 AND status <> \$2`).
		WithArgs(lineID, trade.CustomerReturnRejected).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(3)))

	returned, err := repo.SumQuantityBySaleLine(context.Background(), lineID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), returned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
