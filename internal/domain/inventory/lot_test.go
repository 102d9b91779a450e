package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLot(t *testing.T) {
	productID := uuid.New()

	t.Run("creates lot with valid inputs", func(t *testing.T) {
		expiry := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)
		lot, err := NewLot(productID, "L20250101-001", "A1", 10, &expiry, decimal.NewFromInt(4))
		require.NoError(t, err)

		assert.Equal(t, int64(10), lot.Quantity)
		assert.Equal(t, "L20250101-001", lot.LotCode)
		require.NotNil(t, lot.ExpiryDate)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *lot.ExpiryDate)
		assert.Equal(t, lot.CreatedAt, lot.EnteredAt)
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewLot(productID, "L1", "A1", -1, nil, decimal.Zero)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("fails without location", func(t *testing.T) {
		_, err := NewLot(productID, "L1", " ", 1, nil, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestLot_Debit(t *testing.T) {
	lot, err := NewLot(uuid.New(), "L1", "A1", 5, nil, decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, lot.Debit(3))
	assert.Equal(t, int64(2), lot.Quantity)

	err = lot.Debit(3)
	var stockErr *shared.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(2), lot.Quantity)
}

func TestLot_Merge(t *testing.T) {
	lot, err := NewLot(uuid.New(), "L1", "A1", 10, nil, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, lot.Merge(30, decimal.NewFromInt(20)))

	assert.Equal(t, int64(40), lot.Quantity)
	assert.True(t, decimal.NewFromFloat(17.5).Equal(lot.UnitCost))
}

func TestLot_Expiry(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	lot, err := NewLot(uuid.New(), "L1", "A1", 1, date("2024-03-10"), decimal.Zero)
	require.NoError(t, err)

	assert.False(t, lot.IsExpired(now))
	assert.True(t, lot.IsExpired(now.AddDate(0, 0, 1)))
	assert.True(t, lot.ExpiresWithin(now, 0))
	assert.True(t, lot.ExpiresWithin(now.AddDate(0, 0, -30), 30))
	assert.False(t, lot.ExpiresWithin(now.AddDate(0, 0, -31), 30))
	assert.Equal(t, 5, lot.DaysUntilExpiry(now.AddDate(0, 0, -5)))

	noExpiry, err := NewLot(uuid.New(), "L2", "A1", 1, nil, decimal.Zero)
	require.NoError(t, err)
	assert.False(t, noExpiry.IsExpired(now))
	assert.Equal(t, -1, noExpiry.DaysUntilExpiry(now))
}

func TestFormatLotCode(t *testing.T) {
	day := time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "L20240709-001", FormatLotCode(day, 1))
	assert.Equal(t, "L20240709-1234", FormatLotCode(day, 1234))
	assert.Equal(t, "lot:20240709", LotCodeSequence(day))
}

func TestWeightedAverageCost(t *testing.T) {
	productID := uuid.New()
	a, _ := NewLot(productID, "L1", "A1", 10, nil, decimal.NewFromInt(10))
	b, _ := NewLot(productID, "L2", "A1", 30, nil, decimal.NewFromInt(20))
	empty, _ := NewLot(productID, "L3", "A1", 0, nil, decimal.NewFromInt(1000))

	cost, ok := WeightedAverageCost([]*Lot{a, b, empty})
	require.True(t, ok)
	assert.True(t, decimal.NewFromFloat(17.5).Equal(cost))

	_, ok = WeightedAverageCost([]*Lot{empty})
	assert.False(t, ok)

	uncosted, _ := NewLot(productID, "L4", ReturnsLocation, 30, nil, decimal.Zero)
	cost, ok = WeightedAverageCost([]*Lot{a, uncosted})
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(cost), "uncosted lots do not dilute the average")

	_, ok = WeightedAverageCost([]*Lot{uncosted})
	assert.False(t, ok)

	assert.True(t, decimal.NewFromInt(700).Equal(StockValue([]*Lot{a, b, empty})))
}
