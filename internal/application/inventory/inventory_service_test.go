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

func TestInventoryService_StockQueries(t *testing.T) {
	f := newStockFixture(t)
	service := NewInventoryService(f.repos)
	service.now = func() time.Time { return time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC) }

	milk := f.product(t, "MILK")
	f.lot(t, milk.ID, "M-OLD", 2, date(2024, 6, 1), "1")
	f.lot(t, milk.ID, "M-SOON", 3, date(2024, 6, 20), "1.50")
	bread := f.product(t, "BREAD")
	f.lot(t, bread.ID, "B-1", 40, date(2024, 8, 1), "0.80")
	salt := f.product(t, "SALT")
	f.lot(t, salt.ID, "S-EMPTY", 0, date(2024, 5, 1), "0.20")
	rice := f.product(t, "RICE")

	t.Run("total stock", func(t *testing.T) {
		total, err := service.TotalStock(f.ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)

		_, err = service.TotalStock(f.ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("low stock includes products without lots, lowest first", func(t *testing.T) {
		low, err := service.LowStock(f.ctx, 10)
		require.NoError(t, err)

		codes := make([]string, 0, len(low))
		for _, level := range low {
			codes = append(codes, level.StockCode)
		}
		assert.Equal(t, []string{"RICE", "SALT", "MILK"}, codes)
		assert.Equal(t, rice.ID, low[0].ProductID)
		assert.Equal(t, int64(5), low[2].Total)

		_, err = service.LowStock(f.ctx, -1)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("expiring lots within the window", func(t *testing.T) {
		lots, err := service.ExpiringLots(f.ctx, 30)
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, "M-SOON", lots[0].LotCode)
		require.NotNil(t, lots[0].DaysUntilExpiry)
		assert.Equal(t, 10, *lots[0].DaysUntilExpiry)

		wide, err := service.ExpiringLots(f.ctx, 60)
		require.NoError(t, err)
		assert.Len(t, wide, 2)
	})

	t.Run("expired lots still holding stock", func(t *testing.T) {
		lots, err := service.ExpiredLots(f.ctx)
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, "M-OLD", lots[0].LotCode)
		assert.Negative(t, *lots[0].DaysUntilExpiry)
	})

	t.Run("lists lots in allocation order", func(t *testing.T) {
		lots, err := service.ListLots(f.ctx, milk.ID)
		require.NoError(t, err)
		require.Len(t, lots, 2)
		assert.Equal(t, "M-OLD", lots[0].LotCode)
		assert.Equal(t, "M-SOON", lots[1].LotCode)
	})

	t.Run("report values stock at lot cost", func(t *testing.T) {
		report, err := service.Report(f.ctx)
		require.NoError(t, err)

		require.Len(t, report.Products, 2)
		assert.Equal(t, "BREAD", report.Products[0].StockCode)
		assert.True(t, decimal.NewFromInt(32).Equal(report.Products[0].StockValue))
		assert.Equal(t, "MILK", report.Products[1].StockCode)
		assert.Equal(t, int64(5), report.Products[1].Total)
		assert.True(t, decimal.RequireFromString("6.5").Equal(report.Products[1].StockValue))
		assert.True(t, decimal.RequireFromString("38.5").Equal(report.TotalValue))
	})
}
