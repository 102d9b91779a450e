package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("STK-001", "Olive Oil 1L", UnitLiter)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "STK-001", product.StockCode)
		assert.Equal(t, "Olive Oil 1L", product.Name)
		assert.Equal(t, UnitLiter, product.Unit)
		assert.Nil(t, product.CategoryID)
		assert.Empty(t, product.Barcode)
		assert.NotEqual(t, uuid.Nil, product.ID)
	})

	t.Run("converts stock code to uppercase", func(t *testing.T) {
		product, err := NewProduct(" stk-001 ", "Olive Oil", UnitLiter)
		require.NoError(t, err)
		assert.Equal(t, "STK-001", product.StockCode)
	})

	t.Run("defaults unit to piece", func(t *testing.T) {
		product, err := NewProduct("STK-002", "Soap", "")
		require.NoError(t, err)
		assert.Equal(t, UnitPiece, product.Unit)
	})

	t.Run("fails with empty stock code", func(t *testing.T) {
		_, err := NewProduct("", "Soap", UnitPiece)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid stock code characters", func(t *testing.T) {
		_, err := NewProduct("STK@001", "Soap", UnitPiece)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("STK-003", "  ", UnitPiece)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with unknown unit", func(t *testing.T) {
		_, err := NewProduct("STK-004", "Rope", Unit("yard"))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_UNIT", domainErr.Code)
	})
}

func TestProduct_SetBarcode(t *testing.T) {
	product, err := NewProduct("STK-010", "Tea", UnitPackage)
	require.NoError(t, err)

	t.Run("accepts an EAN-13 barcode", func(t *testing.T) {
		require.NoError(t, product.SetBarcode("8690000000017"))
		assert.Equal(t, "8690000000017", product.Barcode)
	})

	t.Run("rejects barcodes longer than 13 digits", func(t *testing.T) {
		err := product.SetBarcode("86900000000170")
		require.Error(t, err)
		assert.Equal(t, "8690000000017", product.Barcode)
	})

	t.Run("rejects non-digit barcodes", func(t *testing.T) {
		require.Error(t, product.SetBarcode("86900A"))
	})

	t.Run("empty barcode clears it", func(t *testing.T) {
		require.NoError(t, product.SetBarcode(""))
		assert.Empty(t, product.Barcode)
	})
}

func TestUnit_IsValid(t *testing.T) {
	for _, u := range AllUnits() {
		assert.True(t, u.IsValid(), u.String())
	}
	assert.False(t, Unit("pcs").IsValid())
}
