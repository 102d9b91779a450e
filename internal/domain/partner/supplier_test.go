package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with valid inputs", func(t *testing.T) {
		supplier, err := NewSupplier(" Acme Hırdavat ", "02125550000", "Istanbul")
		require.NoError(t, err)
		assert.Equal(t, "Acme Hırdavat", supplier.CompanyName)
		assert.Equal(t, "02125550000", supplier.Phone)
		assert.Equal(t, "Istanbul", supplier.Address)
	})

	t.Run("fails with empty company name", func(t *testing.T) {
		_, err := NewSupplier("", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with long phone", func(t *testing.T) {
		_, err := NewSupplier("Acme", strings.Repeat("1", 16), "")
		require.Error(t, err)
	})
}

func TestSupplier_Update(t *testing.T) {
	supplier, err := NewSupplier("Acme", "", "")
	require.NoError(t, err)

	require.NoError(t, supplier.Update("Acme Ltd", "555", "Ankara"))
	assert.Equal(t, "Acme Ltd", supplier.CompanyName)

	require.Error(t, supplier.Update("", "555", "Ankara"))
	assert.Equal(t, "Acme Ltd", supplier.CompanyName)
}
