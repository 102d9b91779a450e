package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context) ([]partner.Supplier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	args := m.Called(ctx, companyName)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates supplier", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		repo.On("ExistsByCompanyName", ctx, "Acme").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := service.Create(ctx, CreateSupplierRequest{CompanyName: "Acme", Phone: "555"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.CompanyName)
		repo.AssertExpectations(t)
	})

	t.Run("fails on duplicate company name", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		repo.On("ExistsByCompanyName", ctx, "Acme").Return(true, nil)

		_, err := service.Create(ctx, CreateSupplierRequest{CompanyName: "Acme"})
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails validation without company name", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		_, err := service.Create(ctx, CreateSupplierRequest{})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSupplierRepository)
	service := NewSupplierService(repo)

	supplier, err := partner.NewSupplier("Acme", "", "")
	require.NoError(t, err)

	repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	repo.On("ExistsByCompanyName", ctx, "Acme Ltd").Return(false, nil)
	repo.On("Save", ctx, supplier).Return(nil)

	resp, err := service.Update(ctx, supplier.ID, UpdateSupplierRequest{CompanyName: "Acme Ltd", Address: "Izmir"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", resp.CompanyName)
	assert.Equal(t, "Izmir", resp.Address)
}
