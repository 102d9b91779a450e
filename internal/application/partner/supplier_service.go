package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	supplier, err := partner.NewSupplier(req.CompanyName, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	exists, err := s.supplierRepo.ExistsByCompanyName(ctx, supplier.CompanyName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this company name already exists")
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List returns every supplier ordered by company name
func (s *SupplierService) List(ctx context.Context) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out, nil
}

// Update replaces a supplier's details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != supplier.CompanyName {
		exists, err := s.supplierRepo.ExistsByCompanyName(ctx, req.CompanyName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this company name already exists")
		}
	}
	if err := supplier.Update(req.CompanyName, req.Phone, req.Address); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}
