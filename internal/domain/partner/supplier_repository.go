package partner

import (
	"context"

	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindAll lists suppliers ordered by company name
	FindAll(ctx context.Context) ([]Supplier, error)

	// ExistsByCompanyName checks whether a supplier with the company name exists
	ExistsByCompanyName(ctx context.Context, companyName string) (bool, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}
