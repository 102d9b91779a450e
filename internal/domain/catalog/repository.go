package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll lists categories ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// ExistsByName checks whether a category with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByStockCode finds a product by its stock code
	FindByStockCode(ctx context.Context, stockCode string) (*Product, error)

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindAll lists products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// FindByIDs finds all products with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// ExistsByStockCode checks whether a product with the stock code exists
	ExistsByStockCode(ctx context.Context, stockCode string) (bool, error)

	// ExistsByBarcode checks whether a product with the barcode exists
	ExistsByBarcode(ctx context.Context, barcode string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// PriceRuleRepository defines the interface for price rule persistence
type PriceRuleRepository interface {
	// FindByProduct finds the price rule of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*PriceRule, error)

	// Save creates or updates a price rule, keyed by product
	Save(ctx context.Context, rule *PriceRule) error
}
