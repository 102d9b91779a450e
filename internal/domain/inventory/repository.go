package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StockLevel is the summed lot quantity of one product
type StockLevel struct {
	ProductID uuid.UUID `json:"product_id"`
	StockCode string    `json:"stock_code"`
	Name      string    `json:"name"`
	Total     int64     `json:"total"`
}

// LotRepository defines the interface for lot persistence.
// Lists of lots are returned in allocation priority order.
type LotRepository interface {
	// FindByID finds a lot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByIDForUpdate finds a lot and locks its row until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByProduct finds all lots of a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Lot, error)

	// FindByProductForUpdate finds and locks all lots of a product
	FindByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]Lot, error)

	// FindByKeyForUpdate finds and locks the lot identified by product, lot code and location
	FindByKeyForUpdate(ctx context.Context, productID uuid.UUID, lotCode, location string) (*Lot, error)

	// FindExpiringBetween finds lots holding stock that expire within [from, to], soonest first
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]Lot, error)

	// FindExpiredBefore finds lots holding stock that expired before the given day
	FindExpiredBefore(ctx context.Context, day time.Time) ([]Lot, error)

	// FindAllWithStock finds every lot holding stock
	FindAllWithStock(ctx context.Context) ([]Lot, error)

	// SumQuantity returns the total quantity held by a product's lots
	SumQuantity(ctx context.Context, productID uuid.UUID) (int64, error)

	// StockLevels returns the total stock of every product, including
	// products with no lots
	StockLevels(ctx context.Context) ([]StockLevel, error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *Lot) error
}
