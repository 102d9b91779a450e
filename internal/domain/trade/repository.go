package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleReceiptRepository defines the interface for sale receipt persistence
type SaleReceiptRepository interface {
	// FindByID finds a sale receipt by ID, without its lines
	FindByID(ctx context.Context, id uuid.UUID) (*SaleReceipt, error)

	// FindByIDForUpdate finds a sale receipt and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SaleReceipt, error)

	// FindCreatedBetween finds receipts created within [from, to), newest first
	FindCreatedBetween(ctx context.Context, from, to time.Time) ([]SaleReceipt, error)

	// SumTotalsBetween sums the totals of receipts created within [from, to)
	SumTotalsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)

	// Save creates or updates a sale receipt
	Save(ctx context.Context, receipt *SaleReceipt) error
}

// SaleLineRepository defines the interface for sale line persistence
type SaleLineRepository interface {
	// FindByID finds a sale line by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SaleLine, error)

	// FindByIDForUpdate finds a sale line and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SaleLine, error)

	// FindByReceipt finds the lines of a receipt in posting order
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]SaleLine, error)

	// Save creates or updates a sale line
	Save(ctx context.Context, line *SaleLine) error

	// Delete deletes a sale line
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseReceiptRepository defines the interface for purchase receipt persistence
type PurchaseReceiptRepository interface {
	// FindByID finds a purchase receipt by ID, without its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseReceipt, error)

	// FindByIDForUpdate finds a purchase receipt and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PurchaseReceipt, error)

	// ExistsByReceiptNumber checks whether the external receipt number is taken
	ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error)

	// SumTotalsBetween sums the totals of receipts dated within [from, to)
	SumTotalsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)

	// Save creates or updates a purchase receipt
	Save(ctx context.Context, receipt *PurchaseReceipt) error
}

// PurchaseLineRepository defines the interface for purchase line persistence
type PurchaseLineRepository interface {
	// FindByReceipt finds the lines of a receipt in posting order
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]PurchaseLine, error)

	// Save creates or updates a purchase line
	Save(ctx context.Context, line *PurchaseLine) error
}

// SupplierReturnRepository defines the interface for supplier return persistence
type SupplierReturnRepository interface {
	// FindByID finds a supplier return by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierReturn, error)

	// FindByIDForUpdate finds a supplier return and locks its row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*SupplierReturn, error)

	// FindAll lists supplier returns, newest first
	FindAll(ctx context.Context) ([]SupplierReturn, error)

	// Save creates or updates a supplier return
	Save(ctx context.Context, ret *SupplierReturn) error
}

// CustomerReturnRepository defines the interface for customer return persistence
type CustomerReturnRepository interface {
	// FindByID finds a customer return by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerReturn, error)

	// FindByIDForUpdate finds a customer return and locks its row, so the
	// persisted status read before a transition cannot change underneath it
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*CustomerReturn, error)

	// FindAll lists customer returns, newest first
	FindAll(ctx context.Context) ([]CustomerReturn, error)

	// SumQuantityBySaleLine sums the quantities of the returns against a
	// sale line that have not been rejected
	SumQuantityBySaleLine(ctx context.Context, saleLineID uuid.UUID) (int64, error)

	// Save creates or updates a customer return
	Save(ctx context.Context, ret *CustomerReturn) error
}
