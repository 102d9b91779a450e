package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/trade"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseReceiptRepository implements PurchaseReceiptRepository using GORM
type GormPurchaseReceiptRepository struct {
	db *gorm.DB
}

// NewGormPurchaseReceiptRepository creates a new GormPurchaseReceiptRepository
func NewGormPurchaseReceiptRepository(db *gorm.DB) *GormPurchaseReceiptRepository {
	return &GormPurchaseReceiptRepository{db: db}
}

// FindByID finds a purchase receipt by its ID
func (r *GormPurchaseReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseReceipt, error) {
	var model models.PurchaseReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Purchase receipt", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a purchase receipt and locks its row
func (r *GormPurchaseReceiptRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.PurchaseReceipt, error) {
	var model models.PurchaseReceiptModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Purchase receipt", id)
	}
	return model.ToDomain(), nil
}

// ExistsByReceiptNumber checks if the external receipt number is taken
func (r *GormPurchaseReceiptRepository) ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PurchaseReceiptModel{}).
		Where("receipt_number = ?", receiptNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumTotalsBetween sums and counts receipts dated within [from, to)
func (r *GormPurchaseReceiptRepository) SumTotalsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var totals []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.PurchaseReceiptModel{}).
		Where("receipt_date >= ? AND receipt_date < ?", from.UTC(), to.UTC()).
		Pluck("total", &totals).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return sumAmounts(totals), int64(len(totals)), nil
}

// Save creates or updates a purchase receipt. Lines are saved separately.
func (r *GormPurchaseReceiptRepository) Save(ctx context.Context, receipt *trade.PurchaseReceipt) error {
	model := models.PurchaseReceiptModelFromDomain(receipt)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Purchase receipt "+receipt.ReceiptNumber, receipt.ReceiptNumber)
}

// GormPurchaseLineRepository implements PurchaseLineRepository using GORM
type GormPurchaseLineRepository struct {
	db *gorm.DB
}

// NewGormPurchaseLineRepository creates a new GormPurchaseLineRepository
func NewGormPurchaseLineRepository(db *gorm.DB) *GormPurchaseLineRepository {
	return &GormPurchaseLineRepository{db: db}
}

// FindByReceipt finds the lines of a receipt in posting order
func (r *GormPurchaseLineRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]trade.PurchaseLine, error) {
	var rows []models.PurchaseLineModel
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]trade.PurchaseLine, len(rows))
	for i := range rows {
		lines[i] = *rows[i].ToDomain()
	}
	return lines, nil
}

// Save creates or updates a purchase line
func (r *GormPurchaseLineRepository) Save(ctx context.Context, line *trade.PurchaseLine) error {
	model := models.PurchaseLineModelFromDomain(line)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Purchase line", line.ID)
}

// Ensure GormPurchaseReceiptRepository implements PurchaseReceiptRepository
var _ trade.PurchaseReceiptRepository = (*GormPurchaseReceiptRepository)(nil)

// Ensure GormPurchaseLineRepository implements PurchaseLineRepository
var _ trade.PurchaseLineRepository = (*GormPurchaseLineRepository)(nil)
