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

// GormSaleReceiptRepository implements SaleReceiptRepository using GORM
type GormSaleReceiptRepository struct {
	db *gorm.DB
}

// NewGormSaleReceiptRepository creates a new GormSaleReceiptRepository
func NewGormSaleReceiptRepository(db *gorm.DB) *GormSaleReceiptRepository {
	return &GormSaleReceiptRepository{db: db}
}

// FindByID finds a sale receipt by its ID
func (r *GormSaleReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleReceipt, error) {
	var model models.SaleReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Sale receipt", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a sale receipt and locks its row
func (r *GormSaleReceiptRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SaleReceipt, error) {
	var model models.SaleReceiptModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Sale receipt", id)
	}
	return model.ToDomain(), nil
}

// FindCreatedBetween finds receipts created within [from, to), newest first
func (r *GormSaleReceiptRepository) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]trade.SaleReceipt, error) {
	var rows []models.SaleReceiptModel
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("receipt_number DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	receipts := make([]trade.SaleReceipt, len(rows))
	for i := range rows {
		receipts[i] = *rows[i].ToDomain()
	}
	return receipts, nil
}

// SumTotalsBetween sums and counts receipts created within [from, to)
func (r *GormSaleReceiptRepository) SumTotalsBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var totals []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.SaleReceiptModel{}).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Pluck("total", &totals).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return sumAmounts(totals), int64(len(totals)), nil
}

// Save creates or updates a sale receipt. Lines are saved separately.
func (r *GormSaleReceiptRepository) Save(ctx context.Context, receipt *trade.SaleReceipt) error {
	model := models.SaleReceiptModelFromDomain(receipt)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Sale receipt", receipt.ReceiptNumber)
}

// GormSaleLineRepository implements SaleLineRepository using GORM
type GormSaleLineRepository struct {
	db *gorm.DB
}

// NewGormSaleLineRepository creates a new GormSaleLineRepository
func NewGormSaleLineRepository(db *gorm.DB) *GormSaleLineRepository {
	return &GormSaleLineRepository{db: db}
}

// FindByID finds a sale line by its ID
func (r *GormSaleLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SaleLine, error) {
	var model models.SaleLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Sale line", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a sale line and locks its row
func (r *GormSaleLineRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SaleLine, error) {
	var model models.SaleLineModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Sale line", id)
	}
	return model.ToDomain(), nil
}

// FindByReceipt finds the lines of a receipt in posting order
func (r *GormSaleLineRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]trade.SaleLine, error) {
	var rows []models.SaleLineModel
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]trade.SaleLine, len(rows))
	for i := range rows {
		lines[i] = *rows[i].ToDomain()
	}
	return lines, nil
}

// Save creates or updates a sale line
func (r *GormSaleLineRepository) Save(ctx context.Context, line *trade.SaleLine) error {
	model := models.SaleLineModelFromDomain(line)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Sale line", line.ID)
}

// Delete deletes a sale line
func (r *GormSaleLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleLineModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "Sale line", id)
	}
	return nil
}

func sumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total.Round(2)
}

// Ensure GormSaleReceiptRepository implements SaleReceiptRepository
var _ trade.SaleReceiptRepository = (*GormSaleReceiptRepository)(nil)

// Ensure GormSaleLineRepository implements SaleLineRepository
var _ trade.SaleLineRepository = (*GormSaleLineRepository)(nil)
