package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Payment", id)
	}
	return model.ToDomain(), nil
}

// FindPaidBetween finds payments paid within [from, to), newest first
func (r *GormPaymentRepository) FindPaidBetween(ctx context.Context, from, to time.Time) ([]finance.Payment, error) {
	var rows []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("paid_on >= ? AND paid_on < ?", from.UTC(), to.UTC()).
		Order("paid_on DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]finance.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments, nil
}

// categoryAmountRow is the scan target of TotalsByCategoryBetween
type categoryAmountRow struct {
	Category finance.PaymentCategory
	Amount   decimal.Decimal
}

// TotalsByCategoryBetween sums payments paid within [from, to) per category
func (r *GormPaymentRepository) TotalsByCategoryBetween(ctx context.Context, from, to time.Time) (map[finance.PaymentCategory]decimal.Decimal, error) {
	var rows []categoryAmountRow
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("category, amount").
		Where("paid_on >= ? AND paid_on < ?", from.UTC(), to.UTC()).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[finance.PaymentCategory]decimal.Decimal)
	for _, row := range rows {
		totals[row.Category] = totals[row.Category].Add(row.Amount)
	}
	for category, total := range totals {
		totals[category] = total.Round(2)
	}
	return totals, nil
}

// Save creates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Payment", payment.ID)
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
