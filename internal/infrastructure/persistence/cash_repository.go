package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/finance"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyDeltaSQL adds an amount to the register balance in one statement,
// creating the row on first use
const applyDeltaSQL = `INSERT INTO cash_registers (id, balance, updated_at) VALUES (?, ?, ?)
ON CONFLICT (id) DO UPDATE SET balance = cash_registers.balance + excluded.balance, updated_at = excluded.updated_at`

// GormCashRegisterRepository implements CashRegisterRepository using GORM
type GormCashRegisterRepository struct {
	db *gorm.DB
}

// NewGormCashRegisterRepository creates a new GormCashRegisterRepository
func NewGormCashRegisterRepository(db *gorm.DB) *GormCashRegisterRepository {
	return &GormCashRegisterRepository{db: db}
}

// Create inserts the register with a zero balance
func (r *GormCashRegisterRepository) Create(ctx context.Context) (*finance.CashRegister, error) {
	model := &models.CashRegisterModel{
		ID:        finance.RegisterID,
		Balance:   decimal.Zero,
		UpdatedAt: shared.Now(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrDuplicateSingleton
	}
	return model.ToDomain(), nil
}

// Get returns the register
func (r *GormCashRegisterRepository) Get(ctx context.Context) (*finance.CashRegister, error) {
	var model models.CashRegisterModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", finance.RegisterID).Error; err != nil {
		return nil, translateError(err, "Cash register", finance.RegisterID)
	}
	return model.ToDomain(), nil
}

// ApplyDelta adds amount to the balance atomically
func (r *GormCashRegisterRepository) ApplyDelta(ctx context.Context, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Exec(applyDeltaSQL, finance.RegisterID, amount, shared.Now()).Error
}

// GormCashMovementRepository implements CashMovementRepository using GORM
type GormCashMovementRepository struct {
	db *gorm.DB
}

// NewGormCashMovementRepository creates a new GormCashMovementRepository
func NewGormCashMovementRepository(db *gorm.DB) *GormCashMovementRepository {
	return &GormCashMovementRepository{db: db}
}

// Insert appends a movement unless its key was already posted
func (r *GormCashMovementRepository) Insert(ctx context.Context, movement *finance.CashMovement) (bool, error) {
	model := models.CashMovementModelFromDomain(movement)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindByKey finds a movement by its key
func (r *GormCashMovementRepository) FindByKey(ctx context.Context, key string) (*finance.CashMovement, error) {
	var model models.CashMovementModel
	if err := r.db.WithContext(ctx).First(&model, "idempotency_key = ?", key).Error; err != nil {
		return nil, translateError(err, "Cash movement", key)
	}
	return model.ToDomain(), nil
}

// FindAll lists movements matching the filter, newest first, and returns the unpaged total
func (r *GormCashMovementRepository) FindAll(ctx context.Context, filter finance.MovementFilter) ([]finance.CashMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CashMovementModel{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("occurred_at < ?", filter.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CashMovementModel
	if err := query.Scopes(pageScope(filter.Filter, cashMovementSortColumns, "occurred_at")).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	movements := make([]finance.CashMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, total, nil
}

// SumByKindBetween sums and counts movements of kind within [from, to)
func (r *GormCashMovementRepository) SumByKindBetween(ctx context.Context, kind finance.MovementKind, from, to time.Time) (decimal.Decimal, int64, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.CashMovementModel{}).
		Where("kind = ? AND occurred_at >= ? AND occurred_at < ?", kind, from.UTC(), to.UTC()).
		Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return sumAmounts(amounts), int64(len(amounts)), nil
}

// Ensure GormCashRegisterRepository implements CashRegisterRepository
var _ finance.CashRegisterRepository = (*GormCashRegisterRepository)(nil)

// Ensure GormCashMovementRepository implements CashMovementRepository
var _ finance.CashMovementRepository = (*GormCashMovementRepository)(nil)
