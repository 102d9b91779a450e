package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/trade"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierReturnRepository implements SupplierReturnRepository using GORM
type GormSupplierReturnRepository struct {
	db *gorm.DB
}

// NewGormSupplierReturnRepository creates a new GormSupplierReturnRepository
func NewGormSupplierReturnRepository(db *gorm.DB) *GormSupplierReturnRepository {
	return &GormSupplierReturnRepository{db: db}
}

// FindByID finds a supplier return by its ID
func (r *GormSupplierReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SupplierReturn, error) {
	var model models.SupplierReturnModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Supplier return", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a supplier return and locks its row
func (r *GormSupplierReturnRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.SupplierReturn, error) {
	var model models.SupplierReturnModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Supplier return", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists supplier returns, newest first
func (r *GormSupplierReturnRepository) FindAll(ctx context.Context) ([]trade.SupplierReturn, error) {
	var rows []models.SupplierReturnModel
	if err := r.db.WithContext(ctx).Order("opened_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]trade.SupplierReturn, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns, nil
}

// Save creates or updates a supplier return
func (r *GormSupplierReturnRepository) Save(ctx context.Context, ret *trade.SupplierReturn) error {
	model := models.SupplierReturnModelFromDomain(ret)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Supplier return", ret.ID)
}

// GormCustomerReturnRepository implements CustomerReturnRepository using GORM
type GormCustomerReturnRepository struct {
	db *gorm.DB
}

// NewGormCustomerReturnRepository creates a new GormCustomerReturnRepository
func NewGormCustomerReturnRepository(db *gorm.DB) *GormCustomerReturnRepository {
	return &GormCustomerReturnRepository{db: db}
}

// FindByID finds a customer return by its ID
func (r *GormCustomerReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.CustomerReturn, error) {
	var model models.CustomerReturnModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Customer return", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a customer return and locks its row
func (r *GormCustomerReturnRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.CustomerReturn, error) {
	var model models.CustomerReturnModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Customer return", id)
	}
	return model.ToDomain(), nil
}

// FindAll lists customer returns, newest first
func (r *GormCustomerReturnRepository) FindAll(ctx context.Context) ([]trade.CustomerReturn, error) {
	var rows []models.CustomerReturnModel
	if err := r.db.WithContext(ctx).Order("opened_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]trade.CustomerReturn, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns, nil
}

// SumQuantityBySaleLine sums the quantities of the non-rejected returns
// against a sale line
func (r *GormCustomerReturnRepository) SumQuantityBySaleLine(ctx context.Context, saleLineID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerReturnModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("sale_line_id = ? AND status <> ?", saleLineID, trade.CustomerReturnRejected).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Save creates or updates a customer return
func (r *GormCustomerReturnRepository) Save(ctx context.Context, ret *trade.CustomerReturn) error {
	model := models.CustomerReturnModelFromDomain(ret)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Customer return", ret.ID)
}

// Ensure GormSupplierReturnRepository implements SupplierReturnRepository
var _ trade.SupplierReturnRepository = (*GormSupplierReturnRepository)(nil)

// Ensure GormCustomerReturnRepository implements CustomerReturnRepository
var _ trade.CustomerReturnRepository = (*GormCustomerReturnRepository)(nil)
