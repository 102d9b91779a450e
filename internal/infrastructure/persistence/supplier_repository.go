package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/partner"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Supplier", id)
	}
	return model.ToDomain(), nil
}

// FindAll finds all suppliers ordered by company name
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := r.db.WithContext(ctx).Order("company_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	suppliers := make([]partner.Supplier, len(rows))
	for i := range rows {
		suppliers[i] = *rows[i].ToDomain()
	}
	return suppliers, nil
}

// ExistsByCompanyName checks if a supplier with the given company name exists, ignoring case
func (r *GormSupplierRepository) ExistsByCompanyName(ctx context.Context, companyName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SupplierModel{}).
		Where("LOWER(company_name) = ?", strings.ToLower(strings.TrimSpace(companyName))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	model := models.SupplierModelFromDomain(supplier)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Supplier", supplier.CompanyName)
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
