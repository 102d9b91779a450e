package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Product", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a product and locks its row. Every stock
// mutation of the product takes this lock first.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Product", id)
	}
	return model.ToDomain(), nil
}

// FindByStockCode finds a product by its stock code
func (r *GormProductRepository) FindByStockCode(ctx context.Context, stockCode string) (*catalog.Product, error) {
	var model models.ProductModel
	code := strings.ToUpper(strings.TrimSpace(stockCode))
	if err := r.db.WithContext(ctx).First(&model, "stock_code = ?", code).Error; err != nil {
		return nil, translateError(err, "Product", code)
	}
	return model.ToDomain(), nil
}

// FindByBarcode finds a product by its barcode
func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "barcode = ?", barcode).Error; err != nil {
		return nil, translateError(err, "Product with barcode", barcode)
	}
	return model.ToDomain(), nil
}

// FindAll finds products matching the filter and returns the unpaged total
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(stock_code) LIKE ? OR LOWER(name) LIKE ? OR barcode LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := query.Scopes(pageScope(filter, productSortColumns, "stock_code")).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return productsToDomain(rows), total, nil
}

// FindByIDs finds products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("stock_code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// ExistsByStockCode checks if a product with the given stock code exists
func (r *GormProductRepository) ExistsByStockCode(ctx context.Context, stockCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("stock_code = ?", strings.ToUpper(strings.TrimSpace(stockCode))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByBarcode checks if a product with the given barcode exists
func (r *GormProductRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	if barcode == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("barcode = ?", barcode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Product", product.StockCode)
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
