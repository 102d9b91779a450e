package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPriceRuleRepository implements PriceRuleRepository using GORM
type GormPriceRuleRepository struct {
	db *gorm.DB
}

// NewGormPriceRuleRepository creates a new GormPriceRuleRepository
func NewGormPriceRuleRepository(db *gorm.DB) *GormPriceRuleRepository {
	return &GormPriceRuleRepository{db: db}
}

// FindByProduct finds the price rule of a product
func (r *GormPriceRuleRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*catalog.PriceRule, error) {
	var model models.PriceRuleModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err, "Price rule for product", productID)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a price rule
func (r *GormPriceRuleRepository) Save(ctx context.Context, rule *catalog.PriceRule) error {
	model := models.PriceRuleModelFromDomain(rule)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Price rule", rule.ProductID)
}

// Ensure GormPriceRuleRepository implements PriceRuleRepository
var _ catalog.PriceRuleRepository = (*GormPriceRuleRepository)(nil)
