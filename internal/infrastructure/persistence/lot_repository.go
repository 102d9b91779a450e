package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// lotPriority orders lots for allocation: soonest expiry first, lots
// without expiry last, then oldest entry first
const lotPriority = "expiry_date IS NULL, expiry_date ASC, entered_at ASC"

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Lot", id)
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a lot and locks its row
func (r *GormLotRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Lot", id)
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all lots of a product in allocation order
func (r *GormLotRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(lotPriority).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// FindByProductForUpdate finds and locks all lots of a product in allocation order
func (r *GormLotRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("product_id = ?", productID).
		Order(lotPriority).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// FindByKeyForUpdate finds and locks the lot identified by product, lot code and location
func (r *GormLotRepository) FindByKeyForUpdate(ctx context.Context, productID uuid.UUID, lotCode, location string) (*inventory.Lot, error) {
	var model models.LotModel
	if err := forUpdate(r.db.WithContext(ctx)).
		Where("product_id = ? AND lot_code = ? AND location = ?", productID, lotCode, location).
		First(&model).Error; err != nil {
		return nil, translateError(err, "Lot", lotCode)
	}
	return model.ToDomain(), nil
}

// FindExpiringBetween finds lots holding stock that expire within [from, to], soonest first
func (r *GormLotRepository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("quantity > 0 AND expiry_date IS NOT NULL").
		Where("expiry_date >= ? AND expiry_date <= ?", from.UTC(), to.UTC()).
		Order("expiry_date ASC, entered_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// FindExpiredBefore finds lots holding stock that expired before day, oldest expiry first
func (r *GormLotRepository) FindExpiredBefore(ctx context.Context, day time.Time) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("quantity > 0 AND expiry_date IS NOT NULL AND expiry_date < ?", day.UTC()).
		Order("expiry_date ASC, entered_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// FindAllWithStock finds every lot holding stock, grouped by product
func (r *GormLotRepository) FindAllWithStock(ctx context.Context) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("quantity > 0").
		Order("product_id ASC, " + lotPriority).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lotsToDomain(rows), nil
}

// SumQuantity returns the total quantity held by a product's lots
func (r *GormLotRepository) SumQuantity(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LotModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// stockLevelRow is the scan target of StockLevels
type stockLevelRow struct {
	ProductID uuid.UUID
	StockCode string
	Name      string
	Total     int64
}

// StockLevels returns the total stock of every product, including products
// without lots, ordered by stock code
func (r *GormLotRepository) StockLevels(ctx context.Context) ([]inventory.StockLevel, error) {
	var rows []stockLevelRow
	if err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.stock_code, products.name, COALESCE(SUM(lots.quantity), 0) AS total").
		Joins("LEFT JOIN lots ON lots.product_id = products.id").
		Group("products.id, products.stock_code, products.name").
		Order("products.stock_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	levels := make([]inventory.StockLevel, len(rows))
	for i, row := range rows {
		levels[i] = inventory.StockLevel{
			ProductID: row.ProductID,
			StockCode: row.StockCode,
			Name:      row.Name,
			Total:     row.Total,
		}
	}
	return levels, nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	model := models.LotModelFromDomain(lot)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "Lot", lot.LotCode)
}

func lotsToDomain(rows []models.LotModel) []inventory.Lot {
	lots := make([]inventory.Lot, len(rows))
	for i := range rows {
		lots[i] = *rows[i].ToDomain()
	}
	return lots
}

// Ensure GormLotRepository implements LotRepository
var _ inventory.LotRepository = (*GormLotRepository)(nil)
