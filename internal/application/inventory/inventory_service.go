package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/inventory"
	"github.com/stokledger/backend/internal/domain/shared"
)

// Defaults for stock queries when the caller gives none
const (
	DefaultLowStockThreshold = 10
	DefaultExpiryWindowDays  = 30
)

// InventoryService answers read-only stock queries
type InventoryService struct {
	products catalog.ProductRepository
	lots     inventory.LotRepository
	now      func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(repos common.Repositories) *InventoryService {
	return &InventoryService{
		products: repos.ProductRepo(),
		lots:     repos.LotRepo(),
		now:      shared.Now,
	}
}

// TotalStock returns the summed lot quantity of a product
func (s *InventoryService) TotalStock(ctx context.Context, productID uuid.UUID) (int64, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return 0, err
	}
	return s.lots.SumQuantity(ctx, productID)
}

// LowStock lists products whose total stock is at or below threshold,
// lowest first
func (s *InventoryService) LowStock(ctx context.Context, threshold int64) ([]inventory.StockLevel, error) {
	if threshold < 0 {
		return nil, shared.InvalidInput("Threshold cannot be negative")
	}
	levels, err := s.lots.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]inventory.StockLevel, 0)
	for _, level := range levels {
		if level.Total <= threshold {
			low = append(low, level)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].Total != low[j].Total {
			return low[i].Total < low[j].Total
		}
		return low[i].StockCode < low[j].StockCode
	})
	return low, nil
}

// ExpiringLots lists lots holding stock that expire between today and
// withinDays from now, soonest first
func (s *InventoryService) ExpiringLots(ctx context.Context, withinDays int) ([]LotResponse, error) {
	if withinDays < 0 {
		return nil, shared.InvalidInput("Days cannot be negative")
	}
	now := s.now()
	today := shared.DateOf(now)
	lots, err := s.lots.FindExpiringBetween(ctx, today, today.AddDate(0, 0, withinDays))
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots, now), nil
}

// ExpiredLots lists lots still holding stock whose expiry date has passed
func (s *InventoryService) ExpiredLots(ctx context.Context) ([]LotResponse, error) {
	now := s.now()
	lots, err := s.lots.FindExpiredBefore(ctx, shared.DateOf(now))
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots, now), nil
}

// ListLots lists a product's lots in allocation order
func (s *InventoryService) ListLots(ctx context.Context, productID uuid.UUID) ([]LotResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	lots, err := s.lots.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toLotResponses(lots, s.now()), nil
}

// Report builds the inventory report: every product holding stock, with
// its lots and their cost value
func (s *InventoryService) Report(ctx context.Context) (*InventoryReport, error) {
	lots, err := s.lots.FindAllWithStock(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[uuid.UUID][]*inventory.Lot)
	var productIDs []uuid.UUID
	for i := range lots {
		lot := &lots[i]
		if _, seen := byProduct[lot.ProductID]; !seen {
			productIDs = append(productIDs, lot.ProductID)
		}
		byProduct[lot.ProductID] = append(byProduct[lot.ProductID], lot)
	}

	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &InventoryReport{
		GeneratedAt: now,
		Products:    make([]ProductInventory, 0, len(products)),
		TotalValue:  decimal.Zero,
	}
	for _, product := range products {
		productLots := byProduct[product.ID]
		inventory.SortByPriority(productLots)
		value := inventory.StockValue(productLots)
		line := ProductInventory{
			ProductID:  product.ID,
			StockCode:  product.StockCode,
			Name:       product.Name,
			Total:      inventory.Available(productLots),
			StockValue: value,
			Lots:       make([]LotResponse, 0, len(productLots)),
		}
		for _, lot := range productLots {
			line.Lots = append(line.Lots, ToLotResponse(lot, now))
		}
		report.Products = append(report.Products, line)
		report.TotalValue = report.TotalValue.Add(value)
	}
	sort.SliceStable(report.Products, func(i, j int) bool {
		return report.Products[i].StockCode < report.Products[j].StockCode
	})
	return report, nil
}

func toLotResponses(lots []inventory.Lot, asOf time.Time) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for i := range lots {
		out = append(out, ToLotResponse(&lots[i], asOf))
	}
	return out
}
