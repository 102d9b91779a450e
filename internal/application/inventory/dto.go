package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/inventory"
)

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	LotCode         string          `json:"lot_code"`
	Location        string          `json:"location"`
	Quantity        int64           `json:"quantity"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int            `json:"days_until_expiry,omitempty"`
	EnteredAt       time.Time       `json:"entered_at"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
}

// ToLotResponse converts a domain lot, computing days to expiry relative to asOf
func ToLotResponse(lot *inventory.Lot, asOf time.Time) LotResponse {
	resp := LotResponse{
		ID:         lot.ID,
		ProductID:  lot.ProductID,
		LotCode:    lot.LotCode,
		Location:   lot.Location,
		Quantity:   lot.Quantity,
		ExpiryDate: lot.ExpiryDate,
		EnteredAt:  lot.EnteredAt,
		UnitCost:   lot.UnitCost,
	}
	if lot.ExpiryDate != nil {
		days := lot.DaysUntilExpiry(asOf)
		resp.DaysUntilExpiry = &days
	}
	return resp
}

// ProductInventory is one product's line of the inventory report
type ProductInventory struct {
	ProductID  uuid.UUID       `json:"product_id"`
	StockCode  string          `json:"stock_code"`
	Name       string          `json:"name"`
	Total      int64           `json:"total"`
	StockValue decimal.Decimal `json:"stock_value"`
	Lots       []LotResponse   `json:"lots"`
}

// InventoryReport lists every product holding stock with its lots
type InventoryReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Products    []ProductInventory `json:"products"`
	TotalValue  decimal.Decimal    `json:"total_value"`
}
