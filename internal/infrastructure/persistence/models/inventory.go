package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/inventory"
)

// LotModel is the persistence model for the Lot domain entity.
type LotModel struct {
	BaseModel
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_lots_product_code_location,priority:1"`
	LotCode    string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_lots_product_code_location,priority:2"`
	Location   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_lots_product_code_location,priority:3"`
	Quantity   int64           `gorm:"not null;check:quantity >= 0"`
	ExpiryDate *time.Time      `gorm:"type:date;index"`
	EnteredAt  time.Time       `gorm:"not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot entity.
func (m *LotModel) ToDomain() *inventory.Lot {
	return &inventory.Lot{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		LotCode:    m.LotCode,
		Location:   m.Location,
		Quantity:   m.Quantity,
		ExpiryDate: utcPtr(m.ExpiryDate),
		EnteredAt:  m.EnteredAt.UTC(),
		UnitCost:   m.UnitCost,
	}
}

// FromDomain populates the persistence model from a domain Lot entity.
func (m *LotModel) FromDomain(l *inventory.Lot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.LotCode = l.LotCode
	m.Location = l.Location
	m.Quantity = l.Quantity
	m.ExpiryDate = utcPtr(l.ExpiryDate)
	m.EnteredAt = l.EnteredAt.UTC()
	m.UnitCost = l.UnitCost
}

// LotModelFromDomain creates a new persistence model from a domain Lot entity.
func LotModelFromDomain(l *inventory.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}

// SequenceModel is a named counter incremented atomically
type SequenceModel struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "sequences"
}
