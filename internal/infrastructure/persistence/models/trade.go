package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/trade"
)

// SaleReceiptModel is the persistence model for the SaleReceipt domain entity.
type SaleReceiptModel struct {
	BaseModel
	ReceiptNumber int64           `gorm:"not null;uniqueIndex"`
	CashierRef    string          `gorm:"type:varchar(100)"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleReceiptModel) TableName() string {
	return "sale_receipts"
}

// ToDomain converts the persistence model to a domain SaleReceipt entity.
// Lines are loaded separately.
func (m *SaleReceiptModel) ToDomain() *trade.SaleReceipt {
	return &trade.SaleReceipt{
		BaseEntity:    m.BaseModel.ToDomain(),
		ReceiptNumber: m.ReceiptNumber,
		CashierRef:    m.CashierRef,
		Total:         m.Total,
	}
}

// FromDomain populates the persistence model from a domain SaleReceipt entity.
func (m *SaleReceiptModel) FromDomain(r *trade.SaleReceipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReceiptNumber = r.ReceiptNumber
	m.CashierRef = r.CashierRef
	m.Total = r.Total
}

// SaleReceiptModelFromDomain creates a new persistence model from a domain SaleReceipt entity.
func SaleReceiptModelFromDomain(r *trade.SaleReceipt) *SaleReceiptModel {
	m := &SaleReceiptModel{}
	m.FromDomain(r)
	return m
}

// SaleLineModel is the persistence model for the SaleLine domain entity.
type SaleLineModel struct {
	BaseModel
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Revision  int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleLineModel) TableName() string {
	return "sale_lines"
}

// ToDomain converts the persistence model to a domain SaleLine entity.
func (m *SaleLineModel) ToDomain() *trade.SaleLine {
	return &trade.SaleLine{
		BaseEntity: m.BaseModel.ToDomain(),
		ReceiptID:  m.ReceiptID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		LineTotal:  m.LineTotal,
		Revision:   m.Revision,
	}
}

// FromDomain populates the persistence model from a domain SaleLine entity.
func (m *SaleLineModel) FromDomain(l *trade.SaleLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ReceiptID = l.ReceiptID
	m.ProductID = l.ProductID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.LineTotal = l.LineTotal
	m.Revision = l.Revision
}

// SaleLineModelFromDomain creates a new persistence model from a domain SaleLine entity.
func SaleLineModelFromDomain(l *trade.SaleLine) *SaleLineModel {
	m := &SaleLineModel{}
	m.FromDomain(l)
	return m
}

// PurchaseReceiptModel is the persistence model for the PurchaseReceipt domain entity.
type PurchaseReceiptModel struct {
	BaseModel
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotCode       string          `gorm:"type:varchar(30);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReceiptDate   time.Time       `gorm:"type:date;not null;index"`
	RecordedBy    string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PurchaseReceiptModel) TableName() string {
	return "purchase_receipts"
}

// ToDomain converts the persistence model to a domain PurchaseReceipt entity.
// Lines are loaded separately.
func (m *PurchaseReceiptModel) ToDomain() *trade.PurchaseReceipt {
	return &trade.PurchaseReceipt{
		BaseEntity:    m.BaseModel.ToDomain(),
		ReceiptNumber: m.ReceiptNumber,
		SupplierID:    m.SupplierID,
		LotCode:       m.LotCode,
		Total:         m.Total,
		ReceiptDate:   m.ReceiptDate.UTC(),
		RecordedBy:    m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain PurchaseReceipt entity.
func (m *PurchaseReceiptModel) FromDomain(r *trade.PurchaseReceipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReceiptNumber = r.ReceiptNumber
	m.SupplierID = r.SupplierID
	m.LotCode = r.LotCode
	m.Total = r.Total
	m.ReceiptDate = r.ReceiptDate.UTC()
	m.RecordedBy = r.RecordedBy
}

// PurchaseReceiptModelFromDomain creates a new persistence model from a domain PurchaseReceipt entity.
func PurchaseReceiptModelFromDomain(r *trade.PurchaseReceipt) *PurchaseReceiptModel {
	m := &PurchaseReceiptModel{}
	m.FromDomain(r)
	return m
}

// PurchaseLineModel is the persistence model for the PurchaseLine domain entity.
type PurchaseLineModel struct {
	BaseModel
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int64           `gorm:"not null;check:quantity > 0"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Location   string          `gorm:"type:varchar(50);not null"`
	ExpiryDate *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (PurchaseLineModel) TableName() string {
	return "purchase_lines"
}

// ToDomain converts the persistence model to a domain PurchaseLine entity.
func (m *PurchaseLineModel) ToDomain() *trade.PurchaseLine {
	return &trade.PurchaseLine{
		BaseEntity: m.BaseModel.ToDomain(),
		ReceiptID:  m.ReceiptID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		LineTotal:  m.LineTotal,
		Location:   m.Location,
		ExpiryDate: utcPtr(m.ExpiryDate),
	}
}

// FromDomain populates the persistence model from a domain PurchaseLine entity.
func (m *PurchaseLineModel) FromDomain(l *trade.PurchaseLine) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ReceiptID = l.ReceiptID
	m.ProductID = l.ProductID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.LineTotal = l.LineTotal
	m.Location = l.Location
	m.ExpiryDate = utcPtr(l.ExpiryDate)
}

// PurchaseLineModelFromDomain creates a new persistence model from a domain PurchaseLine entity.
func PurchaseLineModelFromDomain(l *trade.PurchaseLine) *PurchaseLineModel {
	m := &PurchaseLineModel{}
	m.FromDomain(l)
	return m
}

// SupplierReturnModel is the persistence model for the SupplierReturn domain entity.
type SupplierReturnModel struct {
	BaseModel
	ProductID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	LotID         *uuid.UUID                 `gorm:"type:uuid"`
	SupplierID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Quantity      int64                      `gorm:"not null;check:quantity > 0"`
	Reason        string                     `gorm:"type:varchar(200);not null"`
	Notes         string                     `gorm:"type:text"`
	Status        trade.SupplierReturnStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	OpenedAt      time.Time                  `gorm:"not null"`
	ResolvedAt    *time.Time
	StockRestored bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SupplierReturnModel) TableName() string {
	return "supplier_returns"
}

// ToDomain converts the persistence model to a domain SupplierReturn entity.
func (m *SupplierReturnModel) ToDomain() *trade.SupplierReturn {
	return &trade.SupplierReturn{
		BaseEntity:    m.BaseModel.ToDomain(),
		ProductID:     m.ProductID,
		LotID:         m.LotID,
		SupplierID:    m.SupplierID,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		Notes:         m.Notes,
		Status:        m.Status,
		OpenedAt:      m.OpenedAt.UTC(),
		ResolvedAt:    utcPtr(m.ResolvedAt),
		StockRestored: m.StockRestored,
	}
}

// FromDomain populates the persistence model from a domain SupplierReturn entity.
func (m *SupplierReturnModel) FromDomain(r *trade.SupplierReturn) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.LotID = r.LotID
	m.SupplierID = r.SupplierID
	m.Quantity = r.Quantity
	m.Reason = r.Reason
	m.Notes = r.Notes
	m.Status = r.Status
	m.OpenedAt = r.OpenedAt.UTC()
	m.ResolvedAt = utcPtr(r.ResolvedAt)
	m.StockRestored = r.StockRestored
}

// SupplierReturnModelFromDomain creates a new persistence model from a domain SupplierReturn entity.
func SupplierReturnModelFromDomain(r *trade.SupplierReturn) *SupplierReturnModel {
	m := &SupplierReturnModel{}
	m.FromDomain(r)
	return m
}

// CustomerReturnModel is the persistence model for the CustomerReturn domain entity.
type CustomerReturnModel struct {
	BaseModel
	SaleLineID     *uuid.UUID                 `gorm:"type:uuid;index"`
	ProductID      uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Quantity       int64                      `gorm:"not null;check:quantity > 0"`
	Reason         string                     `gorm:"type:varchar(200);not null"`
	Notes          string                     `gorm:"type:text"`
	Status         trade.CustomerReturnStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Resolution     trade.Resolution           `gorm:"type:varchar(20)"`
	RefundAmount   decimal.Decimal            `gorm:"type:decimal(12,2);not null;default:0"`
	OpenedAt       time.Time                  `gorm:"not null"`
	ProcessedAt    *time.Time
	EffectsApplied bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CustomerReturnModel) TableName() string {
	return "customer_returns"
}

// ToDomain converts the persistence model to a domain CustomerReturn entity.
func (m *CustomerReturnModel) ToDomain() *trade.CustomerReturn {
	return &trade.CustomerReturn{
		BaseEntity:     m.BaseModel.ToDomain(),
		SaleLineID:     m.SaleLineID,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		Notes:          m.Notes,
		Status:         m.Status,
		Resolution:     m.Resolution,
		RefundAmount:   m.RefundAmount,
		OpenedAt:       m.OpenedAt.UTC(),
		ProcessedAt:    utcPtr(m.ProcessedAt),
		EffectsApplied: m.EffectsApplied,
	}
}

// FromDomain populates the persistence model from a domain CustomerReturn entity.
func (m *CustomerReturnModel) FromDomain(r *trade.CustomerReturn) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SaleLineID = r.SaleLineID
	m.ProductID = r.ProductID
	m.Quantity = r.Quantity
	m.Reason = r.Reason
	m.Notes = r.Notes
	m.Status = r.Status
	m.Resolution = r.Resolution
	m.RefundAmount = r.RefundAmount
	m.OpenedAt = r.OpenedAt.UTC()
	m.ProcessedAt = utcPtr(r.ProcessedAt)
	m.EffectsApplied = r.EffectsApplied
}

// CustomerReturnModelFromDomain creates a new persistence model from a domain CustomerReturn entity.
func CustomerReturnModelFromDomain(r *trade.CustomerReturn) *CustomerReturnModel {
	m := &CustomerReturnModel{}
	m.FromDomain(r)
	return m
}
