package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/finance"
)

// CashRegisterModel is the persistence model of the single cash register row
type CashRegisterModel struct {
	ID        int             `gorm:"primaryKey;check:id = 1"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CashRegisterModel) TableName() string {
	return "cash_registers"
}

// ToDomain converts the persistence model to the domain CashRegister.
func (m *CashRegisterModel) ToDomain() *finance.CashRegister {
	return &finance.CashRegister{
		ID:        m.ID,
		Balance:   m.Balance.Round(2),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// CashMovementModel is the persistence model for the CashMovement domain entity.
// Rows are only ever inserted.
type CashMovementModel struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key"`
	Key         string               `gorm:"column:idempotency_key;type:varchar(120);not null;uniqueIndex"`
	Kind        finance.MovementKind `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	SaleLineID  *uuid.UUID           `gorm:"type:uuid;uniqueIndex"`
	SourceID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Description string               `gorm:"type:varchar(200)"`
	OccurredAt  time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CashMovementModel) TableName() string {
	return "cash_movements"
}

// ToDomain converts the persistence model to a domain CashMovement entity.
func (m *CashMovementModel) ToDomain() *finance.CashMovement {
	return &finance.CashMovement{
		ID:          m.ID,
		Key:         m.Key,
		Kind:        m.Kind,
		Amount:      m.Amount,
		SaleLineID:  m.SaleLineID,
		SourceID:    m.SourceID,
		Description: m.Description,
		OccurredAt:  m.OccurredAt.UTC(),
	}
}

// CashMovementModelFromDomain creates a new persistence model from a domain CashMovement entity.
func CashMovementModelFromDomain(mv *finance.CashMovement) *CashMovementModel {
	return &CashMovementModel{
		ID:          mv.ID,
		Key:         mv.Key,
		Kind:        mv.Kind,
		Amount:      mv.Amount,
		SaleLineID:  mv.SaleLineID,
		SourceID:    mv.SourceID,
		Description: mv.Description,
		OccurredAt:  mv.OccurredAt.UTC(),
	}
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	BaseModel
	Category    finance.PaymentCategory `gorm:"type:varchar(20);not null;index"`
	Amount      decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Description string                  `gorm:"type:varchar(200);not null"`
	PaidOn      time.Time               `gorm:"type:date;not null;index"`
	RecordedBy  string                  `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		Category:    m.Category,
		Amount:      m.Amount,
		Description: m.Description,
		PaidOn:      m.PaidOn.UTC(),
		RecordedBy:  m.RecordedBy,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		Category:    p.Category,
		Amount:      p.Amount,
		Description: p.Description,
		PaidOn:      p.PaidOn.UTC(),
		RecordedBy:  p.RecordedBy,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
