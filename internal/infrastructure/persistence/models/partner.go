package models

import (
	"github.com/stokledger/backend/internal/domain/partner"
)

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	CompanyName string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Phone       string `gorm:"type:varchar(15)"`
	Address     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity:  m.BaseModel.ToDomain(),
		CompanyName: m.CompanyName,
		Phone:       m.Phone,
		Address:     m.Address,
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.CompanyName = s.CompanyName
	m.Phone = s.Phone
	m.Address = s.Address
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
