package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokledger/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// An empty barcode is stored as NULL so the unique index ignores it.
type ProductModel struct {
	BaseModel
	StockCode  string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string       `gorm:"type:varchar(100);not null"`
	CategoryID *uuid.UUID   `gorm:"type:uuid;index"`
	Unit       catalog.Unit `gorm:"type:varchar(10);not null;default:'adet'"`
	Barcode    *string      `gorm:"type:varchar(13);uniqueIndex"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		StockCode:  m.StockCode,
		Name:       m.Name,
		CategoryID: m.CategoryID,
		Unit:       m.Unit,
	}
	if m.Barcode != nil {
		p.Barcode = *m.Barcode
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.StockCode = p.StockCode
	m.Name = p.Name
	m.CategoryID = p.CategoryID
	m.Unit = p.Unit
	m.Barcode = nil
	if p.Barcode != "" {
		barcode := p.Barcode
		m.Barcode = &barcode
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// PriceRuleModel is the persistence model for the PriceRule domain entity.
type PriceRuleModel struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CostPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Margin    decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	VAT       decimal.Decimal `gorm:"column:vat;type:decimal(5,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	NetPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (PriceRuleModel) TableName() string {
	return "price_rules"
}

// ToDomain converts the persistence model to a domain PriceRule entity.
func (m *PriceRuleModel) ToDomain() *catalog.PriceRule {
	return &catalog.PriceRule{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		CostPrice:  m.CostPrice,
		Margin:     m.Margin,
		VAT:        m.VAT,
		Discount:   m.Discount,
		NetPrice:   m.NetPrice,
	}
}

// FromDomain populates the persistence model from a domain PriceRule entity.
func (m *PriceRuleModel) FromDomain(r *catalog.PriceRule) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.CostPrice = r.CostPrice
	m.Margin = r.Margin
	m.VAT = r.VAT
	m.Discount = r.Discount
	m.NetPrice = r.NetPrice
}

// PriceRuleModelFromDomain creates a new persistence model from a domain PriceRule entity.
func PriceRuleModelFromDomain(r *catalog.PriceRule) *PriceRuleModel {
	m := &PriceRuleModel{}
	m.FromDomain(r)
	return m
}
