package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/domain/shared"
)

// MaxBarcodeLength is the longest barcode accepted (EAN-13)
const MaxBarcodeLength = 13

// Product is a sellable item identified by its stock code.
// The stock code and unit are fixed once the product exists.
type Product struct {
	shared.BaseEntity
	StockCode  string
	Name       string
	CategoryID *uuid.UUID
	Unit       Unit
	Barcode    string
}

// NewProduct creates a new product
func NewProduct(stockCode, name string, unit Unit) (*Product, error) {
	stockCode = strings.ToUpper(strings.TrimSpace(stockCode))
	name = strings.TrimSpace(name)

	if err := validateStockCode(stockCode); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be one of "+strings.Join(unitNames(), ", "))
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		StockCode:  stockCode,
		Name:       name,
		Unit:       unit,
	}, nil
}

// SetCategory assigns the product to a category, nil clears it
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// SetBarcode sets the product barcode, an empty string clears it
func (p *Product) SetBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if err := validateBarcode(barcode); err != nil {
		return err
	}
	p.Barcode = barcode
	p.Touch()
	return nil
}

// Rename changes the display name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

func validateStockCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Stock code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Stock code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.') {
			return shared.NewDomainError("INVALID_CODE", "Stock code can only contain letters, numbers, dots, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}

func validateBarcode(barcode string) error {
	if barcode == "" {
		return nil
	}
	if len(barcode) > MaxBarcodeLength {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 13 characters")
	}
	for _, r := range barcode {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_BARCODE", "Barcode can only contain digits")
		}
	}
	return nil
}
