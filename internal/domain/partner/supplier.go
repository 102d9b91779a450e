package partner

import (
	"strings"
	"unicode/utf8"

	"github.com/stokledger/backend/internal/domain/shared"
)

// Supplier is a company goods are purchased from. Company names are unique.
type Supplier struct {
	shared.BaseEntity
	CompanyName string
	Phone       string
	Address     string
}

// NewSupplier creates a new supplier
func NewSupplier(companyName, phone, address string) (*Supplier, error) {
	s := &Supplier{BaseEntity: shared.NewBaseEntity()}
	if err := s.Update(companyName, phone, address); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the supplier's contact details
func (s *Supplier) Update(companyName, phone, address string) error {
	companyName = strings.TrimSpace(companyName)
	phone = strings.TrimSpace(phone)
	if companyName == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if utf8.RuneCountInString(companyName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 100 characters")
	}
	if len(phone) > 15 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 15 characters")
	}
	s.CompanyName = companyName
	s.Phone = phone
	s.Address = strings.TrimSpace(address)
	s.Touch()
	return nil
}
