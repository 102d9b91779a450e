package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/stokledger/backend/internal/domain/shared"
)

// Category groups products; names are unique
type Category struct {
	shared.BaseEntity
	Name string
}

// NewCategory creates a new category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 50 characters")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
