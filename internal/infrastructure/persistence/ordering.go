package persistence

import (
	"strings"

	"github.com/stokledger/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a list query may be ordered by
type sortColumns map[string]bool

var (
	productSortColumns = sortColumns{
		"created_at": true,
		"updated_at": true,
		"stock_code": true,
		"name":       true,
		"barcode":    true,
	}
	cashMovementSortColumns = sortColumns{
		"occurred_at": true,
		"amount":      true,
		"kind":        true,
	}
)

// column returns the requested column when it is whitelisted, fallback otherwise
func (s sortColumns) column(requested, fallback string) string {
	requested = strings.TrimSpace(requested)
	if s[requested] {
		return requested
	}
	return fallback
}

// descending reports whether dir asks for descending order. Anything other
// than "asc" sorts descending.
func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

// pageScope orders by a whitelisted column and applies the filter's page.
// A zero page size returns every row.
func pageScope(filter shared.Filter, columns sortColumns, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: columns.column(filter.OrderBy, fallback)},
			Desc:   descending(filter.OrderDir),
		})
		if filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}
