package persistence

import (
	"errors"

	"github.com/stokledger/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateError maps GORM errors onto domain errors. Duplicate keys are
// only recognised when the connection was opened with TranslateError.
func translateError(err error, resource string, ref any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFoundError(resource, ref)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError("ALREADY_EXISTS", resource+" already exists")
	}
	return err
}

// forUpdate locks the selected rows until the transaction ends. SQLite has
// no row locks and its dialect drops the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
