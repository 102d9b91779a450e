package persistence

import (
	"context"
	"fmt"

	"github.com/stokledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// nextSequenceSQL creates the counter at 1 or increments it in a single
// statement, so concurrent callers never read the same value
const nextSequenceSQL = `INSERT INTO sequences (name, value) VALUES (?, 1)
ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
RETURNING value`

// GormSequenceRepository implements SequenceRepository using GORM
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments the named sequence and returns its new value
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, name).Scan(&value).Error; err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return value, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ shared.SequenceRepository = (*GormSequenceRepository)(nil)
