package shared

import "context"

// SequenceRepository hands out gapless numbers from named counters.
// Next increments atomically, so concurrent callers never see the same value.
type SequenceRepository interface {
	// Next increments the named counter, creating it at 1, and returns the new value
	Next(ctx context.Context, name string) (int64, error)
}
