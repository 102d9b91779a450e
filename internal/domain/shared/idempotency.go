package shared

import (
	"context"
	"time"
)

// IdempotentResponse is the stored outcome of a request made with an
// Idempotency-Key, replayed verbatim when the key is seen again
type IdempotentResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers idempotency keys so that a request carrying a
// key is processed at most once while the key is retained
type IdempotencyStore interface {
	// Reserve claims a key for an in-flight request.
	// Returns false when the key is already reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete stores the response for a reserved key
	Complete(ctx context.Context, key string, response IdempotentResponse, ttl time.Duration) error

	// Lookup returns the stored response, or nil while the key is unknown
	// or its request is still in flight
	Lookup(ctx context.Context, key string) (*IdempotentResponse, error)

	// Release forgets a key so the request can be retried
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
