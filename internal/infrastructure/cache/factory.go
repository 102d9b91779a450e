package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis-backed store when Redis is configured
// and reachable, and an in-memory store otherwise.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) shared.IdempotencyStore {
	addr := cfg.Addr()
	if addr == "" {
		logger.Info("Redis not configured, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(5 * time.Minute)
	}

	store, err := NewRedisIdempotencyStore(ctx, &redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", addr),
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(5 * time.Minute)
	}

	logger.Info("Using Redis idempotency store", zap.String("addr", addr))
	return store
}
