package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return addr
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	addr := startRedis(t)

	store, err := NewRedisIdempotencyStore(ctx, &redis.Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ok, err := store.Reserve(ctx, "purchase-7", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, "purchase-7", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	pending, err := store.Lookup(ctx, "purchase-7")
	require.NoError(t, err)
	assert.Nil(t, pending)

	response := shared.IdempotentResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"id":"x"}`)}
	require.NoError(t, store.Complete(ctx, "purchase-7", response, time.Minute))

	stored, err := store.Lookup(ctx, "purchase-7")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, response, *stored)

	require.NoError(t, store.Release(ctx, "purchase-7"))
	missing, err := store.Lookup(ctx, "purchase-7")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNewIdempotencyStore(t *testing.T) {
	t.Run("in-memory without Redis host", func(t *testing.T) {
		store := NewIdempotencyStore(context.Background(), config.RedisConfig{}, zap.NewNop())
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("falls back when Redis is unreachable", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		store := NewIdempotencyStore(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})
}
