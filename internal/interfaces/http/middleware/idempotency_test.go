package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotentRouter(t *testing.T, store shared.IdempotencyStore, status int, calls *int32) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(Idempotency(IdempotencyConfig{Store: store, TTL: time.Minute}))
	router.POST("/sales", func(c *gin.Context) {
		n := atomic.AddInt32(calls, 1)
		c.JSON(status, gin.H{"call": n})
	})
	router.GET("/sales", func(c *gin.Context) {
		atomic.AddInt32(calls, 1)
		c.Status(http.StatusOK)
	})
	return router
}

func post(router *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	var calls int32
	router := newIdempotentRouter(t, store, http.StatusCreated, &calls)

	first := post(router, "sale-42")
	second := post(router, "sale-42")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotentReplayHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, first.Header().Get(IdempotentReplayHeader))
}

func TestIdempotency_ReleasesFailedRequests(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	var calls int32
	router := newIdempotentRouter(t, store, http.StatusUnprocessableEntity, &calls)

	post(router, "sale-43")
	post(router, "sale-43")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_PassThrough(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	var calls int32
	router := newIdempotentRouter(t, store, http.StatusCreated, &calls)

	post(router, "")
	post(router, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set(IdempotencyKeyHeader, "sale-44")
	router.ServeHTTP(w, req)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, store.Size())
}

func TestIdempotency_InFlight(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	var calls int32
	router := newIdempotentRouter(t, store, http.StatusCreated, &calls)

	reserved, err := store.Reserve(context.Background(), "/sales|sale-45", time.Minute)
	require.NoError(t, err)
	require.True(t, reserved)

	w := post(router, "sale-45")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_IN_PROGRESS")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestIdempotency_RejectsLongKeys(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	defer store.Close()
	var calls int32
	router := newIdempotentRouter(t, store, http.StatusCreated, &calls)

	w := post(router, strings.Repeat("k", 300))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

type failingStore struct{ shared.IdempotencyStore }

func (failingStore) Reserve(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestIdempotency_StoreDownFailsOpen(t *testing.T) {
	var calls int32
	router := newIdempotentRouter(t, failingStore{}, http.StatusCreated, &calls)

	assert.Equal(t, http.StatusCreated, post(router, "sale-46").Code)
	assert.Equal(t, http.StatusCreated, post(router, "sale-46").Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
