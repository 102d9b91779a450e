package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stokledger/backend/internal/domain/shared"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"github.com/stokledger/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets a client retry a POST without applying it twice
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader is set on responses served from the store
	IdempotentReplayHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
	defaultIdempotencyTTL   = 24 * time.Hour
)

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	TTL   time.Duration
}

// Idempotency deduplicates POST requests carrying an Idempotency-Key header.
// The first request reserves the key and its 2xx response is stored; later
// requests with the same key get the stored response back. A retry that
// arrives while the first is still running is answered with 409. Failed
// requests release the key so the client may try again.
//
// If the store is unreachable the request proceeds without deduplication.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if cfg.Store == nil || c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.Set(ErrorCodeKey, dto.ErrCodeBadRequest)
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		ctx := c.Request.Context()
		log := logger.L(ctx)
		scoped := c.Request.URL.Path + "|" + key

		reserved, err := cfg.Store.Reserve(ctx, scoped, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, processing request without deduplication", zap.Error(err))
			c.Next()
			return
		}

		if !reserved {
			stored, err := cfg.Store.Lookup(ctx, scoped)
			if err != nil {
				log.Warn("Failed to look up idempotent response", zap.Error(err))
			}
			if stored != nil {
				c.Header(IdempotentReplayHeader, "true")
				c.Data(stored.Status, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			c.Set(ErrorCodeKey, dto.ErrCodeIdempotencyInProgress)
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeIdempotencyInProgress,
				"A request with this Idempotency-Key is already being processed",
				GetRequestID(c),
			))
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// The client may have gone away; the outcome must still be recorded
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		status := writer.Status()
		if status >= http.StatusOK && status < http.StatusMultipleChoices {
			err = cfg.Store.Complete(storeCtx, scoped, shared.IdempotentResponse{
				Status:      status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}, ttl)
			if err != nil {
				log.Error("Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		if err := cfg.Store.Release(storeCtx, scoped); err != nil {
			log.Error("Failed to release idempotency key", zap.Error(err))
		}
	}
}

// capturingWriter keeps a copy of the response body
type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
