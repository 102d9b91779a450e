package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorCodeKey is the gin context key handlers store the API error code under
const ErrorCodeKey = "error_code"

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider
}

// TracingWithConfig returns OpenTelemetry tracing middleware.
// It wraps otelgin, so spans are named "METHOD /route/:pattern", and adds
// request_id and cashier attributes. 4xx responses carrying an API
// error code are marked as errors with that code.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanEnricher must run after TracingWithConfig. It decorates the active
// span before and after the handler chain.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if cashier := logger.GetCashier(ctx); cashier != "" {
			span.SetAttributes(attribute.String("ledger.cashier", cashier))
		}

		c.Next()

		status := c.Writer.Status()
		code := c.GetString(ErrorCodeKey)
		if code != "" {
			span.SetAttributes(attribute.String("ledger.error_code", code))
		}
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError && code != "" {
			span.SetStatus(codes.Error, code)
		}
	}
}
