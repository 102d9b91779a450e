package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), "req-42"))
		c.Next()
	})
	router.Use(Recovery(log), GinMiddleware(log))
	return router
}

func TestGinMiddleware(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	router := newTestRouter(zap.New(core))

	router.GET("/api/v1/products/:id", func(c *gin.Context) {
		L(c.Request.Context()).Debug("looking up product")
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc?x=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	handlerLogs := recorded.FilterMessage("looking up product").All()
	require.Len(t, handlerLogs, 1)
	assert.Equal(t, "req-42", handlerLogs[0].ContextMap()["request_id"])

	requests := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, requests, 1)
	fields := requests[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, requests[0].Level)
	assert.Equal(t, "/api/v1/products/:id", fields["route"])
	assert.Equal(t, "x=1", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	requests = recorded.FilterMessage("HTTP Request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, zapcore.WarnLevel, requests[1].Level)
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := newTestRouter(zap.New(core))
	router.GET("/panic", func(c *gin.Context) {
		panic("ledger exploded")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")

	panics := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, panics, 1)
	assert.Equal(t, "req-42", panics[0].ContextMap()["request_id"])
}
