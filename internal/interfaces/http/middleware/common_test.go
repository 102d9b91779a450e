package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stokledger/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	var seenID, seenCtxID, seenCashier string
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		seenID = GetRequestID(c)
		seenCtxID = logger.GetRequestID(c.Request.Context())
		seenCashier = logger.GetCashier(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("generates an ID when none is sent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Len(t, seenID, 32)
		assert.Equal(t, seenID, w.Header().Get(RequestIDHeader))
		assert.Equal(t, seenID, seenCtxID)
		assert.Empty(t, seenCashier)
	})

	t.Run("keeps the caller's ID and cashier", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "till-7-0001")
		req.Header.Set(CashierHeader, " ayse ")
		router.ServeHTTP(w, req)

		assert.Equal(t, "till-7-0001", seenID)
		assert.Equal(t, "till-7-0001", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "ayse", seenCashier)
	})

	t.Run("truncates oversized IDs", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
		router.ServeHTTP(w, req)

		assert.Len(t, seenID, MaxRequestIDLength)
	})
}

func TestCORSWithConfig(t *testing.T) {
	newRouter := func(origins ...string) *gin.Engine {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = origins
		router := gin.New()
		router.Use(CORSWithConfig(cfg))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	tests := []struct {
		name       string
		origins    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed origin", []string{"http://till.local"}, http.MethodGet, "http://till.local", http.StatusOK, "http://till.local"},
		{"unknown origin", []string{"http://till.local"}, http.MethodGet, "http://evil.example", http.StatusOK, ""},
		{"no origins configured", nil, http.MethodGet, "http://till.local", http.StatusOK, ""},
		{"wildcard", []string{"*"}, http.MethodGet, "http://any.example", http.StatusOK, "*"},
		{"preflight", []string{"http://till.local"}, http.MethodOptions, "http://till.local", http.StatusNoContent, "http://till.local"},
		{"preflight from unknown origin", []string{"http://till.local"}, http.MethodOptions, "http://evil.example", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set("Origin", tt.origin)
			newRouter(tt.origins...).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllow != "" {
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), IdempotencyKeyHeader)
			}
		})
	}
}

func TestSecure(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/test", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("small body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":1}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared oversize body is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":"0123456789012345"}`)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})

	t.Run("zero disables the limit", func(t *testing.T) {
		open := gin.New()
		open.Use(BodyLimit(0))
		open.POST("/test", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 1024))))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
