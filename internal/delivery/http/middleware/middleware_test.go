package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-movie-community-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(handlers...)
	r.Any("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func serve(r *gin.Engine, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, "/ping", nil))
	return w
}

func TestRateLimit_InMemory(t *testing.T) {
	cfg := GlobalRateLimitConfig(2, time.Minute)
	cfg.KeyPrefix = "rl:test:" + t.Name() + ":"
	r := newEngine(RateLimitMiddleware(cfg))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet).Code)
	w := serve(r, http.MethodGet)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(r, http.MethodGet)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimit_WriteOnlyCountsMutations(t *testing.T) {
	cfg := WriteRateLimitConfig(1, time.Minute)
	cfg.KeyPrefix = "rl:test:" + t.Name() + ":"
	r := newEngine(RateLimitMiddleware(cfg))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet).Code)
	}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPut).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPut).Code)
}

func TestClientKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.9:1234"

	assert.Equal(t, "ip:203.0.113.9", ClientKey(c))

	c.Set(string(domain.KeyUserID), "u1")
	assert.Equal(t, "u:u1", ClientKey(c))
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	r := newEngine()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "6f1c2f3e-8a7b-4c1d-9e2f-0a1b2c3d4e5f")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "6f1c2f3e-8a7b-4c1d-9e2f-0a1b2c3d4e5f", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestCSRF_BearerRequestsSkipCheck(t *testing.T) {
	r := newEngine(CSRFMiddleware(false))

	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("Authorization", "Bearer x")
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "x"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Anonymous POSTs carry no session to forge
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost).Code)
}

func TestSecurityHeaders(t *testing.T) {
	w := serve(newEngine(SecurityHeadersMiddleware()), http.MethodGet)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:")
}
