package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  1,
		"username": "tester",
		"role":     role,
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protected(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/x", JWTAuth(testSecret), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Username)
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protected("admin")
	hour := time.Now().Add(time.Hour)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, signToken(t, "other-secret", "admin", hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, signToken(t, testSecret, "admin", time.Now().Add(-time.Hour))).Code)

	w := do(r, signToken(t, testSecret, "admin", hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tester", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := protected("admin")
	w := do(r, signToken(t, testSecret, "supplier", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"insufficient permissions"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 2)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiter_PurgesIdleEntries(t *testing.T) {
	rl := NewIPRateLimiter(1, 1)
	defer rl.Stop()

	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.limiter("10.0.0.1")
	rl.now = func() time.Time { return now.Add(limiterEntryTTL + time.Second) }
	rl.limiter("10.0.0.2")

	assert.Equal(t, 1, rl.purge())
	assert.Len(t, rl.limiters, 1)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/x", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, w.Body.String())
}
