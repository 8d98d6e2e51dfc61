package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluepoint/service-crm/internal/config"
	"github.com/fluepoint/service-crm/internal/middleware"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/protected", middleware.AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.MustGet(middleware.ContextUserID),
			"tenant_id": c.MustGet(middleware.ContextTenantID),
			"role":      c.MustGet(middleware.ContextUserRole),
		})
	})

	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func do(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =============================================================================
// AUTH MIDDLEWARE
// =============================================================================

func TestAuthMiddleware_ValidTokenSetsContext(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":      float64(7),
		"tenantId": float64(2),
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := do(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"tenant_id":2`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuthMiddleware_MissingHeaderIsRejected(t *testing.T) {
	r := newRouter(&config.Config{JWTSecret: "test-secret"})

	w := do(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")
}

func TestAuthMiddleware_MalformedHeaderIsRejected(t *testing.T) {
	r := newRouter(&config.Config{JWTSecret: "test-secret"})

	w := do(r, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")
}

func TestAuthMiddleware_WrongSecretIsRejected(t *testing.T) {
	r := newRouter(&config.Config{JWTSecret: "test-secret"})

	token := signToken(t, "another-secret", jwt.MapClaims{
		"sub":      float64(7),
		"tenantId": float64(2),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := do(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestAuthMiddleware_ExpiredTokenIsRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":      float64(7),
		"tenantId": float64(2),
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	w := do(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_TokenWithoutTenantIsRejected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := newRouter(cfg)

	token := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": float64(7),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := do(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token_payload")
}
