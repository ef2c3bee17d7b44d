package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimart/backend/internal/infrastructure/auth"
	"github.com/minimart/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret: "test-secret-at-least-32-chars-long!!",
		Issuer: "minimart-test",
	})
}

func setupRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/api/v1/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c)})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func perform(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokenService := newTokenService()

	t.Run("valid token reaches the handler with the subject set", func(t *testing.T) {
		issued, err := tokenService.Issue("u1")
		require.NoError(t, err)

		r := setupRouter(DefaultJWTConfig(tokenService))
		w := perform(r, "/api/v1/cart", "Bearer "+issued.Token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r := setupRouter(DefaultJWTConfig(tokenService))
		w := perform(r, "/api/v1/cart", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("malformed scheme is rejected", func(t *testing.T) {
		r := setupRouter(DefaultJWTConfig(tokenService))
		w := perform(r, "/api/v1/cart", "Token abc")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		r := setupRouter(DefaultJWTConfig(tokenService))
		w := perform(r, "/api/v1/cart", "Bearer not-a-jwt")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("skip paths bypass authentication", func(t *testing.T) {
		r := setupRouter(DefaultJWTConfig(tokenService))
		w := perform(r, "/healthz", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("blacklisted token is rejected", func(t *testing.T) {
		issued, err := tokenService.Issue("u1")
		require.NoError(t, err)

		claims, err := tokenService.Resolve(issued.Token)
		require.NoError(t, err)

		blacklist := auth.NewMemoryTokenBlacklist()
		require.NoError(t, blacklist.Add(context.Background(), claims.ID, time.Minute))

		cfg := DefaultJWTConfig(tokenService)
		cfg.TokenBlacklist = blacklist

		r := setupRouter(cfg)
		w := perform(r, "/api/v1/cart", "Bearer "+issued.Token)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})
}
