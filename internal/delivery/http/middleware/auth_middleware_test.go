package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-devnetwork-backend/internal/delivery/http/middleware"
	"go-devnetwork-backend/internal/domain"
	"go-devnetwork-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedRouter(tokens *token.Service, handlerRan *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", middleware.AuthGuard(tokens), func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(string(domain.KeyUserID))})
	})
	return r
}

func TestAuthGuard(t *testing.T) {
	tokens := token.NewService("guard-secret", 10*time.Hour)

	t.Run("missing token is rejected before the handler", func(t *testing.T) {
		handlerRan := false
		r := newGuardedRouter(tokens, &handlerRan)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"msg":"No token, authorization denied"}`, w.Body.String())
		assert.False(t, handlerRan)
	})

	t.Run("invalid token is rejected before the handler", func(t *testing.T) {
		handlerRan := false
		r := newGuardedRouter(tokens, &handlerRan)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("x-auth-token", "tampered.token.value")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"msg":"Token is not valid"}`, w.Body.String())
		assert.False(t, handlerRan)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		handlerRan := false
		r := newGuardedRouter(tokens, &handlerRan)

		other := token.NewService("other-secret", 10*time.Hour)
		signed, err := other.Issue("user-1")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("x-auth-token", signed)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, handlerRan)
	})

	t.Run("valid token binds the identity for the handler", func(t *testing.T) {
		handlerRan := false
		r := newGuardedRouter(tokens, &handlerRan)

		signed, err := tokens.Issue("user-1")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("x-auth-token", signed)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, handlerRan)
		assert.JSONEq(t, `{"user_id":"user-1"}`, w.Body.String())
	})
}
