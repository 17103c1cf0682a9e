package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/pms-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	var seen *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		require.NoError(t, err)
		seen = claims
		w.WriteHeader(http.StatusNoContent)
	})
	h := auth.AuthMiddleware(next)

	t.Run("BearerHeader", func(t *testing.T) {
		token, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, testUserID, seen.UserID)
	})

	t.Run("Cookie", func(t *testing.T) {
		token, err := auth.GenerateJWT(testUserID, "hr", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "hr", seen.Role)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/goals", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/goals", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
