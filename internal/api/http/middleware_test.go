package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	tm := security.NewTokenManager("test-secret-that-is-long-enough-123", 60, 60)
	var gotClaims *security.UserClaims
	handler := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("MissingHeader", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/conversations", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/conversations", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(42, "jane@initech.com")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/api/v1/conversations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidAccessToken", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(42, "jane@initech.com", domain.UserRoleRecruiter)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/api/v1/conversations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, int32(42), gotClaims.UserID)
		assert.Equal(t, domain.UserRoleRecruiter, gotClaims.Role)
	})
}
