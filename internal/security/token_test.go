package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
)

const testSecret = "test-secret-that-is-long-enough-123"

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60, 0)

	token, err := tm.GenerateAccessToken(42, "jane@initech.com", domain.UserRoleRecruiter)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "jane@initech.com", claims.Email)
	assert.Equal(t, domain.UserRoleRecruiter, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "ez2source", claims.Issuer)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	tm := NewTokenManager(testSecret, 60, 60)

	token, err := tm.GenerateRefreshToken(42, "jane@initech.com")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 60, 60)
	other := NewTokenManager("a-completely-different-secret-string", 60, 60)

	token, err := tm.GenerateAccessToken(42, "jane@initech.com", domain.UserRoleRecruiter)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 60, 60)
	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	m := &tokenManager{
		secret:        []byte(testSecret),
		accessExpiry:  -time.Minute,
		refreshExpiry: time.Hour,
	}

	token, err := m.GenerateAccessToken(42, "jane@initech.com", domain.UserRoleRecruiter)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, CheckPassword("supersecret", hash))
	assert.False(t, CheckPassword("wrongpassword", hash))
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.False(t, seen[pw], "temp passwords should not repeat")
		seen[pw] = true
	}
}
