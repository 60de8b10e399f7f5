package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 42, "lib@example.com", "LIBRARIAN", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "lib@example.com", claims["email"])
	assert.Equal(t, "LIBRARIAN", claims["role"])

	// Expiry should be roughly 15 minutes out.
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)
}

func TestNewAccessTokenRejectedByWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "a@example.com", "ADMIN", 5)
	require.NoError(t, err)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
	if tok != nil {
		assert.False(t, tok.Valid)
	}
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(14)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96) // 48 random bytes hex encoded
	assert.WithinDuration(t, time.Now().UTC().Add(14*24*time.Hour), rt.Exp, 5*time.Second)

	other, err := NewRefreshToken(14)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRawIsStable(t *testing.T) {
	a := HashRefreshRaw("some-token")
	b := HashRefreshRaw("some-token")
	c := HashRefreshRaw("other-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // sha256 hex
}
