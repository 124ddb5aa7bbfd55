package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("sekret", 42, "USER", "Ann", 15)
	assert.NoError(t, err)
	assert.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("sekret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "USER", claims["role"])
	assert.Equal(t, "Ann", claims["name"])
}

func TestHashRefreshRawIsStable(t *testing.T) {
	a := HashRefreshRaw("token")
	b := HashRefreshRaw("token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashRefreshRaw("other"))
}

func TestPasswordHashAndVerify(t *testing.T) {
	h, err := HashPassword("hunter2", 4)
	assert.NoError(t, err)
	assert.True(t, VerifyPassword(h, "hunter2"))
	assert.False(t, VerifyPassword(h, "hunter3"))

	// A nonsense cost falls back to the bcrypt default instead of failing
	// or producing a weak hash.
	low, err := HashPassword("hunter2", 0)
	assert.NoError(t, err)
	assert.True(t, VerifyPassword(low, "hunter2"))
}
