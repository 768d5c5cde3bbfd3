package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	tok, err := SignJWT("secret", "user-1", "student", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := SignJWT("secret", "user-1", "student", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT("other", tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := SignJWT("secret", "user-1", "student", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT("secret", tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("secret", "not-a-token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := HashToken("tok-a")
	b := HashToken("tok-b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashToken("tok-a"))
	assert.NotEqual(t, "tok-a", a)
}
