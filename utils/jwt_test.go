package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("7c9e6679-7425-40de-944b-e07fc1f90ae7", "sam@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims["user_id"])
	assert.Equal(t, "sam@example.com", claims["email"])
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := GenerateToken("u1", "sam@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tok)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := VerifyToken("not-a-token")
	assert.Error(t, err)
}
