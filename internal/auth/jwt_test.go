package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Sign(secret, 42, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Sign([]byte("secret-a"), 1, "alice", time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Sign(secret, 1, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
