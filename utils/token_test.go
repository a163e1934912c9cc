package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "user-public-id", time.Hour)
	require.NoError(t, err)

	subject, err := VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-public-id", subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := IssueToken(testSecret, "user-public-id", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := IssueToken(testSecret, "user-public-id", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := VerifyToken(testSecret, "definitely.not.a.jwt")
	assert.Error(t, err)
}
