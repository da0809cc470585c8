package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	toks := NewTokens("secret", time.Hour)

	signed, err := toks.Sign("acct-1", "admin")
	require.NoError(t, err)

	claims, err := toks.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Sign("acct-1", "user")
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Verify(signed)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	toks := NewTokens("secret", -time.Minute)
	signed, err := toks.Sign("acct-1", "user")
	require.NoError(t, err)

	_, err = toks.Verify(signed)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	toks := NewTokens("secret", time.Hour)
	_, err := toks.Verify("not.a.token")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	require.NoError(t, CheckPassword(hash, "hunter22"))
	require.Error(t, CheckPassword(hash, "hunter23"))
}
