package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	sid := NewID()

	token, err := issuer.Issue(sid)
	require.NoError(t, err)

	got, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sid, got)
	assert.Equal(t, 3600, issuer.MaxAge())
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)
	expired := NewTokenIssuer("secret", -time.Minute)

	foreign, err := other.Issue("sid")
	require.NoError(t, err)
	old, err := expired.Issue("sid")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":   "not-a-jwt",
		"empty":     "",
		"wrong key": foreign,
		"expired":   old,
	} {
		_, err := issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}
