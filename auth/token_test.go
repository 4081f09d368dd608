package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("user-123", PurposeSession, SessionTokenTTL)
	require.NoError(t, err)

	subject, err := issuer.Verify(token, PurposeSession)
	require.NoError(t, err)
	require.Equal(t, "user-123", subject)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("user-123", PurposeSession, -time.Minute)
	require.NoError(t, err)

	_, err = issuer.Verify(token, PurposeSession)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, err := issuer.Verify("not.a.token", PurposeSession)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a").Issue("user-123", PurposeSession, SessionTokenTTL)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Verify(token, PurposeSession)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_PurposeMismatch(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	// A reset-handoff token must not pass as a session token.
	token, err := issuer.Issue("user-123", PurposeReset, ResetTokenTTL)
	require.NoError(t, err)

	_, err = issuer.Verify(token, PurposeSession)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
