package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("test-key")
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	claims := NewAccessClaims("connector", "chatgpt", "default", time.Hour, "test-issuer", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verifier := NewVerifierEdDSA(keys, "test-issuer", nil)
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "connector", got.Subject)
	require.Equal(t, "chatgpt", got.ClientID)
	require.Equal(t, "default", got.Scope)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("test-key")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	claims := NewAccessClaims("connector", "chatgpt", "default", time.Hour, "issuer-a", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := NewVerifierEdDSA(keys, "issuer-b", nil)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("test-key")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	claims := NewAccessClaims("connector", "chatgpt", "default", time.Hour, "test-issuer", time.Now().Add(-2*time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := NewVerifierEdDSA(keys, "test-issuer", nil)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("key-a")
	require.NoError(t, err)

	other, err := NewEphemeralSigner("key-b")
	require.NoError(t, err)

	// Only key-b is in the verification set.
	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(other))

	claims := NewAccessClaims("connector", "chatgpt", "default", time.Hour, "test-issuer", time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := NewVerifierEdDSA(keys, "test-issuer", nil)
	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestKeySetPublishesJWKS(t *testing.T) {
	t.Parallel()

	signer, err := NewEphemeralSigner("gw-1")
	require.NoError(t, err)

	keys := NewKeySet()
	require.False(t, keys.IsReady())
	require.NoError(t, keys.AddSigner(signer))
	require.True(t, keys.IsReady())

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.Equal(t, "gw-1", jwks.Keys[0].Kid)
}
