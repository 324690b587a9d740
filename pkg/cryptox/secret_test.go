package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	t.Parallel()

	hash, err := HashSecret("super-secret-api-key")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifySecret("super-secret-api-key", hash))
	require.ErrorIs(t, VerifySecret("wrong-key", hash), ErrSecretMismatch)
}

func TestHashSecretProducesUniqueSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashSecret("same-input")
	require.NoError(t, err)
	h2, err := HashSecret("same-input")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "hashes should differ due to random salt")

	require.NoError(t, VerifySecret("same-input", h1))
	require.NoError(t, VerifySecret("same-input", h2))
}

func TestVerifySecretRejectsMalformedHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2id", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=65536,t=3,p=2"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, VerifySecret("anything", tt.hash))
		})
	}
}
