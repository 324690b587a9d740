package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"code-sized token", TokenSize128, 22},
		{"refresh-sized token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			// Must decode back to the requested number of bytes.
			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)
		})
	}
}

func TestGenerateTokenInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -64} {
		_, err := GenerateToken(size)
		require.Error(t, err, "size %d", size)
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		token, err := GenerateToken(TokenSize128)
		require.NoError(t, err)
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-token")

	// SHA-256 gives 32 bytes, 43 chars base64url, stable across calls.
	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken("some-token"))
	require.NotEqual(t, fp, FingerprintToken("some-other-token"))
}
