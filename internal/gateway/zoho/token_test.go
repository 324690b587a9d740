package zoho

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

// newTokenServer returns a token endpoint that counts refreshes and issues
// sequential token values.
func newTokenServer(t *testing.T, refreshes *atomic.Int32, expiresIn int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		require.Equal(t, "client-id", r.Form.Get("client_id"))
		require.Equal(t, "client-secret", r.Form.Get("client_secret"))
		require.Equal(t, "refresh-token", r.Form.Get("refresh_token"))

		n := refreshes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if expiresIn > 0 {
			fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, n, expiresIn)
			return
		}
		fmt.Fprintf(w, `{"access_token":"tok-%d"}`, n)
	}))
}

func newTestSource(tokenURL string, margin time.Duration) *tokenSource {
	return newTokenSource(
		&http.Client{Timeout: time.Second},
		tokenURL,
		"client-id", "client-secret", "refresh-token",
		margin,
	)
}

func TestTokenIsCachedWithinSafetyMargin(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := newTokenServer(t, &refreshes, 3600)
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	first, err := ts.token(context.Background())
	require.NoError(t, err)

	second, err := ts.token(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), refreshes.Load(), "second call must reuse cached token")
}

func TestTokenRefreshesPastSafetyMargin(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := newTokenServer(t, &refreshes, 3600)
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	now := time.Now()
	ts.now = func() time.Time { return now }

	first, err := ts.token(context.Background())
	require.NoError(t, err)

	// Advance to just inside the safety margin before expiry.
	now = now.Add(3600*time.Second - 30*time.Second)

	second, err := ts.token(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Equal(t, int32(2), refreshes.Load())
}

func TestConcurrentTokenCallsCollapseToOneRefresh(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	// The slow endpoint keeps the first refresh in flight while the
	// remaining callers queue on the cell.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := refreshes.Add(1)
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":3600}`, n)
	}))
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	const callers = 16
	tokens := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = ts.token(context.Background())
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), refreshes.Load(), "concurrent callers must share one refresh")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "tok-1", tokens[i], "late arrivals observe the just-written token")
	}
}

func TestInvalidateForcesRefresh(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := newTokenServer(t, &refreshes, 3600)
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	_, err := ts.token(context.Background())
	require.NoError(t, err)

	ts.invalidate()

	_, err = ts.token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(2), refreshes.Load())
}

func TestTokenDefaultLifetimeWhenExpiresInOmitted(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := newTokenServer(t, &refreshes, 0)
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	now := time.Now()
	ts.now = func() time.Time { return now }

	_, err := ts.token(context.Background())
	require.NoError(t, err)

	valid, expiresAt := ts.status()
	require.True(t, valid)
	require.Equal(t, now.Add(defaultTokenLifetime), expiresAt)
}

func TestTokenRefreshRejectedSurfacesAuthError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_code"}`))
	}))
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	_, err := ts.token(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindAuth))
	require.Contains(t, err.Error(), "invalid_code")
}

func TestTokenResponseMissingAccessToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer srv.Close()

	ts := newTestSource(srv.URL, time.Minute)

	_, err := ts.token(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindAuth))
}

func TestTokenUnconfiguredCredential(t *testing.T) {
	t.Parallel()

	ts := newTokenSource(&http.Client{}, "http://unused", "", "", "", time.Minute)

	_, err := ts.token(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindAuth))
	require.False(t, ts.configured())
}

func TestTokenStatusWithoutToken(t *testing.T) {
	t.Parallel()

	ts := newTokenSource(&http.Client{}, "http://unused", "a", "b", "c", time.Minute)

	valid, expiresAt := ts.status()
	require.False(t, valid)
	require.True(t, expiresAt.IsZero())
}
