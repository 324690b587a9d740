package zoho

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

// defaultTokenLifetime applies when the provider omits expires_in.
const defaultTokenLifetime = time.Hour

// accessToken is an immutable value: it is replaced whole on refresh, never
// mutated in place.
type accessToken struct {
	value     string
	expiresAt time.Time
}

// tokenSource is the single shared mutable resource in the gateway: a
// mutex-guarded cell holding zero or one access token. The whole
// check-expiry/refresh/store sequence runs under the lock, so concurrent
// requests never race two refreshes against the identity provider; late
// arrivals observe the token written just before they entered.
type tokenSource struct {
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	refreshToken string
	safetyMargin time.Duration

	mu      sync.Mutex
	current *accessToken

	now func() time.Time // test hook
}

func newTokenSource(
	httpClient *http.Client,
	tokenURL, clientID, clientSecret, refreshToken string,
	safetyMargin time.Duration,
) *tokenSource {
	return &tokenSource{
		httpClient:   httpClient,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		safetyMargin: safetyMargin,
		now:          time.Now,
	}
}

func (ts *tokenSource) configured() bool {
	return ts.clientID != "" && ts.clientSecret != "" && ts.refreshToken != ""
}

// token returns the cached access token while it remains inside the safety
// margin, refreshing synchronously otherwise. A failed refresh surfaces as an
// auth error without being retried here; a dead refresh credential is not a
// transient condition.
func (ts *tokenSource) token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.current != nil && ts.now().Before(ts.current.expiresAt.Add(-ts.safetyMargin)) {
		return ts.current.value, nil
	}

	if !ts.configured() {
		return "", domain.Authf("refresh credential is not configured (client_id/client_secret/refresh_token)")
	}

	fresh, err := ts.refresh(ctx)
	if err != nil {
		return "", err
	}
	ts.current = fresh
	return fresh.value, nil
}

// invalidate discards the cached token so the next caller refreshes.
func (ts *tokenSource) invalidate() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.current = nil
}

// status reports cached-token validity for diagnostics without refreshing.
func (ts *tokenSource) status() (bool, time.Time) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.current == nil {
		return false, time.Time{}
	}
	valid := ts.now().Before(ts.current.expiresAt.Add(-ts.safetyMargin))
	return valid, ts.current.expiresAt
}

// refresh exchanges the refresh credential for a new access token. Called
// with ts.mu held.
func (ts *tokenSource) refresh(ctx context.Context) (*accessToken, error) {
	form := url.Values{
		"refresh_token": {ts.refreshToken},
		"client_id":     {ts.clientID},
		"client_secret": {ts.clientSecret},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, ts.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, domain.Authf("failed to build token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		if terr := classifyTransportErr("token refresh", err); terr.Kind == domain.KindTimeout {
			return nil, terr
		}
		return nil, domain.Authf("token refresh failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, domain.Authf("failed to read token response: %v", err)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(data))
		if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
			detail = body.Error
		}
		return nil, domain.Authf("identity provider rejected refresh (status %d): %s", resp.StatusCode, detail)
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, domain.Authf("malformed token response: %v", err)
	}
	if body.AccessToken == "" {
		return nil, domain.Authf("token response missing access_token")
	}

	lifetime := defaultTokenLifetime
	if body.ExpiresIn > 0 {
		lifetime = time.Duration(body.ExpiresIn) * time.Second
	}

	return &accessToken{
		value:     body.AccessToken,
		expiresAt: ts.now().Add(lifetime),
	}, nil
}
