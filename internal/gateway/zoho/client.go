// Package zoho is a minimal client for the Zoho Analytics REST API v2. It
// owns the OAuth access-token lifecycle: tokens are minted from the
// long-lived refresh credential on demand and replaced when the provider
// reports them expired.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

const (
	// The Analytics API uses a vendor scheme, not plain Bearer.
	authScheme = "Zoho-oauthtoken "
	orgHeader  = "ZANALYTICS-ORGID"

	// maxResponseBytes bounds how much of a provider response we buffer.
	maxResponseBytes = 32 << 20 // 32 MiB
)

// Config collects everything needed to talk to the Analytics and Accounts
// APIs. The refresh credential is immutable and loaded once at startup.
type Config struct {
	AccountsURL  string // identity provider base, e.g. https://accounts.zoho.com
	AnalyticsURL string // export API base, e.g. https://analyticsapi.zoho.com
	ClientID     string
	ClientSecret string
	RefreshToken string
	OrgID        string

	Timeout      time.Duration // per network call
	SafetyMargin time.Duration // refresh this long before token expiry
}

// Client executes authorized calls against the Analytics export API.
type Client struct {
	analyticsURL string
	orgID        string
	httpClient   *http.Client
	tokens       *tokenSource
}

// NewClient builds a Client. The refresh credential is handed to the token
// source and never leaves it.
func NewClient(cfg Config) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Client{
		analyticsURL: strings.TrimSuffix(cfg.AnalyticsURL, "/"),
		orgID:        cfg.OrgID,
		httpClient:   httpClient,
		tokens: newTokenSource(
			httpClient,
			strings.TrimSuffix(cfg.AccountsURL, "/")+"/oauth/v2/token",
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.RefreshToken,
			cfg.SafetyMargin,
		),
	}
}

// Configured reports whether the refresh credential is fully populated.
func (c *Client) Configured() bool {
	return c.tokens.configured()
}

// TokenStatus reports whether a usable cached access token exists and when it
// expires. Diagnostic only; never triggers a refresh.
func (c *Client) TokenStatus() (bool, time.Time) {
	return c.tokens.status()
}

// InvalidateToken drops the cached access token, forcing the next call to
// refresh.
func (c *Client) InvalidateToken() {
	c.tokens.invalidate()
}

// doAuthorized performs one Analytics API call with the current access token
// attached. On a 401 it invalidates the cached token and retries exactly
// once; a second 401 surfaces as an auth error rather than looping against a
// dead credential. Any other non-200 status is a remote query error with the
// provider's detail.
func (c *Client) doAuthorized(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, domain.Validationf("failed to encode request body: %v", err)
		}
	}

	retried := false
	for {
		token, err := c.tokens.token(ctx)
		if err != nil {
			return nil, err
		}

		u := c.analyticsURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, domain.RemoteQueryf("failed to build request: %v", err)
		}
		req.Header.Set("Authorization", authScheme+token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set(orgHeader, c.orgID)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, classifyTransportErr(method+" "+path, err)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if err != nil {
			return nil, domain.Parsef("failed to read provider response: %v", err)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			if retried {
				return nil, domain.Authf("analytics API rejected credentials after token refresh")
			}
			c.tokens.invalidate()
			retried = true
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, domain.RemoteQueryf(
				"analytics API returned status %d: %s",
				resp.StatusCode, providerDetail(data),
			)
		}

		return data, nil
	}
}

// providerDetail extracts a readable message from a provider error body,
// falling back to the truncated raw payload.
func providerDetail(data []byte) string {
	var envelope struct {
		Data struct {
			ErrorMessage string `json:"errorMessage"`
		} `json:"data"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Data.ErrorMessage != "" {
			return envelope.Data.ErrorMessage
		}
		if envelope.Summary != "" {
			return envelope.Summary
		}
	}

	const maxDetail = 512
	detail := strings.TrimSpace(string(data))
	if len(detail) > maxDetail {
		detail = detail[:maxDetail] + "..."
	}
	if detail == "" {
		detail = "(empty body)"
	}
	return detail
}

// classifyTransportErr maps a transport failure onto the gateway taxonomy:
// deadline overruns become timeout errors, everything else a remote error.
func classifyTransportErr(op string, err error) *domain.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.Timeoutf("%s exceeded request timeout", op)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return domain.Timeoutf("%s exceeded request timeout", op)
	}
	return domain.RemoteQueryf("%s failed: %v", op, err)
}

// rawJSON validates a passthrough payload and returns it untouched.
func rawJSON(data []byte) (json.RawMessage, error) {
	if !json.Valid(data) {
		return nil, domain.Parsef("provider returned invalid JSON (%d bytes)", len(data))
	}
	return json.RawMessage(data), nil
}
