package gatewaysdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Zoho Analytics gateway.
// It provides access to unauthenticated operations and can create
// authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new gateway client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthenticateWithAuthorizationCode runs the gateway's authorization code
// flow end to end: it requests a code from /authorize (the gateway grants
// consent immediately) and exchanges it at /token for a session.
func (c *SDKClient) AuthenticateWithAuthorizationCode(
	ctx context.Context,
	clientID, redirectURI, scope string,
) (*Session, error) {
	code, err := c.Authorize(ctx, clientID, redirectURI, scope)
	if err != nil {
		return nil, err
	}

	tokenResp, err := c.AuthorizationCodeGrant(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}

	return newSession(c, clientID, tokenResp), nil
}

// AuthenticateWithRefreshToken creates an authenticated session from an
// existing refresh token.
func (c *SDKClient) AuthenticateWithRefreshToken(
	ctx context.Context,
	clientID, refreshToken string,
) (*Session, error) {
	tokenResp, err := c.RefreshGrant(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	return newSession(c, clientID, tokenResp), nil
}

// NewAPIKeySession creates a session that authenticates with a pre-shared
// API key instead of bearer tokens. No token refresh is performed.
func (c *SDKClient) NewAPIKeySession(apiKey string) *Session {
	return &Session{
		client: c,
		apiKey: apiKey,
	}
}
