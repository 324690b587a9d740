package gatewaysdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Authorize requests an authorization code from GET /authorize. The gateway
// grants consent immediately and answers with a redirect; this method does
// not follow it and instead extracts the code from the Location header.
func (c *SDKClient) Authorize(ctx context.Context, clientID, redirectURI, scope string) (string, error) {
	query := url.Values{
		"response_type": {"code"},
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
	}
	if scope != "" {
		query.Set("scope", scope)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.url("/authorize?"+query.Encode()),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Do not follow the redirect; the code lives in the Location header.
	client := *c.HTTPClient
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", parseErrorResponse(resp, bodyBytes)
	}

	location, err := resp.Location()
	if err != nil {
		return "", fmt.Errorf("authorize response missing Location header: %w", err)
	}

	code := location.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("authorize redirect missing code parameter")
	}

	return code, nil
}

// AuthorizationCodeGrant exchanges an authorization code for tokens.
func (c *SDKClient) AuthorizationCodeGrant(
	ctx context.Context,
	code, redirectURI string,
) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}

	return c.requestToken(ctx, data)
}

// RefreshGrant requests a new access token using a refresh token.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	return c.requestToken(ctx, data)
}

func (c *SDKClient) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url("/token"),
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, bodyBytes)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &tokenResp, nil
}
