package gatewaysdk

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Session represents an authenticated session with automatic token refresh.
// All Session methods handle token expiration transparently. A session built
// from an API key skips the token machinery and sends the key instead.
type Session struct {
	client *SDKClient

	apiKey string

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	clientID     string
	expiresAt    time.Time
	scope        string
}

// newSession creates a new authenticated session from a token response.
func newSession(client *SDKClient, clientID string, tokenResp *TokenResponse) *Session {
	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	// Subtract 30 seconds buffer to refresh before actual expiry
	expiresAt = expiresAt.Add(-30 * time.Second)

	return &Session{
		client:       client,
		clientID:     clientID,
		accessToken:  tokenResp.AccessToken,
		refreshToken: tokenResp.RefreshToken,
		expiresAt:    expiresAt,
		scope:        tokenResp.Scope,
	}
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	// Token expired, need to refresh
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token available")
	}

	tokenResp, err := s.client.RefreshGrant(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokenResp.AccessToken
	s.refreshToken = tokenResp.RefreshToken
	s.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - 30*time.Second)
	s.scope = tokenResp.Scope

	return s.accessToken, nil
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer the Session methods which refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Scope returns the space-delimited scope string granted to this session.
func (s *Session) Scope() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}
