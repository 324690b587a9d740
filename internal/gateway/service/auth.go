package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/cryptox"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/idx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

// OAuth2 token endpoint errors, named after RFC 6749 error codes.
var (
	ErrInvalidRequest        = errors.New("invalid_request")
	ErrInvalidGrant          = errors.New("invalid_grant")
	ErrUnsupportedGrantType  = errors.New("unsupported_grant_type")
	ErrAuthorizationRequired = errors.New("authorization_required")
)

const (
	// DefaultCodeTTL bounds the window between consent and code exchange.
	DefaultCodeTTL = 2 * time.Minute

	// DefaultAccessTTL is the gateway access token lifetime.
	DefaultAccessTTL = time.Hour

	// DefaultRefreshTTL is the gateway refresh token lifetime. Refresh
	// tokens are not rotated on use; they live out their full window.
	DefaultRefreshTTL = 30 * 24 * time.Hour

	// DefaultScope is granted when the authorize request omits scope.
	DefaultScope = "analytics:read"
)

// AuthService is the gateway's embedded authorization server. It issues
// authorization codes and exchanges them for signed access tokens plus opaque
// refresh tokens. All grant state lives in memory; a restart revokes
// everything outstanding.
type AuthService struct {
	Signer     *jwtx.Signer
	Issuer     string
	CodeTTL    time.Duration
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	mu      sync.Mutex
	codes   map[string]domain.AuthorizationCode
	refresh map[string]domain.RefreshToken
	now     func() time.Time
}

func NewAuthService(signer *jwtx.Signer, issuer string) *AuthService {
	return &AuthService{
		Signer:     signer,
		Issuer:     issuer,
		CodeTTL:    DefaultCodeTTL,
		AccessTTL:  DefaultAccessTTL,
		RefreshTTL: DefaultRefreshTTL,
		codes:      make(map[string]domain.AuthorizationCode),
		refresh:    make(map[string]domain.RefreshToken),
		now:        time.Now,
	}
}

// IssueCode mints a single-use authorization code for the given client. The
// gateway grants consent immediately; there is no user interaction step.
func (s *AuthService) IssueCode(ctx context.Context, clientID, redirectURI, scope string) (string, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(redirectURI) == "" {
		return "", ErrInvalidRequest
	}
	if strings.TrimSpace(scope) == "" {
		scope = DefaultScope
	}

	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}

	now := s.now()
	record := domain.AuthorizationCode{
		ID:          idx.New().String(),
		CodeHash:    cryptox.FingerprintToken(code),
		ClientID:    clientID,
		RedirectURI: redirectURI,
		Scope:       scope,
		ExpiresAt:   now.Add(s.codeTTL()),
		CreatedAt:   now,
	}

	s.mu.Lock()
	s.codes[record.CodeHash] = record
	s.mu.Unlock()

	slogx.FromContext(ctx).Debug("issued authorization code",
		"client_id", clientID, "scope", scope)

	return code, nil
}

// ExchangeCode trades a pending authorization code for a token pair. Codes
// are single use: the record is deleted before validation so a replayed code
// fails even when the first exchange also failed.
func (s *AuthService) ExchangeCode(ctx context.Context, code, redirectURI string) (*domain.TokenPair, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidRequest
	}

	hash := cryptox.FingerprintToken(code)

	s.mu.Lock()
	record, ok := s.codes[hash]
	delete(s.codes, hash)
	s.mu.Unlock()

	if !ok {
		return nil, ErrInvalidGrant
	}

	now := s.now()
	if now.After(record.ExpiresAt) {
		return nil, ErrInvalidGrant
	}
	if redirectURI != "" && redirectURI != record.RedirectURI {
		return nil, ErrInvalidGrant
	}

	return s.issuePair(ctx, record.ClientID, record.Scope)
}

// Refresh grants a new access token from an outstanding refresh token. The
// refresh token itself is returned unchanged and keeps its original expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidRequest
	}

	hash := cryptox.FingerprintToken(refreshToken)

	s.mu.Lock()
	record, ok := s.refresh[hash]
	s.mu.Unlock()

	if !ok || s.now().After(record.ExpiresAt) {
		return nil, ErrInvalidGrant
	}

	access, err := s.signAccess(record.ClientID, record.Scope)
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Debug("refreshed gateway access token", "client_id", record.ClientID)

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
		Scope:        record.Scope,
	}, nil
}

// PurgeExpired drops expired codes and refresh tokens. Called periodically by
// the application's housekeeping ticker.
func (s *AuthService) PurgeExpired(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var codes, tokens int
	for hash, record := range s.codes {
		if now.After(record.ExpiresAt) {
			delete(s.codes, hash)
			codes++
		}
	}
	for hash, record := range s.refresh {
		if now.After(record.ExpiresAt) {
			delete(s.refresh, hash)
			tokens++
		}
	}
	s.mu.Unlock()

	if codes > 0 || tokens > 0 {
		slogx.FromContext(ctx).Debug("purged expired grants",
			"codes", codes, "refresh_tokens", tokens)
	}
}

func (s *AuthService) issuePair(ctx context.Context, clientID, scope string) (*domain.TokenPair, error) {
	access, err := s.signAccess(clientID, scope)
	if err != nil {
		return nil, err
	}

	refreshToken, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := domain.RefreshToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(refreshToken),
		ClientID:  clientID,
		Scope:     scope,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.refresh[record.TokenHash] = record
	s.mu.Unlock()

	slogx.FromContext(ctx).Info("issued gateway token pair", "client_id", clientID, "scope", scope)

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.accessTTL(),
		Scope:        scope,
	}, nil
}

func (s *AuthService) signAccess(clientID, scope string) (string, error) {
	claims := jwtx.NewAccessClaims(clientID, clientID, scope, s.accessTTL(), s.Issuer, s.now())
	return s.Signer.Sign(claims)
}

func (s *AuthService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return DefaultAccessTTL
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return DefaultRefreshTTL
}
