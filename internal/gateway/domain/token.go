package domain

import "time"

// AuthorizationCode is a short-lived code issued by the gateway's authorize
// endpoint. Stored by fingerprint, single use.
type AuthorizationCode struct {
	ID          string
	CodeHash    string
	ClientID    string
	RedirectURI string
	Scope       string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// RefreshToken is a long-lived opaque token issued alongside gateway access
// tokens. Held in memory only; a restart invalidates all sessions.
type RefreshToken struct {
	ID        string
	TokenHash string
	ClientID  string
	Scope     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair is the result of a successful grant at the gateway's token
// endpoint.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
	Scope        string
}
