package gatewaysdk

import (
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
)

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse represents a standard OAuth2 error response per RFC 6749.
// This is used internally for parsing HTTP error responses from the token
// endpoint. Client code should use the OAuth2Error type instead.
type ErrorResponse struct {
	// Error is the OAuth2 error code (e.g., "invalid_request", "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse represents the OAuth2 token endpoint response per RFC 6749.
// This is returned from the POST /token endpoint for both authorization_code
// and refresh_token grant types.
type TokenResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// RefreshToken is the opaque refresh token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "Bearer" per OAuth2 spec
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`
}

// TokenStatusResponse reports the gateway's cached upstream analytics token.
// The token value itself is never included.
type TokenStatusResponse struct {
	// Configured indicates whether upstream credentials are present
	Configured bool `json:"configured"`

	// Valid indicates whether a cached token exists and is inside its
	// validity window
	Valid bool `json:"valid"`

	// ExpiresAt is the RFC 3339 expiry of the cached token, empty when no
	// token is held
	ExpiresAt string `json:"expires_at,omitempty"`
}

// ============================================================================
// Data-Plane Types
// ============================================================================

// QueryRequest is the body of POST /v1/query and POST /v1/export. Exactly one
// of SQL or View must be provided.
type QueryRequest struct {
	// WorkspaceID is the analytics workspace to query
	WorkspaceID string `json:"workspace_id"`

	// SQL is a raw SQL query to run against the workspace
	SQL string `json:"sql,omitempty"`

	// View is the name or ID of a view to export
	View string `json:"view,omitempty"`

	// Limit caps the number of exported rows (view exports only)
	Limit *int `json:"limit,omitempty"`

	// Offset skips rows from the start of the export (view exports only)
	Offset *int `json:"offset,omitempty"`
}

// AggregateRequest is the body of POST /v1/aggregate: a query plus the
// grouped-sum reduction to apply to its result.
type AggregateRequest struct {
	QueryRequest

	// GroupBy names the column whose distinct values become output rows
	GroupBy string `json:"group_by"`

	// SumColumn names the numeric column summed within each group
	SumColumn string `json:"sum_column"`
}

// QueryResult is the tabular response of the export, query and aggregate
// endpoints.
type QueryResult struct {
	// Columns lists the result column names in order
	Columns []string `json:"columns"`

	// Rows holds one slice per result row, aligned with Columns
	Rows [][]any `json:"rows"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
// Used in the /readyz endpoint to indicate the status of each component.
type HealthChecks struct {
	// Upstream indicates whether analytics credentials are configured
	Upstream string `json:"upstream"`

	// UpstreamToken reports the cached upstream access token state
	// ("valid until <ts>" or "none cached"); informational only
	UpstreamToken string `json:"upstream_token,omitempty"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}

// ============================================================================
// Discovery Types
// ============================================================================

// JWKSResponse contains the JSON Web Key Set.
// This is returned from the GET /.well-known/jwks.json endpoint and contains
// public keys used to verify JWT signatures.
type JWKSResponse jwtx.JWKS

// ServerMetadata is the RFC 8414 authorization server metadata document
// served at /.well-known/oauth-authorization-server and, with the same shape,
// /.well-known/openid-configuration.
type ServerMetadata struct {
	Issuer                   string   `json:"issuer"`
	AuthorizationEndpoint    string   `json:"authorization_endpoint"`
	TokenEndpoint            string   `json:"token_endpoint"`
	JWKSURI                  string   `json:"jwks_uri"`
	ScopesSupported          []string `json:"scopes_supported"`
	ResponseTypesSupported   []string `json:"response_types_supported"`
	GrantTypesSupported      []string `json:"grant_types_supported"`
	TokenEndpointAuthMethods []string `json:"token_endpoint_auth_methods_supported"`
	IDTokenSigningAlgs       []string `json:"id_token_signing_alg_values_supported,omitempty"`
}

// ProtectedResourceMetadata is the RFC 9728 protected resource metadata
// document served at /.well-known/oauth-protected-resource.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	ScopesSupported        []string `json:"scopes_supported"`
	BearerMethodsSupported []string `json:"bearer_methods_supported"`
}
