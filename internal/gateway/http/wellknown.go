package http

import (
	"net/http"

	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify JWTs.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, gatewaysdk.JWKSResponse(keys.PublicJWKS()))
	}
}

// ServerMetadataHandler serves the RFC 8414 authorization server metadata.
// The same document shape is reused for /.well-known/openid-configuration so
// generic OIDC discovery clients can locate the token endpoint.
//
//	@Summary		Authorization Server Metadata
//	@Description	Returns RFC 8414 metadata describing the gateway's embedded authorization server.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.ServerMetadata
//	@Router			/.well-known/oauth-authorization-server [get].
func ServerMetadataHandler(issuer string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := gatewaysdk.ServerMetadata{
			Issuer:                   issuer,
			AuthorizationEndpoint:    issuer + "/authorize",
			TokenEndpoint:            issuer + "/token",
			JWKSURI:                  issuer + "/.well-known/jwks.json",
			ScopesSupported:          []string{"analytics:read"},
			ResponseTypesSupported:   []string{"code"},
			GrantTypesSupported:      []string{"authorization_code", "refresh_token"},
			TokenEndpointAuthMethods: []string{"none"},
		}
		httpx.WriteJSON(w, http.StatusOK, meta)
	}
}

// ProtectedResourceHandler serves the RFC 9728 protected resource metadata,
// pointing resource clients back at this gateway as its own authorization
// server.
//
//	@Summary		Protected Resource Metadata
//	@Description	Returns RFC 9728 metadata describing the gateway as an OAuth2 protected resource.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.ProtectedResourceMetadata
//	@Router			/.well-known/oauth-protected-resource [get].
func ProtectedResourceHandler(issuer string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta := gatewaysdk.ProtectedResourceMetadata{
			Resource:               issuer,
			AuthorizationServers:   []string{issuer},
			ScopesSupported:        []string{"analytics:read"},
			BearerMethodsSupported: []string{"header"},
		}
		httpx.WriteJSON(w, http.StatusOK, meta)
	}
}
