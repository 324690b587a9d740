package gatewaysdk

import (
	"context"
	"net/http"
)

// GetJWKS retrieves the JSON Web Key Set for token verification.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}

	return &jwks, nil
}

// GetServerMetadata retrieves the RFC 8414 authorization server metadata.
func (c *SDKClient) GetServerMetadata(ctx context.Context) (*ServerMetadata, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/oauth-authorization-server", nil, nil)
	if err != nil {
		return nil, err
	}

	var meta ServerMetadata
	if err := decodeJSON(resp, &meta, http.StatusOK); err != nil {
		return nil, err
	}

	return &meta, nil
}

// GetProtectedResourceMetadata retrieves the RFC 9728 protected resource
// metadata.
func (c *SDKClient) GetProtectedResourceMetadata(ctx context.Context) (*ProtectedResourceMetadata, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/oauth-protected-resource", nil, nil)
	if err != nil {
		return nil, err
	}

	var meta ProtectedResourceMetadata
	if err := decodeJSON(resp, &meta, http.StatusOK); err != nil {
		return nil, err
	}

	return &meta, nil
}
