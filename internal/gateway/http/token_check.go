package http

import (
	"net/http"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
)

// TokenCheckHandler reports the state of the gateway's cached upstream
// analytics token. The token value is never echoed.
//
//	@Summary		Upstream Token Status
//	@Description	Reports whether upstream credentials are configured and whether a cached access token is currently valid.
//	@Tags			Query
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatewaysdk.TokenStatusResponse	"configured, valid, expires_at"
//	@Router			/v1/token/check [get].
func TokenCheckHandler(upstream *zoho.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		valid, expiresAt := upstream.TokenStatus()

		response := gatewaysdk.TokenStatusResponse{
			Configured: upstream.Configured(),
			Valid:      valid,
		}
		if !expiresAt.IsZero() {
			response.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
		}

		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
