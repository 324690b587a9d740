package http

import (
	"net/http"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the upstream credentials, cached upstream token and signer components
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	gatewaysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	gatewaysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	upstream *zoho.Client,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &gatewaysdk.HealthChecks{
			Upstream: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check upstream analytics credentials are configured
		if !upstream.Configured() {
			checks.Upstream = "error: analytics credentials not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Report cached-token state. A missing token is not unreadiness:
		// the first data-plane call refreshes on demand.
		if valid, expiresAt := upstream.TokenStatus(); valid {
			checks.UpstreamToken = "valid until " + expiresAt.UTC().Format(time.RFC3339)
		} else {
			checks.UpstreamToken = "none cached"
		}

		// Check if JWT signer/verifier has keys loaded
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := gatewaysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
