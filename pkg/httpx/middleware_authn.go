package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/pkg/cryptox"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

// APIKeyCaller is the caller identity recorded for X-API-Key requests.
const APIKeyCaller = "api-key"

// AuthnMiddleware guards data endpoints. A request passes when it carries
// either a valid X-API-Key header or a Bearer token issued by this gateway.
// The API key is compared against an Argon2id hash so the plaintext key is
// not retained after startup; apiKeyHash may be empty to disable key auth.
func AuthnMiddleware(v jwtx.Verifier, apiKeyHash string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			if key := r.Header.Get("X-API-Key"); key != "" && apiKeyHash != "" {
				if err := cryptox.VerifySecret(key, apiKeyHash); err == nil {
					ctx = context.WithValue(ctx, CtxKeyCaller, APIKeyCaller)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				log.Warn("api key verification failed")
				writeBearerError(w, "invalid api key")
				return
			}

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing api key or bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeBearerError(w, "token expired")
				return
			}

			// Inject into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyCaller, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"` + desc + `"}`))
}
