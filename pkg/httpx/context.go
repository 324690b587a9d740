package httpx

import "context"

type ctxKey string

const (
	// CtxKeyCaller is the authenticated caller identity: the JWT subject for
	// bearer callers, or "api-key" for X-API-Key callers.
	CtxKeyCaller ctxKey = "caller"

	// CtxKeyClaims holds the full jwtx.Claims for bearer callers.
	CtxKeyClaims ctxKey = "claims"
)

// CallerFromContext returns the authenticated caller identity, if any.
func CallerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCaller).(string); ok {
		return v
	}
	return ""
}
