package http

import (
	"errors"
	"net/http"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

// statusForKind maps the gateway's error taxonomy onto HTTP status codes.
// Upstream credential problems are the gateway's fault from the caller's
// perspective, so they surface as 502 rather than 401.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	case domain.KindAuth, domain.KindRemoteQuery, domain.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// writeDomainError writes err as the gateway's JSON error envelope.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			"kind", string(kind), "err", err)
	}

	apiErr := &gatewaysdk.APIError{
		StatusCode: status,
		Kind:       string(kind),
		Message:    messageOf(err),
	}
	apiErr.WriteError(w)
}

// messageOf strips the kind prefix so the message field does not repeat it.
func messageOf(err error) string {
	var e *domain.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
