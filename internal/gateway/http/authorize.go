package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

// AuthorizeHandler serves GET /authorize. The gateway has no user accounts;
// consent is granted immediately and the caller is redirected back with a
// short-lived single-use code.
type AuthorizeHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Authorization Endpoint
//	@Description	Issues an authorization code and redirects to the supplied redirect_uri. Consent is granted immediately; there is no login step.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			response_type	query		string	true	"Must be \"code\""
//	@Param			client_id		query		string	true	"Client identifier"
//	@Param			redirect_uri	query		string	true	"Redirect URI receiving the code"
//	@Param			scope			query		string	false	"Space-delimited scopes"
//	@Param			state			query		string	false	"Opaque value echoed back on the redirect"
//	@Success		302				{string}	string	"Redirect carrying code and state"
//	@Failure		400				{object}	gatewaysdk.ErrorResponse	"error, error_description"
//	@Router			/authorize [get].
func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	query := r.URL.Query()
	responseType := strings.TrimSpace(query.Get("response_type"))
	clientID := strings.TrimSpace(query.Get("client_id"))
	redirectURI := strings.TrimSpace(query.Get("redirect_uri"))
	scope := strings.TrimSpace(query.Get("scope"))
	state := query.Get("state")

	if !strings.EqualFold(responseType, "code") {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if clientID == "" || redirectURI == "" {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if _, err := url.ParseRequestURI(redirectURI); err != nil {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	code, err := h.AuthService.IssueCode(ctx, clientID, redirectURI, scope)
	if err != nil {
		log.Error("authorize failed", "err", err)
		gatewaysdk.ErrServerError.WriteError(w)
		return
	}

	location, err := url.Parse(redirectURI)
	if err != nil {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	params := location.Query()
	params.Set("code", code)
	if state != "" {
		params.Set("state", state)
	}
	location.RawQuery = params.Encode()

	http.Redirect(w, r, location.String(), http.StatusFound)
}
