package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

// TokenHandler serves POST /token.
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues access and refresh tokens using OAuth2 grant types (authorization_code, refresh_token).
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(authorization_code, refresh_token)
//	@Param			code			formData	string					false	"Authorization code (required for authorization_code grant)"
//	@Param			redirect_uri	formData	string					false	"Redirect URI used at the authorize endpoint"
//	@Param			refresh_token	formData	string					false	"Refresh token (required for refresh_token grant)"
//	@Success		200				{object}	gatewaysdk.TokenResponse	"access_token, refresh_token, token_type, expires_in, scope"
//	@Failure		400				{object}	gatewaysdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	gatewaysdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control				"no-store"
//	@Header			200				{string}	Pragma						"no-cache"
//	@Router			/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		gatewaysdk.ErrInvalidContentType.WriteError(w)
		return
	}

	// 2. Parse the form body
	if err := r.ParseForm(); err != nil {
		gatewaysdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// 3. Handle the grant type
	switch r.Form.Get("grant_type") {
	case "authorization_code":
		h.handleAuthorizationCodeGrant(w, r, r.Form)
	case "refresh_token":
		h.handleRefreshGrant(w, r, r.Form)
	default:
		gatewaysdk.ErrUnsupportedGrantType.WriteError(w)
	}
}

func (h *TokenHandler) handleAuthorizationCodeGrant(
	w http.ResponseWriter,
	r *http.Request,
	form url.Values,
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	code := strings.TrimSpace(form.Get("code"))
	redirectURI := strings.TrimSpace(form.Get("redirect_uri"))

	if code == "" {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			gatewaysdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrInvalidGrant):
			gatewaysdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("authorization_code grant failed", "err", err)
			gatewaysdk.ErrServerError.WriteError(w)
		}
		return
	}

	writeTokenResponse(w, pair)
}

func (h *TokenHandler) handleRefreshGrant(w http.ResponseWriter, r *http.Request, form url.Values) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	refresh := form.Get("refresh_token")
	if refresh == "" {
		gatewaysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, refresh)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			gatewaysdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrInvalidGrant):
			gatewaysdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("refresh grant failed", "err", err)
			gatewaysdk.ErrServerError.WriteError(w)
		}
		return
	}

	writeTokenResponse(w, pair)
}

func writeTokenResponse(w http.ResponseWriter, pair *domain.TokenPair) {
	response := gatewaysdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		Scope:        strings.TrimSpace(pair.Scope),
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
