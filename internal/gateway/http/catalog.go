package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
)

const (
	defaultCatalogLimit = 100
	maxCatalogLimit     = 1000
)

// CatalogHandler serves the read-only workspace and view catalog endpoints.
// Responses are the provider's own catalog documents passed through verbatim.
type CatalogHandler struct {
	Zoho *zoho.Client
}

// HandleWorkspaces godoc
//
//	@Summary		List Workspaces
//	@Description	Lists the analytics workspaces visible to the gateway's configured credentials.
//	@Tags			Catalog
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	object						"Provider workspace catalog document"
//	@Failure		502	{object}	gatewaysdk.APIError			"error, message"
//	@Failure		504	{object}	gatewaysdk.APIError			"error, message"
//	@Router			/v1/workspaces [get].
func (h *CatalogHandler) HandleWorkspaces(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Zoho.Workspaces(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeRawJSON(w, raw)
}

// HandleViews godoc
//
//	@Summary		List Views
//	@Description	Lists the views of one workspace, with optional substring search and pagination.
//	@Tags			Catalog
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string	true	"Workspace ID"
//	@Param			search	query		string	false	"Substring filter on view names"
//	@Param			limit	query		int		false	"Page size (default 100, max 1000)"
//	@Param			offset	query		int		false	"Rows to skip"
//	@Success		200		{object}	object					"Provider view catalog document"
//	@Failure		400		{object}	gatewaysdk.APIError		"error, message"
//	@Failure		502		{object}	gatewaysdk.APIError		"error, message"
//	@Router			/v1/workspaces/{id}/views [get].
func (h *CatalogHandler) HandleViews(w http.ResponseWriter, r *http.Request) {
	workspace := strings.TrimSpace(r.PathValue("id"))
	if workspace == "" {
		writeDomainError(w, r, domain.Validationf("workspace_id is required"))
		return
	}

	query := r.URL.Query()

	limit, err := parseBoundedInt(query.Get("limit"), defaultCatalogLimit, 1, maxCatalogLimit)
	if err != nil {
		writeDomainError(w, r, domain.Validationf("limit must be an integer"))
		return
	}
	offset, err := parseBoundedInt(query.Get("offset"), 0, 0, -1)
	if err != nil {
		writeDomainError(w, r, domain.Validationf("offset must be a non-negative integer"))
		return
	}

	raw, err := h.Zoho.Views(r.Context(), workspace, query.Get("search"), limit, offset)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeRawJSON(w, raw)
}

// HandleViewDetails godoc
//
//	@Summary		Get View Details
//	@Description	Returns the provider's metadata document for one view.
//	@Tags			Catalog
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"View ID"
//	@Success		200	{object}	object					"Provider view metadata document"
//	@Failure		502	{object}	gatewaysdk.APIError		"error, message"
//	@Router			/v1/views/{id} [get].
func (h *CatalogHandler) HandleViewDetails(w http.ResponseWriter, r *http.Request) {
	view := strings.TrimSpace(r.PathValue("id"))
	if view == "" {
		writeDomainError(w, r, domain.Validationf("view id is required"))
		return
	}

	raw, err := h.Zoho.ViewDetails(r.Context(), view)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeRawJSON(w, raw)
}

// parseBoundedInt parses s with a fallback for the empty string, clamping to
// [min, max]. A max of -1 means unbounded above.
func parseBoundedInt(s string, fallback, min, max int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < min {
		v = min
	}
	if max >= 0 && v > max {
		v = max
	}
	return v, nil
}

func writeRawJSON(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
