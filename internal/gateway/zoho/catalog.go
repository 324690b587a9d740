package zoho

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Workspaces lists all workspaces visible to the authenticated organisation.
// The provider payload is passed through untouched.
func (c *Client) Workspaces(ctx context.Context) (json.RawMessage, error) {
	data, err := c.doAuthorized(ctx, http.MethodGet, "/restapi/v2/workspaces", nil, nil)
	if err != nil {
		return nil, err
	}
	return rawJSON(data)
}

// Views lists views within a workspace, optionally filtered by a search
// keyword, with limit/offset pagination.
func (c *Client) Views(ctx context.Context, workspace, search string, limit, offset int) (json.RawMessage, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	if search != "" {
		query.Set("search", search)
	}

	path := "/restapi/v2/workspaces/" + url.PathEscape(workspace) + "/views"
	data, err := c.doAuthorized(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return rawJSON(data)
}

// ViewDetails fetches metadata for a view by its ID or exact name. The v2
// API addresses views directly, without the workspace in the path.
func (c *Client) ViewDetails(ctx context.Context, view string) (json.RawMessage, error) {
	path := "/restapi/v2/views/" + url.PathEscape(view)
	data, err := c.doAuthorized(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return rawJSON(data)
}
