package gatewaysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListWorkspaces returns the raw workspace catalog document from the
// analytics provider.
func (s *Session) ListWorkspaces(ctx context.Context) (json.RawMessage, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/workspaces", nil, nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw, http.StatusOK); err != nil {
		return nil, err
	}

	return raw, nil
}

// ListViews returns the raw view catalog for a workspace. An empty search
// string lists all views.
func (s *Session) ListViews(ctx context.Context, workspaceID, search string, limit, offset int) (json.RawMessage, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}
	if search != "" {
		query.Set("search", search)
	}

	path := "/v1/workspaces/" + url.PathEscape(workspaceID) + "/views?" + query.Encode()
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw, http.StatusOK); err != nil {
		return nil, err
	}

	return raw, nil
}

// GetViewDetails returns the raw metadata document for one view.
func (s *Session) GetViewDetails(ctx context.Context, viewID string) (json.RawMessage, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/views/"+url.PathEscape(viewID), nil, nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := decodeJSON(resp, &raw, http.StatusOK); err != nil {
		return nil, err
	}

	return raw, nil
}

// Export runs a view export and returns its tabular result.
func (s *Session) Export(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	return s.postQuery(ctx, "/v1/export", req)
}

// Query runs a SQL or view query and returns its tabular result.
func (s *Session) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	return s.postQuery(ctx, "/v1/query", req)
}

// Aggregate runs a query and reduces the result to one row per group,
// summing the named column.
func (s *Session) Aggregate(ctx context.Context, req AggregateRequest) (*QueryResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/aggregate",
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetTokenStatus reports the gateway's cached upstream token state.
func (s *Session) GetTokenStatus(ctx context.Context) (*TokenStatusResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/token/check", nil, nil)
	if err != nil {
		return nil, err
	}

	var status TokenStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

func (s *Session) postQuery(ctx context.Context, path string, req QueryRequest) (*QueryResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, path,
		bytes.NewReader(body), map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}
