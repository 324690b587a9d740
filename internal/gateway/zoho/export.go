package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

// ExportRequest is the provider-ready shape produced by the query builder:
// either a raw SQL export (SQL non-empty) or a paginated view export.
type ExportRequest struct {
	Workspace string
	SQL       string
	View      string
	Limit     int
	Offset    int
}

// Execute runs the export request against the Analytics API and parses the
// tabular payload. Authorization retry semantics live in doAuthorized.
func (c *Client) Execute(ctx context.Context, req ExportRequest) (*domain.ExportResult, error) {
	var (
		data []byte
		err  error
	)

	if req.SQL != "" {
		path := "/restapi/v2/workspaces/" + url.PathEscape(req.Workspace) + "/sql"
		data, err = c.doAuthorized(ctx, http.MethodPost, path, nil, map[string]string{
			"query": req.SQL,
		})
	} else {
		path := "/restapi/v2/workspaces/" + url.PathEscape(req.Workspace) +
			"/views/" + url.PathEscape(req.View) + "/data"
		query := url.Values{
			"format": {"json"},
			"limit":  {strconv.Itoa(req.Limit)},
			"offset": {strconv.Itoa(req.Offset)},
		}
		data, err = c.doAuthorized(ctx, http.MethodGet, path, query, nil)
	}
	if err != nil {
		return nil, err
	}

	return parseExportResult(data)
}

// parseExportResult decodes the provider's tabular JSON. Numbers are kept as
// json.Number so integer columns survive downstream aggregation without
// float rounding.
func parseExportResult(data []byte) (*domain.ExportResult, error) {
	var payload struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, domain.Parsef("malformed export payload: %v", err)
	}

	if payload.Columns == nil {
		return nil, domain.Parsef("export payload missing columns array")
	}
	if payload.Rows == nil {
		payload.Rows = [][]any{}
	}
	for i, row := range payload.Rows {
		if len(row) != len(payload.Columns) {
			return nil, domain.Parsef(
				"export payload row %d has %d values, expected %d",
				i, len(row), len(payload.Columns),
			)
		}
	}

	return &domain.ExportResult{
		Columns: payload.Columns,
		Rows:    payload.Rows,
	}, nil
}
