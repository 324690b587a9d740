// Package query validates inbound query requests and normalizes them into
// upstream export requests. All limit and offset policy lives here so the
// transport client stays a dumb pipe.
package query

import (
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
)

// Builder holds the pagination and size policy applied to every request.
type Builder struct {
	DefaultLimit int
	MaxLimit     int
	MaxSQLLength int
}

// Build validates req and produces the export request to run upstream.
// Validation failures name the offending field.
func (b Builder) Build(req domain.QueryRequest) (zoho.ExportRequest, error) {
	switch {
	case req.SQL != nil && req.View != nil:
		return zoho.ExportRequest{}, domain.Validationf("request must carry either sql or view, not both")
	case req.SQL != nil:
		return b.buildSQL(*req.SQL)
	case req.View != nil:
		return b.buildView(*req.View)
	default:
		return zoho.ExportRequest{}, domain.Validationf("request must carry sql or view")
	}
}

func (b Builder) buildSQL(q domain.SQLQuery) (zoho.ExportRequest, error) {
	if strings.TrimSpace(q.Workspace) == "" {
		return zoho.ExportRequest{}, domain.Validationf("workspace_id is required")
	}
	if strings.TrimSpace(q.SQL) == "" {
		return zoho.ExportRequest{}, domain.Validationf("sql must not be empty")
	}
	if len(q.SQL) > b.MaxSQLLength {
		return zoho.ExportRequest{}, domain.Validationf("sql exceeds maximum length of %d bytes", b.MaxSQLLength)
	}

	return zoho.ExportRequest{
		Workspace: q.Workspace,
		SQL:       q.SQL,
	}, nil
}

func (b Builder) buildView(q domain.ViewQuery) (zoho.ExportRequest, error) {
	if strings.TrimSpace(q.Workspace) == "" {
		return zoho.ExportRequest{}, domain.Validationf("workspace_id is required")
	}
	if strings.TrimSpace(q.View) == "" {
		return zoho.ExportRequest{}, domain.Validationf("view is required")
	}

	limit := b.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > b.MaxLimit {
		limit = b.MaxLimit
	}

	offset := 0
	if q.Offset != nil {
		offset = *q.Offset
	}
	if offset < 0 {
		return zoho.ExportRequest{}, domain.Validationf("offset must not be negative")
	}

	return zoho.ExportRequest{
		Workspace: q.Workspace,
		View:      q.View,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
