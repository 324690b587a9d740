// Package service holds the gateway's business rules: request shaping,
// export orchestration and the grouped-sum aggregation helper. Transport
// concerns stay in the http and zoho packages.
package service

import (
	"context"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/query"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
)

// Exporter runs a normalized export against the analytics provider.
type Exporter interface {
	Execute(ctx context.Context, req zoho.ExportRequest) (*domain.ExportResult, error)
}

// QueryService validates, executes and optionally aggregates export requests.
type QueryService struct {
	builder  query.Builder
	exporter Exporter
}

func NewQueryService(builder query.Builder, exporter Exporter) *QueryService {
	return &QueryService{builder: builder, exporter: exporter}
}

// Execute runs req end to end. When spec is non-nil the raw result is reduced
// to one row per group before returning; the raw rows are never exposed.
func (s *QueryService) Execute(ctx context.Context, req domain.QueryRequest, spec *domain.AggregationSpec) (*domain.ExportResult, error) {
	exportReq, err := s.builder.Build(req)
	if err != nil {
		return nil, err
	}

	result, err := s.exporter.Execute(ctx, exportReq)
	if err != nil {
		return nil, err
	}

	if spec == nil {
		return result, nil
	}
	return Aggregate(result, *spec)
}
