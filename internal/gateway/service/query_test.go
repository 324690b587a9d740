package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/query"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
)

type stubExporter struct {
	lastReq zoho.ExportRequest
	result  *domain.ExportResult
	err     error
	calls   int
}

func (s *stubExporter) Execute(_ context.Context, req zoho.ExportRequest) (*domain.ExportResult, error) {
	s.calls++
	s.lastReq = req
	return s.result, s.err
}

func newQueryService(exp *stubExporter) *QueryService {
	return NewQueryService(query.Builder{DefaultLimit: 100, MaxLimit: 1000, MaxSQLLength: 65536}, exp)
}

func TestQueryServicePassesNormalizedRequest(t *testing.T) {
	t.Parallel()

	exp := &stubExporter{result: &domain.ExportResult{Columns: []string{"a"}, Rows: [][]any{}}}
	svc := newQueryService(exp)

	_, err := svc.Execute(context.Background(), domain.QueryRequest{
		View: &domain.ViewQuery{Workspace: "ws-1", View: "v"},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 100, exp.lastReq.Limit)
	require.Equal(t, 0, exp.lastReq.Offset)
}

func TestQueryServiceValidationShortCircuits(t *testing.T) {
	t.Parallel()

	exp := &stubExporter{}
	svc := newQueryService(exp)

	_, err := svc.Execute(context.Background(), domain.QueryRequest{}, nil)
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindValidation))
	require.Zero(t, exp.calls, "upstream must not be called for invalid requests")
}

func TestQueryServiceAggregates(t *testing.T) {
	t.Parallel()

	exp := &stubExporter{result: &domain.ExportResult{
		Columns: []string{"region", "amount"},
		Rows: [][]any{
			{"a", json.Number("3")},
			{"a", json.Number("5")},
		},
	}}
	svc := newQueryService(exp)

	out, err := svc.Execute(context.Background(), domain.QueryRequest{
		SQL: &domain.SQLQuery{Workspace: "ws-1", SQL: "SELECT region, amount FROM sales"},
	}, &domain.AggregationSpec{GroupBy: "region", SumColumn: "amount"})
	require.NoError(t, err)
	require.Equal(t, [][]any{{"a", int64(8)}}, out.Rows)
}

func TestQueryServicePropagatesUpstreamError(t *testing.T) {
	t.Parallel()

	exp := &stubExporter{err: domain.RemoteQueryf("boom")}
	svc := newQueryService(exp)

	_, err := svc.Execute(context.Background(), domain.QueryRequest{
		SQL: &domain.SQLQuery{Workspace: "ws-1", SQL: "SELECT 1"},
	}, nil)
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindRemoteQuery))
}
