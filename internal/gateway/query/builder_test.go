package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
)

func intPtr(v int) *int { return &v }

func newBuilder() Builder {
	return Builder{DefaultLimit: 100, MaxLimit: 1000, MaxSQLLength: 65536}
}

func TestBuildSQLQuery(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	req, err := b.Build(domain.QueryRequest{
		SQL: &domain.SQLQuery{Workspace: "ws-1", SQL: "SELECT 1"},
	})
	require.NoError(t, err)
	require.Equal(t, "ws-1", req.Workspace)
	require.Equal(t, "SELECT 1", req.SQL)
	require.Empty(t, req.View)
}

func TestBuildViewQueryDefaults(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	req, err := b.Build(domain.QueryRequest{
		View: &domain.ViewQuery{Workspace: "ws-1", View: "view-9"},
	})
	require.NoError(t, err)
	require.Equal(t, 100, req.Limit, "omitted limit takes the configured default")
	require.Equal(t, 0, req.Offset)
}

func TestBuildViewQueryLimitClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"zero clamps to one", intPtr(0), 1},
		{"negative clamps to one", intPtr(-5), 1},
		{"within range passes through", intPtr(250), 250},
		{"above max clamps to max", intPtr(5000), 1000},
	}

	b := newBuilder()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req, err := b.Build(domain.QueryRequest{
				View: &domain.ViewQuery{Workspace: "ws-1", View: "v", Limit: tc.limit},
			})
			require.NoError(t, err)
			require.Equal(t, tc.want, req.Limit)
		})
	}
}

func TestBuildValidationFailures(t *testing.T) {
	t.Parallel()

	b := newBuilder()

	tests := []struct {
		name    string
		req     domain.QueryRequest
		wantMsg string
	}{
		{
			"neither variant",
			domain.QueryRequest{},
			"sql or view",
		},
		{
			"both variants",
			domain.QueryRequest{
				SQL:  &domain.SQLQuery{Workspace: "ws-1", SQL: "SELECT 1"},
				View: &domain.ViewQuery{Workspace: "ws-1", View: "v"},
			},
			"not both",
		},
		{
			"sql missing workspace",
			domain.QueryRequest{SQL: &domain.SQLQuery{SQL: "SELECT 1"}},
			"workspace_id",
		},
		{
			"blank sql",
			domain.QueryRequest{SQL: &domain.SQLQuery{Workspace: "ws-1", SQL: "   "}},
			"sql must not be empty",
		},
		{
			"oversized sql",
			domain.QueryRequest{SQL: &domain.SQLQuery{Workspace: "ws-1", SQL: strings.Repeat("x", 65537)}},
			"maximum length",
		},
		{
			"view missing workspace",
			domain.QueryRequest{View: &domain.ViewQuery{View: "v"}},
			"workspace_id",
		},
		{
			"view missing name",
			domain.QueryRequest{View: &domain.ViewQuery{Workspace: "ws-1"}},
			"view is required",
		},
		{
			"negative offset",
			domain.QueryRequest{View: &domain.ViewQuery{Workspace: "ws-1", View: "v", Offset: intPtr(-1)}},
			"offset",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := b.Build(tc.req)
			require.Error(t, err)
			require.True(t, domain.IsKind(err, domain.KindValidation))
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
