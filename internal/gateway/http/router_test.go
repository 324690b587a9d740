package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/query"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/cryptox"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
)

const testAPIKey = "test-api-key"

// newTestGateway stands up the full router against a fake analytics upstream
// and returns an SDK client pointed at it.
func newTestGateway(t *testing.T, analytics http.HandlerFunc) *gatewaysdk.SDKClient {
	t.Helper()

	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"upstream-token","expires_in":3600}`)
	}))
	t.Cleanup(accounts.Close)

	analyticsSrv := httptest.NewServer(analytics)
	t.Cleanup(analyticsSrv.Close)

	upstream := zoho.NewClient(zoho.Config{
		AccountsURL:  accounts.URL,
		AnalyticsURL: analyticsSrv.URL,
		ClientID:     "upstream-client",
		ClientSecret: "upstream-secret",
		RefreshToken: "upstream-refresh",
		OrgID:        "org-1",
		Timeout:      5 * time.Second,
		SafetyMargin: time.Minute,
	})

	signer, err := jwtx.NewEphemeralSigner("test-key")
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	issuer := "https://gateway.test"
	verifier := jwtx.NewVerifierEdDSA(keys, issuer, nil)

	apiKeyHash, err := cryptox.HashSecret(testAPIKey)
	require.NoError(t, err)

	builder := query.Builder{DefaultLimit: 100, MaxLimit: 1000, MaxSQLLength: 65536}

	router := NewRouter(keys, verifier, issuer, apiKeyHash, "test", upstream,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	router.QueryService = service.NewQueryService(builder, upstream)
	router.AuthService = service.NewAuthService(signer, issuer)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return gatewaysdk.NewSDKClient(srv.URL)
}

func exportResponse(columns string, rows string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"columns":%s,"rows":%s}`, columns, rows)
	}
}

func TestEndToEndViewExport(t *testing.T) {
	t.Parallel()

	var gotPath, gotLimit, gotOffset string
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		gotOffset = r.URL.Query().Get("offset")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"columns":["region","amount"],"rows":[["east",3],["west",2]]}`)
	})

	ctx := context.Background()
	session, err := client.AuthenticateWithAuthorizationCode(ctx, "cli", "http://localhost/cb", "analytics:read")
	require.NoError(t, err)

	result, err := session.Export(ctx, gatewaysdk.QueryRequest{
		WorkspaceID: "ws-1",
		View:        "sales",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"region", "amount"}, result.Columns)
	require.Len(t, result.Rows, 2)

	require.Equal(t, "/restapi/v2/workspaces/ws-1/views/sales/data", gotPath)
	require.Equal(t, "100", gotLimit, "omitted limit falls back to the configured default")
	require.Equal(t, "0", gotOffset)
}

func TestEndToEndSQLQueryAndAggregate(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(
		`["region","amount"]`,
		`[["a",3],["b",2],["a",5]]`,
	))

	ctx := context.Background()
	session := client.NewAPIKeySession(testAPIKey)

	result, err := session.Query(ctx, gatewaysdk.QueryRequest{
		WorkspaceID: "ws-1",
		SQL:         "SELECT region, amount FROM sales",
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	agg, err := session.Aggregate(ctx, gatewaysdk.AggregateRequest{
		QueryRequest: gatewaysdk.QueryRequest{
			WorkspaceID: "ws-1",
			SQL:         "SELECT region, amount FROM sales",
		},
		GroupBy:   "region",
		SumColumn: "amount",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"region", "amount"}, agg.Columns)
	require.Equal(t, [][]any{
		{"a", json.Number("8")},
		{"b", json.Number("2")},
	}, normalizeRows(agg.Rows))
}

// normalizeRows re-encodes rows through json.Number so expected values can be
// written without caring about float64 decoding.
func normalizeRows(rows [][]any) [][]any {
	data, _ := json.Marshal(rows)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out [][]any
	_ = dec.Decode(&out)
	return out
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/restapi/v2/workspaces":
			fmt.Fprint(w, `{"data":{"ownedWorkspaces":[{"workspaceId":"1"}]}}`)
		case "/restapi/v2/workspaces/ws-1/views":
			fmt.Fprint(w, `{"data":{"views":[{"viewName":"sales"}]}}`)
		case "/restapi/v2/views/v-9":
			fmt.Fprint(w, `{"data":{"views":{"viewId":"v-9"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	session := client.NewAPIKeySession(testAPIKey)

	workspaces, err := session.ListWorkspaces(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":{"ownedWorkspaces":[{"workspaceId":"1"}]}}`, string(workspaces))

	views, err := session.ListViews(ctx, "ws-1", "", 100, 0)
	require.NoError(t, err)
	require.JSONEq(t, `{"data":{"views":[{"viewName":"sales"}]}}`, string(views))

	details, err := session.GetViewDetails(ctx, "v-9")
	require.NoError(t, err)
	require.JSONEq(t, `{"data":{"views":{"viewId":"v-9"}}}`, string(details))
}

func TestAuthenticationRequired(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	ctx := context.Background()

	// No credentials at all.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, client.BaseURL+"/v1/workspaces", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")

	// Wrong API key.
	wrong := client.NewAPIKeySession("nope")
	_, err = wrong.ListWorkspaces(ctx)
	var oauthErr *gatewaysdk.OAuth2Error
	require.ErrorAs(t, err, &oauthErr)
	require.Equal(t, http.StatusUnauthorized, oauthErr.StatusCode)
	require.Equal(t, gatewaysdk.ErrorCodeInvalidToken, oauthErr.Code)
}

func TestValidationErrorsReturn400(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	ctx := context.Background()
	session := client.NewAPIKeySession(testAPIKey)

	// /v1/query without sql.
	_, err := session.Query(ctx, gatewaysdk.QueryRequest{WorkspaceID: "ws-1"})
	var apiErr *gatewaysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "validation_error", apiErr.Kind)

	// /v1/export without view.
	_, err = session.Export(ctx, gatewaysdk.QueryRequest{WorkspaceID: "ws-1", SQL: "SELECT 1"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "validation_error", apiErr.Kind)

	// /v1/aggregate without sum_column.
	_, err = session.Aggregate(ctx, gatewaysdk.AggregateRequest{
		QueryRequest: gatewaysdk.QueryRequest{WorkspaceID: "ws-1", SQL: "SELECT 1"},
		GroupBy:      "region",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "validation_error", apiErr.Kind)
}

func TestUpstreamFailuresMapToGatewayStatuses(t *testing.T) {
	t.Parallel()

	var status atomic.Int32
	status.Store(http.StatusBadRequest)

	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(status.Load()))
		fmt.Fprint(w, `{"data":{"errorMessage":"Unknown table"}}`)
	})

	ctx := context.Background()
	session := client.NewAPIKeySession(testAPIKey)

	_, err := session.Query(ctx, gatewaysdk.QueryRequest{WorkspaceID: "ws-1", SQL: "SELECT 1"})
	var apiErr *gatewaysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "remote_query_error", apiErr.Kind)
	require.Contains(t, apiErr.Message, "Unknown table")
}

func TestTokenCheck(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	ctx := context.Background()
	session := client.NewAPIKeySession(testAPIKey)

	// Before any upstream call the gateway holds no token.
	before, err := session.GetTokenStatus(ctx)
	require.NoError(t, err)
	require.True(t, before.Configured)
	require.False(t, before.Valid)
	require.Empty(t, before.ExpiresAt)

	// An export forces a refresh; the cached token becomes visible.
	_, err = session.Query(ctx, gatewaysdk.QueryRequest{WorkspaceID: "ws-1", SQL: "SELECT 1"})
	require.NoError(t, err)

	after, err := session.GetTokenStatus(ctx)
	require.NoError(t, err)
	require.True(t, after.Valid)
	require.NotEmpty(t, after.ExpiresAt)
}

func TestRefreshTokenGrant(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	ctx := context.Background()
	session, err := client.AuthenticateWithAuthorizationCode(ctx, "cli", "http://localhost/cb", "")
	require.NoError(t, err)

	refreshed, err := client.AuthenticateWithRefreshToken(ctx, "cli", session.RefreshToken())
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken())

	_, err = refreshed.ListWorkspaces(ctx)
	require.NoError(t, err)
}

func TestAuthorizationCodeIsSingleUse(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))
	ctx := context.Background()

	code, err := client.Authorize(ctx, "cli", "http://localhost/cb", "")
	require.NoError(t, err)

	_, err = client.AuthorizationCodeGrant(ctx, code, "http://localhost/cb")
	require.NoError(t, err)

	_, err = client.AuthorizationCodeGrant(ctx, code, "http://localhost/cb")
	var oauthErr *gatewaysdk.OAuth2Error
	require.ErrorAs(t, err, &oauthErr)
	require.Equal(t, gatewaysdk.ErrorCodeInvalidGrant, oauthErr.Code)
}

func TestDiscoveryEndpoints(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))
	ctx := context.Background()

	meta, err := client.GetServerMetadata(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://gateway.test", meta.Issuer)
	require.Contains(t, meta.GrantTypesSupported, "authorization_code")
	require.Contains(t, meta.GrantTypesSupported, "refresh_token")

	resource, err := client.GetProtectedResourceMetadata(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"https://gateway.test"}, resource.AuthorizationServers)

	jwks, err := client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "test-key", jwks.Keys[0].Kid)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Nil(t, live.Checks)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Upstream)
	require.Equal(t, "ok", ready.Checks.Signer)
	require.Equal(t, "none cached", ready.Checks.UpstreamToken)

	// A data-plane call populates the cached upstream token, which the
	// readiness document then reports without degrading the status.
	session := client.NewAPIKeySession(testAPIKey)
	_, err = session.Query(ctx, gatewaysdk.QueryRequest{WorkspaceID: "ws-1", SQL: "SELECT 1"})
	require.NoError(t, err)

	ready, err = client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Contains(t, ready.Checks.UpstreamToken, "valid until")
}
