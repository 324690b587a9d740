package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mcpPost posts body to path with the test API key and decodes the JSON reply.
func mcpPost(t *testing.T, baseURL, path, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&payload))
	return resp.StatusCode, payload
}

func rpcErrorOf(t *testing.T, payload map[string]any) (json.Number, string) {
	t.Helper()
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok, "payload must carry a JSON-RPC error object")
	return errObj["code"].(json.Number), errObj["message"].(string)
}

func TestMCPToolsList(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2.0", payload["jsonrpc"])
	require.Equal(t, json.Number("1"), payload["id"])

	result := payload["result"].(map[string]any)
	tools := result["tools"].([]any)
	require.Len(t, tools, 5)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		item := tool.(map[string]any)
		names = append(names, item["name"].(string))
		require.NotEmpty(t, item["description"])
		require.NotNil(t, item["inputSchema"])
	}
	require.ElementsMatch(t, []string{
		"workspaces_v2", "views_v2", "view_details_v2", "export_view_v2", "query_v2",
	}, names)
}

func TestMCPInitialize(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":2,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`)
	require.Equal(t, http.StatusOK, status)

	result := payload["result"].(map[string]any)
	require.Equal(t, "2024-11-05", result["protocolVersion"], "requested protocol version is echoed")

	serverInfo := result["serverInfo"].(map[string]any)
	require.Equal(t, "Zoho Analytics MCP", serverInfo["name"])

	capabilities := result["capabilities"].(map[string]any)
	tools := capabilities["tools"].(map[string]any)
	require.Equal(t, false, tools["listChanged"])
}

func TestMCPToolCallQuery(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(
		`["region","amount"]`,
		`[["east",3],["west",2]]`,
	))

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"query_v2","arguments":{"workspace_id":"ws-1","sql":"SELECT region, amount FROM sales"}}}`)
	require.Equal(t, http.StatusOK, status)

	result := payload["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)

	item := content[0].(map[string]any)
	require.Equal(t, "json", item["type"])

	value := item["value"].(map[string]any)
	require.Equal(t, []any{"region", "amount"}, value["columns"])
	require.Len(t, value["rows"].([]any), 2)
}

func TestMCPToolCallViewsPassesSearch(t *testing.T) {
	t.Parallel()

	var gotSearch, gotLimit string
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"views":[{"viewName":"sales"}]}}`)
	})

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"views_v2","arguments":{"workspace_id":"ws-9","q":"sales"}}}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "sales", gotSearch, "the q argument maps onto the catalog search filter")
	require.Equal(t, "100", gotLimit, "omitted limit falls back to the catalog default")

	result := payload["result"].(map[string]any)
	content := result["content"].([]any)
	value := content[0].(map[string]any)["value"].(map[string]any)
	require.Contains(t, value, "data")
}

func TestMCPToolCallValidationError(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"query_v2","arguments":{"workspace_id":"ws-1"}}}`)
	require.Equal(t, http.StatusBadRequest, status)

	code, message := rpcErrorOf(t, payload)
	require.Equal(t, json.Number("-32000"), code)
	require.Contains(t, message, "sql")
}

func TestMCPUnknownToolAndMethod(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"nope"}}`)
	require.Equal(t, http.StatusNotFound, status)
	code, message := rpcErrorOf(t, payload)
	require.Equal(t, json.Number("-32601"), code)
	require.Contains(t, message, "nope")

	status, payload = mcpPost(t, client.BaseURL, "/mcp",
		`{"jsonrpc":"2.0","id":7,"method":"bogus"}`)
	require.Equal(t, http.StatusNotFound, status)
	code, _ = rpcErrorOf(t, payload)
	require.Equal(t, json.Number("-32601"), code)
}

func TestMCPMalformedAndInvalidRequests(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp", `{`)
	require.Equal(t, http.StatusBadRequest, status)
	code, _ := rpcErrorOf(t, payload)
	require.Equal(t, json.Number("-32700"), code)

	status, payload = mcpPost(t, client.BaseURL, "/mcp", `{"hello":1}`)
	require.Equal(t, http.StatusBadRequest, status)
	code, _ = rpcErrorOf(t, payload)
	require.Equal(t, json.Number("-32600"), code)
}

func TestMCPLegacyActionEnvelope(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"ownedWorkspaces":[]}}`)
	})

	status, payload := mcpPost(t, client.BaseURL, "/mcp", `{"action":"workspaces_v2"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, payload["ok"])
	require.Equal(t, "workspaces_v2", payload["action"])
	require.Contains(t, payload["result"].(map[string]any), "data")

	status, payload = mcpPost(t, client.BaseURL, "/mcp", `{"action":"nope"}`)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, false, payload["ok"])
	require.Contains(t, payload["error"].(string), "nope")
}

func TestMCPTrailingSlashAlias(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	status, payload := mcpPost(t, client.BaseURL, "/mcp/",
		`{"jsonrpc":"2.0","id":8,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, payload["result"])
}

func TestMCPRequiresAuthentication(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	resp, err := http.Post(client.BaseURL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
}

func TestActionStreamAdvertisesTools(t *testing.T) {
	t.Parallel()

	client := newTestGateway(t, exportResponse(`["a"]`, `[]`))

	resp, err := http.Get(client.BaseURL + "/sse")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: actions\n", event)

	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(data, "data: "))

	var frame struct {
		Actions []struct {
			Name       string          `json:"name"`
			Parameters json.RawMessage `json:"parameters"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(data, "data: ")), &frame))
	require.Len(t, frame.Actions, 5)
	require.Equal(t, "workspaces_v2", frame.Actions[0].Name)
	require.NotEmpty(t, frame.Actions[0].Parameters)
}
