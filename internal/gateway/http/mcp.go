package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
)

// JSON-RPC 2.0 error codes. rpcToolError is the implementation-defined code
// for a tool call that was dispatched but failed.
const (
	rpcParseError     = -32700
	rpcInvalidRequest = -32600
	rpcMethodNotFound = -32601
	rpcToolError      = -32000
)

const (
	sseKeepAliveInterval = time.Second
	sseKeepAliveCount    = 5
)

// mcpServerName identifies the gateway in the initialize handshake.
const mcpServerName = "Zoho Analytics MCP"

// toolDefinition describes one callable tool as advertised by tools/list.
type toolDefinition struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// mcpTools is the fixed tool registry. Each tool fronts one of the gateway's
// catalog or query operations; the schemas mirror the REST bodies.
var mcpTools = []toolDefinition{
	{
		Name:        "workspaces_v2",
		Title:       "List Workspaces",
		Description: "List all workspaces available to the authenticated user.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`),
	},
	{
		Name:        "views_v2",
		Title:       "Search Views",
		Description: "Search or list views within a workspace.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"workspace_id":{"type":"string"},"q":{"type":["string","null"]},"limit":{"type":"integer","minimum":1,"maximum":1000},"offset":{"type":"integer","minimum":0}},"required":["workspace_id"],"additionalProperties":false}`),
	},
	{
		Name:        "view_details_v2",
		Title:       "View Details",
		Description: "Retrieve metadata for a specific view.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"workspace_id":{"type":"string"},"view_id":{"type":"string"}},"required":["workspace_id","view_id"],"additionalProperties":false}`),
	},
	{
		Name:        "export_view_v2",
		Title:       "Export View",
		Description: "Export data from a specific view.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"workspace_id":{"type":"string"},"view":{"type":"string"},"limit":{"type":"integer","minimum":1,"maximum":1000},"offset":{"type":"integer","minimum":0}},"required":["workspace_id","view"],"additionalProperties":false}`),
	},
	{
		Name:        "query_v2",
		Title:       "Execute SQL",
		Description: "Execute a SQL query against a workspace.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"workspace_id":{"type":"string"},"sql":{"type":"string"}},"required":["workspace_id","sql"],"additionalProperties":false}`),
	},
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// toolContent wraps a tool result in the content envelope MCP clients expect.
type toolContent struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// MCPHandler serves the JSON-RPC tool surface at /mcp and the action
// discovery stream at /sse. Tool calls dispatch onto the same catalog and
// query services as the REST endpoints.
type MCPHandler struct {
	Zoho         *zoho.Client
	QueryService *service.QueryService
	Version      string
}

// HandleInvoke godoc
//
//	@Summary		MCP Tool Invocation
//	@Description	JSON-RPC 2.0 endpoint implementing initialize, tools/list and tools/call.
//	@Description	A legacy {"action","input"} envelope is accepted for older clients.
//	@Tags			MCP
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		object	true	"JSON-RPC 2.0 request"
//	@Success		200		{object}	object	"JSON-RPC 2.0 response"
//	@Failure		400		{object}	object	"JSON-RPC 2.0 error (parse error, invalid request, failed tool call)"
//	@Failure		404		{object}	object	"JSON-RPC 2.0 error (unknown method or tool)"
//	@Router			/mcp [post].
func (h *MCPHandler) HandleInvoke(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var env struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		Action  string          `json:"action"`
		Input   json.RawMessage `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeRPCError(w, http.StatusBadRequest, nil, rpcParseError, "Parse error")
		return
	}

	switch {
	case env.JSONRPC == "2.0":
		h.dispatchRPC(w, r, env.ID, env.Method, env.Params)
	case env.Action != "":
		h.dispatchAction(w, r, env.Action, env.Input)
	default:
		writeRPCError(w, http.StatusBadRequest, nil, rpcInvalidRequest, "Invalid request")
	}
}

func (h *MCPHandler) dispatchRPC(
	w http.ResponseWriter,
	r *http.Request,
	id json.RawMessage,
	method string,
	params json.RawMessage,
) {
	switch method {
	case "initialize":
		var p struct {
			ProtocolVersion string `json:"protocolVersion"`
		}
		if len(params) > 0 {
			_ = json.Unmarshal(params, &p)
		}
		version := p.ProtocolVersion
		if version == "" {
			version = time.Now().UTC().Format("2006-01-02")
		}
		writeRPCResult(w, id, map[string]any{
			"protocolVersion": version,
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
			"serverInfo":      map[string]any{"name": mcpServerName, "version": h.Version},
		})

	case "tools/list":
		writeRPCResult(w, id, map[string]any{"tools": mcpTools})

	case "tools/call":
		var p struct {
			Name      string          `json:"name"`
			Arguments json.RawMessage `json:"arguments"`
		}
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				writeRPCError(w, http.StatusBadRequest, id, rpcInvalidRequest, "Invalid params")
				return
			}
		}
		result, known, err := h.callTool(r.Context(), p.Name, p.Arguments)
		if !known {
			writeRPCError(w, http.StatusNotFound, id, rpcMethodNotFound, fmt.Sprintf("Unknown tool: %s", p.Name))
			return
		}
		if err != nil {
			writeRPCError(w, http.StatusBadRequest, id, rpcToolError, messageOf(err))
			return
		}
		writeRPCResult(w, id, map[string]any{
			"content": []toolContent{{Type: "json", Value: result}},
		})

	default:
		writeRPCError(w, http.StatusNotFound, id, rpcMethodNotFound, fmt.Sprintf("Method not found: %s", method))
	}
}

// dispatchAction handles the legacy non-JSON-RPC envelope. Results come back
// flat as {"ok":true,"action":name,"result":...}.
func (h *MCPHandler) dispatchAction(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	input json.RawMessage,
) {
	result, known, err := h.callTool(r.Context(), action, input)
	if !known {
		httpx.WriteJSON(w, http.StatusNotFound, map[string]any{
			"ok":    false,
			"error": fmt.Sprintf("Unknown action: %s", action),
		})
		return
	}
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": messageOf(err),
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"action": action,
		"result": result,
	})
}

// callTool runs one named tool. known is false when the name is not in the
// registry, which callers report distinctly from a failed call.
func (h *MCPHandler) callTool(ctx context.Context, name string, args json.RawMessage) (any, bool, error) {
	switch name {
	case "workspaces_v2":
		raw, err := h.Zoho.Workspaces(ctx)
		return raw, true, err

	case "views_v2":
		var a struct {
			WorkspaceID string `json:"workspace_id"`
			Q           string `json:"q"`
			Limit       *int   `json:"limit"`
			Offset      *int   `json:"offset"`
		}
		if err := decodeToolArgs(args, &a); err != nil {
			return nil, true, err
		}
		if strings.TrimSpace(a.WorkspaceID) == "" {
			return nil, true, domain.Validationf("workspace_id is required")
		}
		limit := clampToolArg(a.Limit, defaultCatalogLimit, maxCatalogLimit)
		offset := clampToolArg(a.Offset, 0, -1)
		raw, err := h.Zoho.Views(ctx, a.WorkspaceID, a.Q, limit, offset)
		return raw, true, err

	case "view_details_v2":
		var a struct {
			WorkspaceID string `json:"workspace_id"`
			ViewID      string `json:"view_id"`
		}
		if err := decodeToolArgs(args, &a); err != nil {
			return nil, true, err
		}
		// workspace_id is accepted for compatibility but the v2 API
		// addresses views directly.
		if strings.TrimSpace(a.WorkspaceID) == "" || strings.TrimSpace(a.ViewID) == "" {
			return nil, true, domain.Validationf("workspace_id and view_id are required")
		}
		raw, err := h.Zoho.ViewDetails(ctx, a.ViewID)
		return raw, true, err

	case "export_view_v2":
		var a struct {
			WorkspaceID string `json:"workspace_id"`
			View        string `json:"view"`
			Limit       *int   `json:"limit"`
			Offset      *int   `json:"offset"`
		}
		if err := decodeToolArgs(args, &a); err != nil {
			return nil, true, err
		}
		if strings.TrimSpace(a.WorkspaceID) == "" || strings.TrimSpace(a.View) == "" {
			return nil, true, domain.Validationf("workspace_id and view are required")
		}
		result, err := h.runQuery(ctx, domain.QueryRequest{
			View: &domain.ViewQuery{
				Workspace: a.WorkspaceID,
				View:      a.View,
				Limit:     a.Limit,
				Offset:    a.Offset,
			},
		})
		return result, true, err

	case "query_v2":
		var a struct {
			WorkspaceID string `json:"workspace_id"`
			SQL         string `json:"sql"`
		}
		if err := decodeToolArgs(args, &a); err != nil {
			return nil, true, err
		}
		if strings.TrimSpace(a.WorkspaceID) == "" || strings.TrimSpace(a.SQL) == "" {
			return nil, true, domain.Validationf("workspace_id and sql are required")
		}
		result, err := h.runQuery(ctx, domain.QueryRequest{
			SQL: &domain.SQLQuery{Workspace: a.WorkspaceID, SQL: a.SQL},
		})
		return result, true, err
	}

	return nil, false, nil
}

func (h *MCPHandler) runQuery(ctx context.Context, req domain.QueryRequest) (any, error) {
	result, err := h.QueryService.Execute(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	return gatewaysdk.QueryResult{Columns: result.Columns, Rows: result.Rows}, nil
}

func decodeToolArgs(args json.RawMessage, target any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, target); err != nil {
		return domain.Validationf("arguments are not valid JSON")
	}
	return nil
}

// clampToolArg applies the fallback for an omitted argument and clamps to
// [0, max]. A max of -1 means unbounded above.
func clampToolArg(v *int, fallback, max int) int {
	if v == nil {
		return fallback
	}
	n := *v
	if n < 0 {
		n = 0
	}
	if max >= 0 && n > max {
		n = max
	}
	return n
}

func writeRPCResult(w http.ResponseWriter, id json.RawMessage, result any) {
	httpx.WriteJSON(w, http.StatusOK, rpcResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func writeRPCError(w http.ResponseWriter, status int, id json.RawMessage, code int, message string) {
	httpx.WriteJSON(w, status, rpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}

// HandleActionStream godoc
//
//	@Summary		Action Discovery Stream
//	@Description	Server-sent event stream advertising the available tool schemas, followed by keep-alive comments. Exposes schemas only, never data.
//	@Tags			MCP
//	@Produce		text/event-stream
//	@Success		200	{string}	string	"event: actions frame followed by keep-alives"
//	@Router			/sse [get].
func (h *MCPHandler) HandleActionStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	payload, err := json.Marshal(map[string]any{"actions": actionDefinitions()})
	if err != nil {
		http.Error(w, "failed to encode actions", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "event: actions\ndata: %s\n\n", payload)
	flusher.Flush()

	ticker := time.NewTicker(sseKeepAliveInterval)
	defer ticker.Stop()
	for i := 0; i < sseKeepAliveCount; i++ {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

// actionDefinition is the pre-JSON-RPC shape of a tool advertisement, kept
// for clients that consume the /sse stream.
type actionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

func actionDefinitions() []actionDefinition {
	out := make([]actionDefinition, 0, len(mcpTools))
	for _, t := range mcpTools {
		out = append(out, actionDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.InputSchema,
		})
	}
	return out
}
