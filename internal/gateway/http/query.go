package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/domain"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/gatewaysdk"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
)

// QueryHandler serves the export, query and aggregate endpoints. All three
// accept a JSON body naming a workspace plus either a raw SQL query or a view
// export, and answer with the normalized columns-and-rows result.
type QueryHandler struct {
	QueryService *service.QueryService
}

// HandleExport godoc
//
//	@Summary		Export View Data
//	@Description	Exports rows from a named view with limit/offset pagination.
//	@Tags			Query
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gatewaysdk.QueryRequest	true	"workspace_id and view, with optional limit and offset"
//	@Success		200		{object}	gatewaysdk.QueryResult	"columns, rows"
//	@Failure		400		{object}	gatewaysdk.APIError		"error, message"
//	@Failure		502		{object}	gatewaysdk.APIError		"error, message"
//	@Failure		504		{object}	gatewaysdk.APIError		"error, message"
//	@Router			/v1/export [post].
func (h *QueryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var dto gatewaysdk.QueryRequest
	if err := decodeBody(r, &dto); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if strings.TrimSpace(dto.View) == "" {
		writeDomainError(w, r, domain.Validationf("view is required"))
		return
	}

	h.run(w, r, dto, nil)
}

// HandleQuery godoc
//
//	@Summary		Run SQL Query
//	@Description	Runs a read-only SQL query against a workspace. The SQL text is passed to the analytics engine unchanged.
//	@Tags			Query
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gatewaysdk.QueryRequest	true	"workspace_id and sql"
//	@Success		200		{object}	gatewaysdk.QueryResult	"columns, rows"
//	@Failure		400		{object}	gatewaysdk.APIError		"error, message"
//	@Failure		502		{object}	gatewaysdk.APIError		"error, message"
//	@Failure		504		{object}	gatewaysdk.APIError		"error, message"
//	@Router			/v1/query [post].
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var dto gatewaysdk.QueryRequest
	if err := decodeBody(r, &dto); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if strings.TrimSpace(dto.SQL) == "" {
		writeDomainError(w, r, domain.Validationf("sql is required"))
		return
	}

	h.run(w, r, dto, nil)
}

// HandleAggregate godoc
//
//	@Summary		Grouped Sum Aggregation
//	@Description	Runs a query and reduces the result to one row per distinct group value, summing a numeric column. Groups keep first-seen order; non-numeric values count as zero.
//	@Tags			Query
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gatewaysdk.AggregateRequest	true	"query plus group_by and sum_column"
//	@Success		200		{object}	gatewaysdk.QueryResult		"columns, rows"
//	@Failure		400		{object}	gatewaysdk.APIError			"error, message"
//	@Failure		502		{object}	gatewaysdk.APIError			"error, message"
//	@Router			/v1/aggregate [post].
func (h *QueryHandler) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	var dto gatewaysdk.AggregateRequest
	if err := decodeBody(r, &dto); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if strings.TrimSpace(dto.GroupBy) == "" {
		writeDomainError(w, r, domain.Validationf("group_by is required"))
		return
	}
	if strings.TrimSpace(dto.SumColumn) == "" {
		writeDomainError(w, r, domain.Validationf("sum_column is required"))
		return
	}

	spec := domain.AggregationSpec{GroupBy: dto.GroupBy, SumColumn: dto.SumColumn}
	h.run(w, r, dto.QueryRequest, &spec)
}

func (h *QueryHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	dto gatewaysdk.QueryRequest,
	spec *domain.AggregationSpec,
) {
	result, err := h.QueryService.Execute(r.Context(), toDomainRequest(dto), spec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatewaysdk.QueryResult{
		Columns: result.Columns,
		Rows:    result.Rows,
	})
}

// toDomainRequest maps the wire DTO onto the discriminated domain request.
// A request carrying both sql and view keeps both set so the builder can
// reject it with a precise message.
func toDomainRequest(dto gatewaysdk.QueryRequest) domain.QueryRequest {
	var req domain.QueryRequest
	if strings.TrimSpace(dto.SQL) != "" {
		req.SQL = &domain.SQLQuery{Workspace: dto.WorkspaceID, SQL: dto.SQL}
	}
	if strings.TrimSpace(dto.View) != "" {
		req.View = &domain.ViewQuery{
			Workspace: dto.WorkspaceID,
			View:      dto.View,
			Limit:     dto.Limit,
			Offset:    dto.Offset,
		}
	}
	return req
}

func decodeBody(r *http.Request, target any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return domain.Validationf("request body is not valid JSON")
	}
	return nil
}
