package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/httpx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"

	_ "github.com/virgilio7-zoho/zoho-mcp/api/gateway" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	issuer       string
	apiKeyHash   string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	zoho         *zoho.Client
	QueryService *service.QueryService
	AuthService  *service.AuthService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	issuer, apiKeyHash, buildVersion string,
	upstream *zoho.Client,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		issuer:       issuer,
		apiKeyHash:   apiKeyHash,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		zoho:         upstream,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerCatalog()
	r.registerQuery()
	r.registerMCP()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Zoho Analytics Gateway API
//	@version		0.1.0
//	@description	Read-only HTTP gateway in front of the Zoho Analytics REST API. Proxies catalog
//	@description	lookups, view exports and SQL queries, manages the upstream OAuth token lifecycle,
//	@description	and embeds a minimal OAuth2 authorization server for issuing its own access tokens.
//	@description
//	@description	Gateway tokens are signed using EdDSA (Ed25519) and can be verified via the JWKS endpoint.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}". A pre-shared key in the X-API-Key header is accepted as an alternative.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// GET /authorize - lenient rate limit (immediate consent, no login form)
	authorizeHandler := &AuthorizeHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /authorize",
		httpx.Chain(authorizeHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /token - strict rate limit by IP (covers all grant types)
	tokenHandler := &TokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Discovery endpoints - public with high limits
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/oauth-authorization-server",
		httpx.Chain(ServerMetadataHandler(r.issuer),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/openid-configuration",
		httpx.Chain(ServerMetadataHandler(r.issuer),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/oauth-protected-resource",
		httpx.Chain(ProtectedResourceHandler(r.issuer),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{Zoho: r.zoho}

	// Catalog reads - lenient rate limit by caller
	r.Mux.Handle("GET /v1/workspaces", r.secured(http.HandlerFunc(h.HandleWorkspaces), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/workspaces/{id}/views", r.secured(http.HandlerFunc(h.HandleViews), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/views/{id}", r.secured(http.HandlerFunc(h.HandleViewDetails), httpx.LenientLimit))
}

func (r *Router) registerQuery() {
	h := &QueryHandler{QueryService: r.QueryService}

	// Data-plane endpoints - moderate rate limit by caller (each call hits upstream)
	r.Mux.Handle("POST /v1/export", r.secured(http.HandlerFunc(h.HandleExport), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/query", r.secured(http.HandlerFunc(h.HandleQuery), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/aggregate", r.secured(http.HandlerFunc(h.HandleAggregate), httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/token/check", r.secured(TokenCheckHandler(r.zoho), httpx.LenientLimit))
}

func (r *Router) registerMCP() {
	h := &MCPHandler{Zoho: r.zoho, QueryService: r.QueryService, Version: r.buildVersion}

	// JSON-RPC tool surface - moderate rate limit, tool calls hit upstream.
	// The trailing-slash alias matches clients that normalise the URL.
	invoke := r.secured(http.HandlerFunc(h.HandleInvoke), httpx.ModerateLimit)
	r.Mux.Handle("POST /mcp", invoke)
	r.Mux.Handle("POST /mcp/{$}", invoke)

	// Action discovery stream advertises tool schemas only, so it stays
	// public like the well-known documents.
	r.Mux.Handle("GET /sse",
		httpx.Chain(http.HandlerFunc(h.HandleActionStream),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.zoho, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

// secured wraps h with authentication and a per-caller rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, r.apiKeyHash), // verify bearer JWT or API key
		httpx.RateLimitByCaller(limit),
	)
}
