package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/virgilio7-zoho/zoho-mcp/internal/gateway/http"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/query"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/service"
	"github.com/virgilio7-zoho/zoho-mcp/internal/gateway/zoho"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/cryptox"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/jwtx"
	"github.com/virgilio7-zoho/zoho-mcp/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	signingKeyID = "gateway-1"
)

// Application encapsulates the gateway with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	upstream *zoho.Client
	signer   *jwtx.Signer
	keys     *jwtx.KeySet

	// Services
	queryService        *service.QueryService
	authService         *service.AuthService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "analytics-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.initUpstream()

	if err := app.initKeys(); err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}

	app.initServices()

	if err := app.initHTTP(); err != nil {
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("analytics gateway starting", "port", app.cfg.Port, "version", BuildVersion)
	if !app.upstream.Configured() {
		app.logger.Warn("analytics credentials not configured, data endpoints will fail")
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down analytics gateway...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	app.logger.Info("analytics gateway stopped")
	return nil
}

// initUpstream builds the analytics client from the configured credentials.
func (app *Application) initUpstream() {
	app.upstream = zoho.NewClient(zoho.Config{
		AccountsURL:  app.cfg.AccountsURL,
		AnalyticsURL: app.cfg.AnalyticsURL,
		ClientID:     app.cfg.ClientID,
		ClientSecret: app.cfg.ClientSecret,
		RefreshToken: app.cfg.RefreshToken,
		OrgID:        app.cfg.OrgID,
		Timeout:      app.cfg.RequestTimeout,
		SafetyMargin: app.cfg.TokenSafetyMargin,
	})
}

// initKeys generates the ephemeral Ed25519 signing key for gateway tokens.
// All outstanding gateway tokens become invalid when the service restarts,
// matching the in-memory grant state.
func (app *Application) initKeys() error {
	signer, err := jwtx.NewEphemeralSigner(signingKeyID)
	if err != nil {
		return err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return err
	}

	app.signer = signer
	app.keys = keys

	app.logger.Info("generated ephemeral signing key",
		"algorithm", signer.Alg(), "kid", signer.KID(), "issuer", app.cfg.Issuer)
	app.logger.Warn("all existing gateway tokens are now invalid due to key rotation on startup")

	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	builder := query.Builder{
		DefaultLimit: app.cfg.DefaultExportLimit,
		MaxLimit:     app.cfg.MaxExportLimit,
		MaxSQLLength: app.cfg.MaxSQLLength,
	}

	app.queryService = service.NewQueryService(builder, app.upstream)
	app.authService = service.NewAuthService(app.signer, app.cfg.Issuer)

	app.housekeepingService = service.NewHousekeepingService(
		app.authService,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	apiKeyHash := ""
	if app.cfg.APIKey != "" {
		hash, err := cryptox.HashSecret(app.cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to hash api key: %w", err)
		}
		apiKeyHash = hash
	} else {
		app.logger.Info("no api key configured, only bearer tokens are accepted")
	}

	verifier := jwtx.NewVerifierEdDSA(app.keys, app.cfg.Issuer, nil)

	router := httpapi.NewRouter(
		app.keys,
		verifier,
		app.cfg.Issuer,
		apiKeyHash,
		BuildVersion,
		app.upstream,
		app.logger,
	)

	// Wire services to router
	router.QueryService = app.queryService
	router.AuthService = app.authService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return nil
}
