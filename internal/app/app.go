// Package app wires configuration, logging, telemetry, services and
// the HTTP server into a runnable application.
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pokernight/internal/config"
	"pokernight/internal/infrastructure"
	customMiddleware "pokernight/internal/middleware"
	"pokernight/internal/services"
	"pokernight/internal/sheets"
	handlers "pokernight/internal/transport/http"
	"pokernight/pkg/contracts"
)

// AppName is the human-readable application name.
const AppName = "Poker Night Tracker"

// Application is the main application container.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	DataService   *services.DataService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication creates a new application instance with dependency
// injection.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initServices builds the data service, attaching the Sheets source
// only when credentials are configured.
func (app *Application) initServices() error {
	var source services.Source

	creds, err := app.Config.SheetsCredentials()
	if err != nil {
		return fmt.Errorf("failed to resolve sheets credentials: %w", err)
	}

	sheetsCfg := sheets.Config{
		SpreadsheetID:   app.Config.Sheets.SpreadsheetID,
		WorksheetName:   app.Config.Sheets.WorksheetName,
		CredentialsJSON: creds,
	}
	if sheetsCfg.Configured() {
		source = sheets.NewClient(sheetsCfg, app.Logger)
		app.Logger.Info("Sheets source configured",
			slog.String("worksheet", sheetsCfg.WorksheetName))
	} else {
		app.Logger.Info("Sheets source not configured, serving sample data")
	}

	app.DataService = services.NewDataService(app.Config, source, app.Logger)
	return nil
}

// setupRouter assembles the middleware chain and mounts all routes.
func (app *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(app.Logger))
	r.Use(customMiddleware.Recoverer(app.Logger))
	r.Use(customMiddleware.Metrics)
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))
	r.Use(middleware.Timeout(60 * time.Second))

	if app.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: app.Config.Security.AllowedOrigins,
			Logger:         app.Logger,
		}))
	}

	if app.Config.Security.RateLimit.Enabled {
		limiter := customMiddleware.NewRateLimiter(
			app.Config.Security.RateLimit.RPS,
			app.Config.Security.RateLimit.Burst,
			app.Logger,
		)
		r.Use(limiter.Handler)
	}

	sessionHandler := handlers.NewSessionHandler(app.DataService, app.Logger)
	r.Mount("/api", sessionHandler.Routes())

	r.Method(http.MethodGet, "/healthz", handlers.NewHealthHandler(contracts.Version))
	if app.OTelProviders.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", app.OTelProviders.PrometheusHTTP)
	}

	app.Router = r
}

// createServer configures the HTTP server with timeouts.
func (app *Application) createServer() {
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", app.Config.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until shutdown.
func (app *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		app.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return app.Shutdown()
}

// Shutdown gracefully stops the server and flushes telemetry.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return err
	}

	if app.OTelProviders != nil {
		if err := app.OTelProviders.Shutdown(ctx); err != nil {
			app.Logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		return err
	}

	app.Logger.Info("shutdown complete")
	return nil
}
