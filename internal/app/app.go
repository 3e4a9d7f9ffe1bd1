package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"pctrack/internal/config"
	"pctrack/internal/dataprocessing"
	apierrors "pctrack/internal/errors"
	"pctrack/internal/files"
	"pctrack/internal/infrastructure"
	custommiddleware "pctrack/internal/middleware"
	"pctrack/internal/services"
	handlers "pctrack/internal/transport/http"
)

// Version is the reported application version.
const Version = "1.0.0"

// Application is the container wiring configuration, services and the
// HTTP server together.
type Application struct {
	Config      *config.Config
	Router      *chi.Mux
	Server      *http.Server
	Logger      *slog.Logger
	Store       *files.Store
	DataService *services.DataService
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("data_dir", cfg.Paths.DataDir))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	store := files.NewStore(cfg, logger)
	consolidator := dataprocessing.NewConsolidator(cfg.Pipeline, logger)
	dataService := services.NewDataService(store, consolidator, logger)

	app := &Application{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		DataService: dataService,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter assembles the middleware chain and mounts the handlers.
func (app *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(app.Logger))
	r.Use(custommiddleware.Recoverer(app.Logger))
	r.Use(custommiddleware.SecurityHeaders)
	if app.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			app.Config.Security.RateLimit.RPS,
			app.Config.Security.RateLimit.Burst,
			app.Logger,
		)
		r.Use(limiter.Handler)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	errorHandler := apierrors.NewErrorHandler(app.Logger)

	dataHandler := handlers.NewDataHandler(app.DataService, app.Logger, errorHandler)
	adminHandler := handlers.NewAdminHandler(app.DataService, app.Logger, errorHandler, app.Config.Server.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(app.DataService, app.Logger, Version)

	r.Get("/healthz", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/records", dataHandler.GetRecords)
		r.Get("/records/export", dataHandler.ExportRecords)

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.AdminAuth(app.Config.Security.AdminPassword, app.Logger))
			r.Get("/files", adminHandler.ListFiles)
			r.Post("/files", adminHandler.UploadCourseFiles)
			r.Post("/files/roster", adminHandler.UploadRoster)
			r.Delete("/files/{name}", adminHandler.DeleteFile)
			r.Get("/diagnostics", adminHandler.GetDiagnostics)
		})
	})

	return r
}

// Run starts the HTTP server and blocks until shutdown.
func (app *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("http server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		app.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	app.Logger.Info("server stopped")
	return infrastructure.CloseLogFile()
}
