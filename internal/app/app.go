package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/kSibalic/nba/internal/config"
	apperrors "github.com/kSibalic/nba/internal/errors"
	"github.com/kSibalic/nba/internal/infrastructure"
	customMiddleware "github.com/kSibalic/nba/internal/middleware"
	"github.com/kSibalic/nba/internal/sampler"
	"github.com/kSibalic/nba/internal/services"
	"github.com/kSibalic/nba/internal/source"
	handlers "github.com/kSibalic/nba/internal/transport/http"
	"github.com/kSibalic/nba/pkg/contracts"
)

const AppName = "hoops-stats"

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Snapshot      *source.Snapshot
	StatsService  *services.StatsService
	HealthService *services.HealthService
	ErrorHandler  *apperrors.ErrorHandler

	fetcher source.Fetcher
	shots   sampler.ShotSampler
}

// Option customises an Application before the season is loaded.
type Option func(*Application)

// WithFetcher replaces the default file/HTTP fetcher.
func WithFetcher(f source.Fetcher) Option {
	return func(a *Application) { a.fetcher = f }
}

// WithShotSampler replaces the seeded shot sampler.
func WithShotSampler(s sampler.ShotSampler) Option {
	return func(a *Application) { a.shots = s }
}

// NewApplication loads configuration and the logger, then builds the
// application from them.
func NewApplication(ctx context.Context, opts ...Option) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(ctx, cfg, logger, opts...)
}

// New builds the application: telemetry, the season snapshot, services and
// the router. Both season files must load; any failure aborts startup.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.GetFullVersionString()))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apperrors.NewErrorHandler(logger, cfg.Logging.Development),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = source.NewDefaultFetcher(".", cfg.Data, logger)
	}

	if err := a.loadSeason(ctx); err != nil {
		a.shutdownTelemetry(ctx)
		return nil, err
	}

	a.initializeServices()
	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) loadSeason(ctx context.Context) error {
	metrics, err := infrastructure.CreatePipelineMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	snapshot, err := source.LoadSeason(ctx, a.fetcher, a.Config.Data,
		source.WithLogger(a.Logger),
		source.WithTracer(a.OTelProviders.Tracer),
		source.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("failed to load season: %w", err)
	}
	a.Snapshot = snapshot
	return nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.StatsService = services.NewStatsService(a.Snapshot, a.shots, a.Config.Data, a.Logger)
	a.HealthService = services.NewHealthService(contracts.Version, a.Snapshot, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// RequestID → RealIP → OTel → Logger → Recoverer, then the rest
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		Logger:         a.Logger,
	}))

	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
			a.ErrorHandler,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	r.Mount("/", healthHandler.Routes())

	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	a.setupAPIRoutes(r)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger, a.ErrorHandler))

		validator := customMiddleware.NewValidationMiddleware(a.Logger)
		datasetHandler := handlers.NewDatasetHandler(a.StatsService, validator, a.Logger, a.ErrorHandler)
		r.Mount("/datasets", datasetHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts serving in the background. A listener failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level))

	for _, report := range a.Snapshot.Reports() {
		a.Logger.InfoContext(ctx, "Dataset ready",
			slog.String("kind", string(report.Kind)),
			slog.String("location", report.Location),
			slog.Int("rows", report.Rows),
			slog.Int("mismatches", report.Mismatches))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Server error")
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.shutdownTelemetry(shutdownCtx)

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

func (a *Application) shutdownTelemetry(ctx context.Context) {
	if a.OTelProviders == nil {
		return
	}
	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Error shutting down OpenTelemetry")
	}
}

// Run serves until SIGINT/SIGTERM or a listener failure, then shuts down.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.InfoContext(ctx, "Received shutdown signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	return a.Stop(ctx)
}
