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
	"github.com/go-chi/render"

	"cardpulse/internal/config"
	"cardpulse/internal/infrastructure"
	custommw "cardpulse/internal/middleware"
	"cardpulse/internal/services"
	transport "cardpulse/internal/transport/http"
)

// Application wires configuration, observability, services and transport
// together and owns the HTTP server lifecycle.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Providers *infrastructure.OTelProviders
	Router    *chi.Mux

	server *http.Server
}

// NewApplication builds a fully wired application from configuration
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: providers,
	}
	app.setupRouter()
	app.createServer()
	return app, nil
}

// setupRouter assembles the middleware chain and API routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.Observability(a.Providers))
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))

	if a.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	liquidity := services.StaticLiquidityProvider{Score: a.Config.Analytics.DefaultLiquidityScore}
	analysisService := services.NewAnalysisService(a.Config.Analytics, liquidity, a.Logger)

	analysisHandler := transport.NewAnalysisHandler(analysisService, a.Providers, a.Logger)
	healthHandler := transport.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		analysisHandler.RegisterRoutes(r)
		healthHandler.RegisterRoutes(r)
	})

	if a.Providers.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", a.Providers.PrometheusHTTP)
	}

	a.Router = r
}

// createServer builds the HTTP server from configuration
func (a *Application) createServer() {
	a.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until shutdown completes
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("addr", a.server.Addr),
			slog.String("service", infrastructure.ServiceName))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutdown signal received")
	return a.Stop()
}

// Stop gracefully shuts down the server and flushes observability
func (a *Application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.Providers.Shutdown(ctx); err != nil {
		a.Logger.Warn("observability shutdown failed", slog.String("error", err.Error()))
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	a.Logger.Info("server stopped cleanly")
	return nil
}

// ShutdownTimeout exposes the configured grace period, mainly for tests
func (a *Application) ShutdownTimeout() time.Duration {
	return a.Config.Server.ShutdownTimeout
}
