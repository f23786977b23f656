// Package app wires configuration, the flight data provider, the query
// service, and the HTTP gateway into one process lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/labstack/echo/v4"

	_ "github.com/flight-search/flight-price-tracker/docs"
	flighthttp "github.com/flight-search/flight-price-tracker/internal/adapter/http"
	"github.com/flight-search/flight-price-tracker/internal/adapter/http/middleware"
	"github.com/flight-search/flight-price-tracker/internal/config"
	"github.com/flight-search/flight-price-tracker/internal/domain"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/logger"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/metrics"
	"github.com/flight-search/flight-price-tracker/internal/usecase"
)

// App owns the HTTP server and the provider for the life of the process.
type App struct {
	cfg      *config.Config
	log      *logger.Logger
	echo     *echo.Echo
	provider domain.FlightProvider
	service  usecase.FlightQueryService
	metrics  *metrics.Metrics

	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownErr  error
}

// New builds the provider selected by cfg and the application around it.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	provider, err := NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", cfg.Flights.Source, err)
	}
	return NewWithProvider(cfg, log, provider), nil
}

// NewWithProvider builds the application around an existing provider.
func NewWithProvider(cfg *config.Config, log *logger.Logger, provider domain.FlightProvider) *App {
	m := metrics.New()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger, m)

	svc := usecase.NewFlightQueryService(provider, m)
	handler := flighthttp.NewFlightHandler(svc, provider.Name(), log.WithComponent("gateway"))
	flighthttp.RegisterRoutes(e, handler, flighthttp.RouteConfig{
		StaticDir:   cfg.Static.Dir,
		StaticIndex: cfg.Static.Index,
		Metrics:     m.Handler(),
	})

	return &App{
		cfg:      cfg,
		log:      log,
		echo:     e,
		provider: provider,
		service:  svc,
		metrics:  m,
	}
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Service returns the query service backing the gateway.
func (a *App) Service() usecase.FlightQueryService {
	return a.service
}

// Run listens on the configured port until ctx is cancelled or the server fails,
// then shuts down.
func (a *App) Run(ctx context.Context) error {
	return a.Serve(ctx, nil)
}

// Serve is Run on a caller-supplied listener. A nil ln listens on the configured port.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	addr := a.cfg.Addr()
	if ln != nil {
		a.echo.Listener = ln
		addr = ln.Addr().String()
	}

	serveErr := make(chan error, 1)
	a.Go("http-server", func() {
		a.log.Info().
			Str("address", addr).
			Str("source", a.provider.Name()).
			Msg("Starting server")
		if err := a.echo.Start(a.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	select {
	case <-ctx.Done():
		a.log.Info().Msg("Shutting down server...")
		return a.Shutdown()
	case err := <-serveErr:
		a.log.Error().Err(err).Msg("Server failed")
		return errors.Join(fmt.Errorf("http server: %w", err), a.Shutdown())
	}
}

// Shutdown drains in-flight requests within the shutdown timeout, then
// closes the provider. Safe to call more than once.
func (a *App) Shutdown() error {
	a.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := a.echo.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}

		a.wg.Wait()

		if err := CloseProvider(a.provider); err != nil {
			errs = append(errs, fmt.Errorf("close %s provider: %w", a.provider.Name(), err))
		}

		a.shutdownErr = errors.Join(errs...)
		if a.shutdownErr != nil {
			a.log.Error().Err(a.shutdownErr).Msg("Error during shutdown")
		} else {
			a.log.Info().Msg("Server stopped")
		}
	})
	return a.shutdownErr
}

// Go runs fn in a goroutine tracked by Shutdown. A panic in fn is logged with
// its stack and does not take the process down.
func (a *App) Go(name string, fn func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.Error().
					Str("goroutine", name).
					Str("panic", fmt.Sprint(r)).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic in background goroutine")
			}
		}()
		fn()
	}()
}
