package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/flight-search/flight-price-tracker/internal/infrastructure/metrics"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later log line can carry it
//  2. RequestLogger
//  3. Metrics (skipped when m is nil)
//  4. Recover, innermost of the observers so panics still get logged and counted as 500
//  5. CORS, open to every origin
//
// Call it before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger, m *metrics.Metrics) {
	e.Use(Chain(log, m)...)
}

// Chain returns the middleware stack as a slice for use with route groups.
func Chain(log zerolog.Logger, m *metrics.Metrics) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
	}
	if m != nil {
		chain = append(chain, m.Middleware())
	}
	return append(chain,
		Recover(log),
		echomw.CORS(),
	)
}
