package http

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouteConfig holds what RegisterRoutes needs besides the handler.
type RouteConfig struct {
	// StaticDir is the public asset root served verbatim.
	StaticDir string

	// StaticIndex is the SPA shell, relative to StaticDir, returned for every unmatched path.
	StaticIndex string

	// Metrics serves GET /metrics when non-nil.
	Metrics echo.HandlerFunc
}

// RegisterRoutes registers the API, operational endpoints, and the static
// asset fallback. Resolution order for a GET:
//  1. an existing file under StaticDir
//  2. a registered route (/api/flights, /health, /metrics, /swagger/*)
//  3. the SPA shell, with status 200
func RegisterRoutes(e *echo.Echo, h *FlightHandler, cfg RouteConfig) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.GET("/flights", h.ListFlights)

	if cfg.Metrics != nil {
		e.GET("/metrics", cfg.Metrics)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Skipper: skipStatic,
			Root:    cfg.StaticDir,
			Index:   cfg.StaticIndex,
			HTML5:   true,
		}))
	}
}

// skipStatic keeps the static middleware off routes that own a wildcard,
// since it would otherwise resolve the wildcard against StaticDir.
func skipStatic(c echo.Context) bool {
	return strings.HasPrefix(c.Path(), "/swagger/")
}
