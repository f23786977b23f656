// Package integration provides helpers and integration tests for the flight price tracker.
// Integration tests drive the fully wired application (middleware, routes,
// gateway, query service) over HTTP against mock providers.
package integration

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/flight-search/flight-price-tracker/internal/app"
	"github.com/flight-search/flight-price-tracker/internal/config"
	"github.com/flight-search/flight-price-tracker/internal/domain"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/logger"
	"github.com/flight-search/flight-price-tracker/test/testutil"
)

// TestServer wraps the application handler and provides helper methods for integration testing.
type TestServer struct {
	App       *app.App
	StaticDir string
}

// NewTestServer wires the application around provider with a temporary web root.
func NewTestServer(t *testing.T, provider domain.FlightProvider) *TestServer {
	t.Helper()

	staticDir := testutil.StaticDir(t, map[string]string{
		"app.js":           "console.log('tracker')",
		"css/app.css":      "body{margin:0}",
		"images/plane.svg": "<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>",
	})

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            3001,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Static:  config.StaticConfig{Dir: staticDir, Index: "index.html"},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
		App:     config.AppConfig{Env: "development"},
		Flights: config.FlightSourceConfig{Source: config.SourceFile},
	}

	return &TestServer{
		App:       app.NewWithProvider(cfg, logger.Nop(), provider),
		StaticDir: staticDir,
	}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Get executes a GET request against path and returns the response.
func (ts *TestServer) Get(path string) Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.App.Handler().ServeHTTP(rec, req)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// FlightsRequest calls the listing endpoint with the given query parameters.
func (ts *TestServer) FlightsRequest(params map[string]string) Response {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	path := "/api/flights"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return ts.Get(path)
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Get("/health")
}
