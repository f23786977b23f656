// Package metrics provides Prometheus instrumentation for the flight price tracker.
//
// A Metrics value owns its registry so tests can build isolated instances;
// the application creates one at startup and exposes it on GET /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flight_tracker"

// Metrics groups the collectors recorded by the HTTP layer and the query service.
type Metrics struct {
	registry *prometheus.Registry

	// RequestDuration tracks HTTP latency by method, route pattern and status.
	RequestDuration *prometheus.HistogramVec

	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal *prometheus.CounterVec

	// RequestInFlight tracks requests currently being served.
	RequestInFlight prometheus.Gauge

	// ProviderFetchDuration tracks how long provider reads take.
	ProviderFetchDuration *prometheus.HistogramVec

	// ProviderFetchErrors counts failed provider reads.
	ProviderFetchErrors *prometheus.CounterVec
}

// New creates a Metrics instance with a fresh registry holding the
// Go runtime and process collectors plus the application collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		ProviderFetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of flight data provider reads in seconds.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"provider", "operation"},
		),
		ProviderFetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "fetch_errors_total",
				Help:      "Total failed flight data provider reads.",
			},
			[]string{"provider", "operation"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.ProviderFetchDuration,
		m.ProviderFetchErrors,
	)

	return m
}

// Handler returns the /metrics exposition handler for echo.
func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return echo.WrapHandler(h)
}

// Middleware records duration, count and in-flight gauge for every request.
// The route pattern is used as the path label to keep cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			m.RequestInFlight.Inc()
			defer m.RequestInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			m.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			m.RequestTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// ObserveProviderFetch records a provider read that started at start.
// Nil-safe so callers can run without metrics.
func (m *Metrics) ObserveProviderFetch(provider, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ProviderFetchDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.ProviderFetchErrors.WithLabelValues(provider, operation).Inc()
	}
}
