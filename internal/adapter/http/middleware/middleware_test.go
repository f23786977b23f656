package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-price-tracker/internal/adapter/http/response"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/metrics"
)

// findLogEntry returns the first JSON log line whose message equals msg.
func findLogEntry(t *testing.T, buf *bytes.Buffer, msg string) map[string]interface{} {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err == nil && entry["message"] == msg {
			return entry
		}
	}
	return nil
}

// =====================================================
// Request ID Middleware Tests
// =====================================================

func TestRequestID_GeneratesNewID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(c)
	require.NoError(t, err)

	reqID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, reqID, "should generate request ID")
	assert.Len(t, reqID, 36, "should be UUID format (36 chars)")
	assert.Equal(t, reqID, GetRequestID(c), "context ID should match header ID")
}

func TestRequestID_IncomingHeader(t *testing.T) {
	tests := []struct {
		name      string
		incoming  string
		propagate bool
	}{
		{"plain id is propagated", "existing-request-id-12345", true},
		{"id at length limit is propagated", strings.Repeat("a", 128), true},
		{"overlong id is replaced", strings.Repeat("a", 129), false},
		{"id with spaces is replaced", "id with spaces", false},
		{"id with control characters is replaced", "id\x07bell", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestID()(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})
			require.NoError(t, handler(c))

			respID := rec.Header().Get(RequestIDHeader)
			if tt.propagate {
				assert.Equal(t, tt.incoming, respID)
			} else {
				assert.NotEqual(t, tt.incoming, respID)
				assert.Len(t, respID, 36)
			}
			assert.Equal(t, respID, GetRequestID(c))
		})
	}
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Empty(t, GetRequestID(c), "should return empty string when not set")
}

// =====================================================
// Request Logging Middleware Tests
// =====================================================

func TestRequestLogger_LogsRequestDetails(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).With().Timestamp().Logger()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/flights?origin=JFK", nil)
	req.Header.Set("User-Agent", "TestAgent/1.0")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/flights")

	c.Set("request_id", "test-req-id-123")

	handler := RequestLogger(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(c)
	require.NoError(t, err)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry), "log output should be valid JSON")

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "test-req-id-123", logEntry["request_id"])
	assert.Equal(t, "GET", logEntry["method"])
	assert.Equal(t, "/api/flights", logEntry["path"])
	assert.Equal(t, "/api/flights", logEntry["route"])
	assert.Equal(t, "origin=JFK", logEntry["query"])
	assert.Equal(t, float64(200), logEntry["status"])
	assert.Contains(t, logEntry, "duration_ms")
	assert.Equal(t, "TestAgent/1.0", logEntry["user_agent"])
	assert.Equal(t, "HTTP request", logEntry["message"])
}

func TestRequestLogger_LogsClientIP(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Real-IP", "192.168.1.100")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLogger(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, "192.168.1.100", logEntry["client_ip"])
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success is info", http.StatusOK, "info"},
		{"client error is warn", http.StatusBadRequest, "warn"},
		{"server error is error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			logger := zerolog.New(&logBuf)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLogger(logger)(func(c echo.Context) error {
				return c.JSON(tt.status, map[string]string{"error": "x"})
			})
			require.NoError(t, handler(c))

			var logEntry map[string]interface{}
			require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
			assert.Equal(t, tt.wantLevel, logEntry["level"])
			assert.Equal(t, float64(tt.status), logEntry["status"])
		})
	}
}

func TestRequestLogger_HandlesReturnedError(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestLogger(logger)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not here")
	})

	err := handler(c)
	require.NoError(t, err, "error is handed to echo's error handler")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, "warn", logEntry["level"])
	assert.Contains(t, logEntry, "error")
}

// =====================================================
// Recovery Middleware Tests
// =====================================================

func TestRecover_Returns500OnPanic(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "panic-req")

	handler := Recover(logger)(func(c echo.Context) error {
		panic("test panic")
	})

	assert.NotPanics(t, func() {
		err := handler(c)
		assert.NoError(t, err)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, rec.Body.String())

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, "test panic", entry["panic"])
	assert.Equal(t, "panic-req", entry["request_id"])
	assert.Contains(t, entry["stack"], "runtime/debug.Stack")
}

func TestRecover_HandlesErrorPanic(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recover(logger)(func(c echo.Context) error {
		panic(errors.New("error value panic"))
	})
	require.NoError(t, handler(c))

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.Equal(t, "error value panic", entry["panic"])
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recover(logger)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, logBuf.String())
}

func TestRecoverWithConfig_DisableStackPrint(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RecoverWithConfig(logger, RecoveryConfig{DisablePrintStack: true})(func(c echo.Context) error {
		panic("no stack")
	})
	require.NoError(t, handler(c))

	entry := findLogEntry(t, &logBuf, "Panic recovered")
	require.NotNil(t, entry)
	assert.NotContains(t, entry, "stack", "stack should not be logged when disabled")
}

func TestRecover_ResponseAlreadyCommitted(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recover(zerolog.Nop())(func(c echo.Context) error {
		_ = c.String(http.StatusAccepted, "partial")
		panic("after write")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

// =====================================================
// Setup Helper Tests
// =====================================================

func TestSetup_AppliesAllMiddleware(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)
	m := metrics.New()

	e := echo.New()
	Setup(e, logger, m)

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "setup test")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader), "RequestID middleware should set header")
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin), "CORS should allow any origin")
	assert.NotEmpty(t, logBuf.String(), "RequestLogger middleware should log")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/test", "200")))
}

func TestSetup_RecoversPanicAndCountsIt(t *testing.T) {
	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf)
	m := metrics.New()

	e := echo.New()
	Setup(e, logger, m)

	e.GET("/panic", func(c echo.Context) error {
		panic("setup panic test")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"`+response.MsgInternalError+`"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/panic", "500")))

	entry := findLogEntry(t, &logBuf, "HTTP request")
	require.NotNil(t, entry)
	assert.Equal(t, float64(500), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestChain_ReturnsMiddlewareSlice(t *testing.T) {
	logger := zerolog.Nop()

	assert.Len(t, Chain(logger, nil), 4, "without metrics")
	assert.Len(t, Chain(logger, metrics.New()), 5, "with metrics")

	e := echo.New()
	g := e.Group("/api", Chain(logger, nil)...)
	g.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "chain test")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chain test", rec.Body.String())
}
