// Package http provides the HTTP gateway for the flight price tracker.
// It parses query parameters, calls the query service, and maps errors to status codes.
package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-price-tracker/internal/adapter/http/middleware"
	"github.com/flight-search/flight-price-tracker/internal/adapter/http/response"
	"github.com/flight-search/flight-price-tracker/internal/domain"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/logger"
	"github.com/flight-search/flight-price-tracker/internal/usecase"
)

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	service usecase.FlightQueryService
	source  string
	log     *logger.Logger
}

// NewFlightHandler creates a new FlightHandler. source names the configured
// flight data provider and is reported by the health endpoint.
func NewFlightHandler(svc usecase.FlightQueryService, source string, log *logger.Logger) *FlightHandler {
	return &FlightHandler{
		service: svc,
		source:  source,
		log:     log,
	}
}

// ListFlights handles GET /api/flights
//
// @Summary List flights
// @Description Returns flight records in provider order. When both origin and destination are given only that route is returned; maxPrice keeps flights priced at or below it.
// @Tags flights
// @Produce json
// @Param origin query string false "Departure location code" example(JFK)
// @Param destination query string false "Arrival location code" example(LAX)
// @Param maxPrice query number false "Inclusive upper price bound" example(300)
// @Success 200 {array} SwaggerFlight
// @Failure 400 {object} response.ErrorBody "Invalid filter value"
// @Failure 500 {object} response.ErrorBody "Flight data unavailable"
// @Router /api/flights [get]
func (h *FlightHandler) ListFlights(c echo.Context) error {
	var req ListFlightsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return response.BadRequest(c, response.MsgInvalidQuery)
	}

	query, err := req.ToQuery()
	if err != nil {
		return h.handleFilterError(c, err)
	}

	flights, err := usecase.ListFlights(c.Request().Context(), h.service, query)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Flights(c, flights)
}

// handleFilterError writes a 400 naming the rejected parameter.
func (h *FlightHandler) handleFilterError(c echo.Context, err error) error {
	var filterErr *domain.FilterError
	if errors.As(err, &filterErr) {
		return response.InvalidFilter(c, filterErr.Field, filterErr.Message)
	}
	return response.BadRequest(c, response.MsgInvalidQuery)
}

// handleError logs a query failure and answers 500. The client only sees
// the generic message; the cause stays in the log.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	log := h.log.WithRequestID(middleware.GetRequestID(c))

	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		log = log.WithProvider(providerErr.Provider)
	}
	log.Error().
		Err(err).
		Bool("data_unavailable", domain.IsDataUnavailable(err)).
		Msg("Failed to fetch flight data")

	return response.FetchFailed(c)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c, h.source)
}
