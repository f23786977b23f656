// Package response provides the HTTP response builders for the flight API.
// Every error body has the shape {"error": "<message>"} with optional field details.
package response

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	// Error is a human-readable message
	Error string `json:"error" example:"Failed to fetch flight data"`

	// Details maps a query parameter to what was wrong with it
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Source string `json:"source,omitempty" example:"file"`
}

// Error messages used in API responses.
const (
	MsgFetchFailed   = "Failed to fetch flight data"
	MsgInvalidQuery  = "Invalid query parameters"
	MsgInternalError = "An unexpected error occurred"
)

// InvalidFilterMessage returns the error message for a rejected filter,
// e.g. "Invalid maxPrice filter value".
func InvalidFilterMessage(field string) string {
	return fmt.Sprintf("Invalid %s filter value", field)
}

// Flights writes a 200 OK response with the flights as a JSON array.
// A nil slice is written as [] so clients always get an array.
func Flights(c echo.Context, flights []domain.Flight) error {
	if flights == nil {
		flights = []domain.Flight{}
	}
	return c.JSON(http.StatusOK, flights)
}

// Health writes a health check response.
func Health(c echo.Context, source string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
		Source: source,
	})
}

// BadRequest writes a 400 Bad Request response with the given message.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorBody{
		Error: message,
	})
}

// InvalidFilter writes a 400 Bad Request response for a rejected filter value.
func InvalidFilter(c echo.Context, field, reason string) error {
	return c.JSON(http.StatusBadRequest, &ErrorBody{
		Error:   InvalidFilterMessage(field),
		Details: map[string]string{field: reason},
	})
}

// FetchFailed writes the 500 response for a flight data failure.
func FetchFailed(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorBody{
		Error: MsgFetchFailed,
	})
}

// InternalServerError writes a generic 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorBody{
		Error: MsgInternalError,
	})
}
