package http

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// Recognized query parameters of GET /api/flights.
const (
	ParamOrigin      = "origin"
	ParamDestination = "destination"
	ParamMaxPrice    = "maxPrice"
)

// decimalPattern accepts plain decimals with an optional exponent. It keeps out
// the Go literal forms ParseFloat also takes: underscores, hex, Inf and NaN.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ListFlightsRequest holds the raw query parameters of GET /api/flights.
// Parameters not listed here are ignored.
type ListFlightsRequest struct {
	// Origin is the departure location code (e.g., "JFK")
	Origin string `query:"origin"`

	// Destination is the arrival location code (e.g., "LAX")
	Destination string `query:"destination"`

	// MaxPrice is the inclusive upper price bound, as a decimal string
	MaxPrice string `query:"maxPrice"`
}

// ToQuery validates the request and converts it into a domain.FlightQuery.
//
// Empty values count as absent. MaxPrice must parse as a finite,
// non-negative decimal; anything else yields a *domain.FilterError.
func (r *ListFlightsRequest) ToQuery() (domain.FlightQuery, error) {
	var q domain.FlightQuery

	if r.Origin != "" {
		origin := r.Origin
		q.Origin = &origin
	}
	if r.Destination != "" {
		destination := r.Destination
		q.Destination = &destination
	}

	raw := strings.TrimSpace(r.MaxPrice)
	if raw == "" {
		return q, nil
	}

	if !decimalPattern.MatchString(raw) {
		return domain.FlightQuery{}, domain.NewFilterError(ParamMaxPrice, r.MaxPrice, "must be a number")
	}
	maxPrice, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.FlightQuery{}, domain.NewFilterError(ParamMaxPrice, r.MaxPrice, "must be a number")
	}
	if maxPrice < 0 {
		return domain.FlightQuery{}, domain.NewFilterError(ParamMaxPrice, r.MaxPrice, "must not be negative")
	}
	q.MaxPrice = &maxPrice

	return q, nil
}
