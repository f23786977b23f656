// Package usecase contains the business logic for flight listing.
// It reads records from a single flight data provider and applies the route filter.
package usecase

import (
	"context"
	"time"

	"github.com/flight-search/flight-price-tracker/internal/domain"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/metrics"
)

// Operation labels recorded for provider reads.
const (
	opAll   = "all"
	opRoute = "route"
)

// FlightQueryService defines the read operations over the flight data provider.
type FlightQueryService interface {
	// GetAllFlights returns every record in provider order.
	GetAllFlights(ctx context.Context) ([]domain.Flight, error)

	// GetFlightsByRoute returns the records whose origin and destination equal
	// the arguments exactly. No match yields an empty slice, not an error.
	GetFlightsByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error)
}

// flightQueryService implements FlightQueryService on top of a domain.FlightProvider.
type flightQueryService struct {
	provider domain.FlightProvider
	metrics  *metrics.Metrics
}

// NewFlightQueryService creates a query service reading from provider.
// m may be nil when metrics are not collected.
func NewFlightQueryService(provider domain.FlightProvider, m *metrics.Metrics) FlightQueryService {
	return &flightQueryService{
		provider: provider,
		metrics:  m,
	}
}

// GetAllFlights implements FlightQueryService.GetAllFlights.
func (s *flightQueryService) GetAllFlights(ctx context.Context) ([]domain.Flight, error) {
	start := time.Now()
	flights, err := s.provider.Flights(ctx)
	s.metrics.ObserveProviderFetch(s.provider.Name(), opAll, start, err)
	if err != nil {
		return nil, s.wrap(err)
	}

	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

// GetFlightsByRoute implements FlightQueryService.GetFlightsByRoute.
// Providers implementing domain.RouteFinder evaluate the filter themselves.
func (s *flightQueryService) GetFlightsByRoute(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	start := time.Now()

	var (
		flights []domain.Flight
		err     error
	)
	if finder, ok := s.provider.(domain.RouteFinder); ok {
		flights, err = finder.FlightsByRoute(ctx, origin, destination)
	} else {
		flights, err = s.provider.Flights(ctx)
		if err == nil {
			flights = FilterByRoute(flights, origin, destination)
		}
	}

	s.metrics.ObserveProviderFetch(s.provider.Name(), opRoute, start, err)
	if err != nil {
		return nil, s.wrap(err)
	}

	if flights == nil {
		flights = []domain.Flight{}
	}
	return flights, nil
}

// wrap makes sure every provider failure matches domain.ErrDataUnavailable.
func (s *flightQueryService) wrap(err error) error {
	if domain.IsDataUnavailable(err) {
		return err
	}
	return domain.NewProviderError(s.provider.Name(), err)
}
