package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightProvider supplies the raw set of flight records.
// Implementations must return records in a stable order and wrap
// failures so they match ErrDataUnavailable.
type FlightProvider interface {
	// Name returns the provider's identifier, used in logs and metrics.
	Name() string

	// Flights returns every record the source holds, in source order.
	Flights(ctx context.Context) ([]Flight, error)
}

// RouteFinder is implemented by providers able to evaluate the route filter
// themselves, e.g. SQL stores. Results must equal filtering Flights in memory.
type RouteFinder interface {
	FlightsByRoute(ctx context.Context, origin, destination string) ([]Flight, error)
}
