package usecase

import (
	"context"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// FilterByRoute returns the flights going exactly from origin to destination.
//
// Behavior:
//   - Comparison is case-sensitive
//   - Relative order of the input is preserved
//   - Does NOT mutate the input slice
//   - Never returns nil
func FilterByRoute(flights []domain.Flight, origin, destination string) []domain.Flight {
	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if f.MatchesRoute(origin, destination) {
			result = append(result, f)
		}
	}
	return result
}

// FilterByMaxPrice returns the flights priced at or below maxPrice.
// A flight priced exactly maxPrice is kept. Order is preserved and the
// input slice is not mutated.
func FilterByMaxPrice(flights []domain.Flight, maxPrice float64) []domain.Flight {
	q := domain.FlightQuery{MaxPrice: &maxPrice}
	result := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if q.WithinBudget(f) {
			result = append(result, f)
		}
	}
	return result
}

// ListFlights runs the full listing flow for q: the route lookup when both
// ends are given, otherwise every flight, then the max-price filter.
// Both the HTTP gateway and the CLI go through here.
func ListFlights(ctx context.Context, svc FlightQueryService, q domain.FlightQuery) ([]domain.Flight, error) {
	var (
		flights []domain.Flight
		err     error
	)
	if q.HasRoute() {
		flights, err = svc.GetFlightsByRoute(ctx, *q.Origin, *q.Destination)
	} else {
		flights, err = svc.GetAllFlights(ctx)
	}
	if err != nil {
		return nil, err
	}

	if q.MaxPrice != nil {
		flights = FilterByMaxPrice(flights, *q.MaxPrice)
	}
	return flights, nil
}
