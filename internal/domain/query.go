package domain

// FlightQuery holds the recognized filters of a flight listing request.
// A nil field means the filter was not supplied.
type FlightQuery struct {
	Origin      *string
	Destination *string
	MaxPrice    *float64
}

// HasRoute reports whether both ends of the route were supplied as non-empty values.
func (q FlightQuery) HasRoute() bool {
	return q.Origin != nil && *q.Origin != "" &&
		q.Destination != nil && *q.Destination != ""
}

// WithinBudget reports whether the flight passes the max-price filter.
// The bound is inclusive; no bound means every flight passes.
func (q FlightQuery) WithinBudget(f Flight) bool {
	return q.MaxPrice == nil || f.Price <= *q.MaxPrice
}
