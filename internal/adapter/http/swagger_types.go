package http

// SwaggerFlight documents the shape of a flight record in API responses.
// Records are flat objects: besides the four fields below, any passthrough
// fields supplied by the flight data source appear at the top level.
// @Description Flight record from the configured data source
type SwaggerFlight struct {
	// ID is the source's identifier, string or number
	ID string `json:"id" example:"1"`

	// Origin is the departure location code
	Origin string `json:"origin" example:"JFK"`

	// Destination is the arrival location code
	Destination string `json:"destination" example:"LAX"`

	// Price is the fare, never negative
	Price float64 `json:"price" example:"200"`

	// Airline is an example passthrough field
	Airline string `json:"airline,omitempty" example:"Demo Air 1"`

	// Departure is an example passthrough field
	Departure string `json:"departure,omitempty" example:"2024-05-01T09:30:00Z"`
}
