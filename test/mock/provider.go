// Package mock provides test doubles for the flight price tracker.
// These mocks are designed for integration testing where we need
// configurable delays and errors.
package mock

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider.
// It stands in for slow and failing data sources.
type Provider struct {
	name      string
	flights   []domain.Flight
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithFlights configures the provider to return the given flights.
func (p *Provider) WithFlights(flights []domain.Flight) *Provider {
	p.flights = flights
	return p
}

// WithError configures the provider to return the given error.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before responding.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Flights implements domain.FlightProvider.Flights.
// The configured delay honours ctx; the result is a copy of the configured flights.
func (p *Provider) Flights(ctx context.Context) ([]domain.Flight, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, domain.NewProviderError(p.name, ctx.Err())
		case <-time.After(p.delay):
		}
	}

	if p.err != nil {
		return nil, domain.NewProviderError(p.name, p.err)
	}

	// callers must not be able to mutate the configured records
	out := make([]domain.Flight, len(p.flights))
	copy(out, p.flights)
	return out, nil
}

// CallCount returns the number of times Flights was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

var _ domain.FlightProvider = (*Provider)(nil)

// sampleRoutes cycles through a few routes so filters have something to do.
var sampleRoutes = [][2]string{
	{"JFK", "LAX"},
	{"JFK", "SFO"},
	{"YYZ", "YVR"},
}

// SampleFlights returns count flights. IDs run from 1, routes cycle through
// JFK-LAX, JFK-SFO and YYZ-YVR, and prices rise by 50 from 150.
func SampleFlights(count int) []domain.Flight {
	flights := make([]domain.Flight, count)
	for i := range flights {
		route := sampleRoutes[i%len(sampleRoutes)]
		flights[i] = domain.Flight{
			ID:          json.Number(strconv.Itoa(i + 1)),
			Origin:      route[0],
			Destination: route[1],
			Price:       150 + float64(i*50),
			Extra: map[string]any{
				"airline": "Demo Air " + strconv.Itoa(i+1),
			},
		}
	}
	return flights
}
