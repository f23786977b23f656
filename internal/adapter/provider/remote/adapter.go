// Package remote provides a flight data provider that fetches a JSON document
// over HTTP, such as a Firebase Realtime Database REST endpoint
// (https://<project>.firebaseio.com/flights.json).
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/document"
	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the remote provider.
const ProviderName = "http"

// maxBodyBytes bounds the document size read from the remote source.
const maxBodyBytes = 32 << 20

// Adapter fetches the document on every call.
type Adapter struct {
	url    string
	client *http.Client
}

// NewAdapter creates a remote adapter for url. A nil client means http.DefaultClient.
func NewAdapter(url string, client *http.Client) *Adapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Adapter{
		url:    url,
		client: client,
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, a.url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("read body: %w", err))
	}

	flights, err := document.DecodeKeyedJSON(body)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	return flights, nil
}
