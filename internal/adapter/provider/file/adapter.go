// Package file provides a flight data provider backed by a local JSON or YAML document.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flight-search/flight-price-tracker/internal/adapter/provider/document"
	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the file provider.
const ProviderName = "file"

// Adapter reads the whole document on every call so edits to the file
// are visible without a restart.
type Adapter struct {
	path string
}

// NewAdapter creates a file adapter reading from path.
// The format is chosen by extension: .yaml and .yml are YAML, anything else JSON.
func NewAdapter(path string) *Adapter {
	return &Adapter{path: path}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("read %s: %w", a.path, err))
	}

	var flights []domain.Flight
	switch strings.ToLower(filepath.Ext(a.path)) {
	case ".yaml", ".yml":
		flights, err = document.DecodeYAML(data)
	default:
		flights, err = document.DecodeJSON(data)
	}
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode %s: %w", a.path, err))
	}

	return flights, nil
}
