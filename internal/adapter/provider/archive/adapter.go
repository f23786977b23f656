// Package archive provides a flight data provider over the price tracker's
// search archive: one flight_prices_<From>_<To>.json file per route, each
// holding the history of searches for that route.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// ProviderName is the unique identifier for the archive provider.
const ProviderName = "archive"

// FilePattern matches route archive files inside the data directory.
const FilePattern = "flight_prices_*.json"

// routeSeparator joins the two cities in the "route" field, e.g. "Toronto to Vancouver".
const routeSeparator = " to "

// idNamespace seeds the deterministic IDs given to records that carry none.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("flight-price-tracker/archive"))

// routeFile is the on-disk archive layout.
type routeFile struct {
	Route    string         `json:"route"`
	Searches []searchResult `json:"searches"`
}

// searchResult is one recorded search within a route file.
type searchResult struct {
	SearchTimestamp string            `json:"search_timestamp"`
	Flights         []json.RawMessage `json:"flights"`
	TotalFound      int               `json:"total_flights_found"`
}

// Adapter flattens the latest search of every route file in a directory.
type Adapter struct {
	dir string
}

// NewAdapter creates an archive adapter over dir.
func NewAdapter(dir string) *Adapter {
	return &Adapter{dir: dir}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Flights implements domain.FlightProvider.
// Files are visited in name order and records keep their order within a search.
func (a *Adapter) Flights(ctx context.Context) ([]domain.Flight, error) {
	if _, err := os.Stat(a.dir); err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	paths, err := filepath.Glob(filepath.Join(a.dir, FilePattern))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	sort.Strings(paths)

	flights := make([]domain.Flight, 0)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewProviderError(ProviderName, err)
		}

		routeFlights, err := readRouteFile(path)
		if err != nil {
			return nil, domain.NewProviderError(ProviderName, err)
		}
		flights = append(flights, routeFlights...)
	}

	return flights, nil
}

// readRouteFile normalizes the latest search stored in path.
func readRouteFile(path string) ([]domain.Flight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rf routeFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedRecord, filepath.Base(path), err)
	}
	if len(rf.Searches) == 0 {
		return nil, nil
	}

	origin, destination, err := parseRoute(rf.Route, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	latest := rf.Searches[len(rf.Searches)-1]
	flights := make([]domain.Flight, 0, len(latest.Flights))
	for i, item := range latest.Flights {
		f, err := normalizeRecord(item, filepath.Base(path), i)
		if err != nil {
			return nil, err
		}
		f.Origin = origin
		f.Destination = destination
		if f.Extra == nil {
			f.Extra = make(map[string]any, 2)
		}
		f.Extra["route"] = rf.Route
		if latest.SearchTimestamp != "" {
			f.Extra["searchTimestamp"] = latest.SearchTimestamp
		}
		flights = append(flights, f)
	}

	return flights, nil
}

// normalizeRecord converts one archived record. The archive writes the route
// text into "destination", so only price and passthrough fields are taken from it.
func normalizeRecord(item json.RawMessage, fileName string, index int) (domain.Flight, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return domain.Flight{}, fmt.Errorf("%w: %s record %d is not an object", domain.ErrMalformedRecord, fileName, index)
	}

	price, err := domain.ParsePrice(raw[domain.FieldPrice])
	if err != nil {
		return domain.Flight{}, fmt.Errorf("%s record %d: %w", fileName, index, err)
	}

	f := domain.Flight{
		ID:    recordID(raw[domain.FieldID], fileName, index),
		Price: price,
	}
	for k, v := range raw {
		switch k {
		case domain.FieldID, domain.FieldPrice, domain.FieldOrigin, domain.FieldDestination:
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any, len(raw)+2)
		}
		f.Extra[k] = v
	}

	return f, nil
}

// recordID keeps an archived id when present, otherwise derives a stable UUID
// from the file name and position so repeated reads agree.
func recordID(v any, fileName string, index int) any {
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case json.Number:
		return id
	}
	return uuid.NewSHA1(idNamespace, []byte(fileName+"#"+strconv.Itoa(index))).String()
}

// parseRoute splits "Toronto to Vancouver". When the field is missing the
// cities are taken from the flight_prices_<From>_<To>.json file name.
func parseRoute(route, fileName string) (string, string, error) {
	if origin, destination, ok := strings.Cut(route, routeSeparator); ok {
		origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
		if origin != "" && destination != "" {
			return origin, destination, nil
		}
	}

	stem := strings.TrimSuffix(strings.TrimPrefix(fileName, "flight_prices_"), ".json")
	if origin, destination, ok := strings.Cut(stem, "_"); ok && origin != "" && destination != "" {
		return origin, destination, nil
	}

	return "", "", fmt.Errorf("%w: %s has no usable route", domain.ErrMalformedRecord, fileName)
}
