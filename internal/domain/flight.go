// Package domain contains the core entities and rules for the flight price tracker.
// These types are source-agnostic: every flight data provider normalizes into them.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Reserved record keys. Everything else is carried in Flight.Extra.
const (
	FieldID          = "id"
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldPrice       = "price"
)

// Flight is a single flight record as supplied by a provider.
// Records are read-only once retrieved.
type Flight struct {
	// ID is the provider's identifier, either a string or a json.Number.
	ID any

	// Origin is the departure location code (e.g. "JFK")
	Origin string

	// Destination is the arrival location code (e.g. "LAX")
	Destination string

	// Price is the fare, never negative
	Price float64

	// Extra holds passthrough fields such as airline or departure time.
	Extra map[string]any
}

// MatchesRoute reports whether the flight goes exactly from origin to destination.
// Comparison is case-sensitive.
func (f Flight) MatchesRoute(origin, destination string) bool {
	return f.Origin == origin && f.Destination == destination
}

// MarshalJSON emits the record as one flat object with passthrough fields at the top level.
func (f Flight) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+4)
	for k, v := range f.Extra {
		out[k] = v
	}
	out[FieldID] = f.ID
	out[FieldOrigin] = f.Origin
	out[FieldDestination] = f.Destination
	out[FieldPrice] = f.Price
	return json.Marshal(out)
}

// UnmarshalJSON decodes a flat record, keeping numbers exact in passthrough fields.
func (f *Flight) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: record is null", ErrMalformedRecord)
	}

	parsed, err := FlightFromMap(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FlightFromMap builds a Flight from a generic decoded document.
// Used by providers whose drivers decode into maps (YAML, BSON, JSON).
func FlightFromMap(raw map[string]any) (Flight, error) {
	var f Flight

	id, err := normalizeID(raw[FieldID])
	if err != nil {
		return Flight{}, err
	}
	f.ID = id

	if f.Origin, err = requiredString(raw, FieldOrigin); err != nil {
		return Flight{}, err
	}
	if f.Destination, err = requiredString(raw, FieldDestination); err != nil {
		return Flight{}, err
	}
	if f.Price, err = ParsePrice(raw[FieldPrice]); err != nil {
		return Flight{}, err
	}

	for k, v := range raw {
		switch k {
		case FieldID, FieldOrigin, FieldDestination, FieldPrice:
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any, len(raw))
		}
		f.Extra[k] = v
	}

	return f, nil
}

// ParsePrice converts a decoded price value into a non-negative float.
// Numeric strings are accepted since some stores keep fares as text.
func ParsePrice(v any) (float64, error) {
	var price float64

	switch p := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: price is required", ErrMalformedRecord)
	case float64:
		price = p
	case float32:
		price = float64(p)
	case int:
		price = float64(p)
	case int32:
		price = float64(p)
	case int64:
		price = float64(p)
	case uint64:
		price = float64(p)
	case json.Number:
		parsed, err := p.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: price %q is not a number", ErrMalformedRecord, p.String())
		}
		price = parsed
	case string:
		parsed, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: price %q is not a number", ErrMalformedRecord, p)
		}
		price = parsed
	default:
		return 0, fmt.Errorf("%w: price has unsupported type %T", ErrMalformedRecord, v)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: price must be finite", ErrMalformedRecord)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative, got %v", ErrMalformedRecord, price)
	}
	return price, nil
}

// normalizeID accepts string and numeric identifiers and keeps numbers as json.Number
// so they serialize back exactly as received.
func normalizeID(v any) (any, error) {
	switch id := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: id is required", ErrMalformedRecord)
	case string:
		if id == "" {
			return nil, fmt.Errorf("%w: id must not be empty", ErrMalformedRecord)
		}
		return id, nil
	case json.Number:
		return id, nil
	case float64:
		return json.Number(strconv.FormatFloat(id, 'f', -1, 64)), nil
	case int:
		return json.Number(strconv.Itoa(id)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(id), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(id, 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(id, 10)), nil
	case fmt.Stringer:
		// BSON ObjectIDs and similar driver types
		return id.String(), nil
	default:
		return nil, fmt.Errorf("%w: id has unsupported type %T", ErrMalformedRecord, v)
	}
}

func requiredString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s is required", ErrMalformedRecord, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrMalformedRecord, key, v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrMalformedRecord, key)
	}
	return s, nil
}
