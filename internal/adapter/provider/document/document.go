// Package document decodes flight record documents shared by several providers.
//
// Two document shapes are accepted: a bare list of records, or an object
// wrapping the list under "flights". Firebase-style keyed objects are handled
// by DecodeKeyedJSON.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

// envelope is the wrapped document shape.
type envelope struct {
	Flights *[]domain.Flight `json:"flights"`
}

// DecodeJSON decodes a list of records or a {"flights": [...]} object.
func DecodeJSON(data []byte) ([]domain.Flight, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrMalformedRecord)
	}

	switch trimmed[0] {
	case '[':
		var flights []domain.Flight
		if err := json.Unmarshal(trimmed, &flights); err != nil {
			return nil, wrapDecodeError(err)
		}
		return nonNil(flights), nil
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, wrapDecodeError(err)
		}
		if env.Flights == nil {
			return nil, fmt.Errorf("%w: document has no flights list", domain.ErrMalformedRecord)
		}
		return nonNil(*env.Flights), nil
	default:
		return nil, fmt.Errorf("%w: document must be a list or an object", domain.ErrMalformedRecord)
	}
}

// DecodeYAML accepts the same two shapes as DecodeJSON written in YAML.
func DecodeYAML(data []byte) ([]domain.Flight, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}

	var items []any
	switch v := doc.(type) {
	case []any:
		items = v
	case map[string]any:
		list, ok := v["flights"].([]any)
		if !ok {
			return nil, fmt.Errorf("%w: document has no flights list", domain.ErrMalformedRecord)
		}
		items = list
	default:
		return nil, fmt.Errorf("%w: document must be a list or a mapping", domain.ErrMalformedRecord)
	}

	return FromMaps(items)
}

// FromMaps converts generically decoded records into flights.
func FromMaps(items []any) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0, len(items))
	for i, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is %T, not an object", domain.ErrMalformedRecord, i, item)
		}
		f, err := domain.FlightFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

// DecodeKeyedJSON decodes a realtime-database style document. It accepts
// null (no data), a list whose null holes are skipped, a {"flights": ...}
// wrapper around either form, or an object of records keyed by push ID.
// Keyed records are returned in key order, which is insertion order for push IDs,
// and a record without an id takes its key.
func DecodeKeyedJSON(data []byte) ([]domain.Flight, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []domain.Flight{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, wrapDecodeError(err)
		}
		flights := make([]domain.Flight, 0, len(items))
		for i, item := range items {
			if isNull(item) {
				continue
			}
			var f domain.Flight
			if err := json.Unmarshal(item, &f); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			flights = append(flights, f)
		}
		return flights, nil
	case '{':
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, wrapDecodeError(err)
		}
		if inner, ok := keyed["flights"]; ok && len(keyed) == 1 {
			return DecodeKeyedJSON(inner)
		}
		return decodeKeyed(keyed)
	default:
		return nil, fmt.Errorf("%w: document must be a list or an object", domain.ErrMalformedRecord)
	}
}

func decodeKeyed(keyed map[string]json.RawMessage) ([]domain.Flight, error) {
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flights := make([]domain.Flight, 0, len(keys))
	for _, key := range keys {
		item := keyed[key]
		if isNull(item) {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("record %q: %w", key, wrapDecodeError(err))
		}
		if _, ok := raw[domain.FieldID]; !ok {
			raw[domain.FieldID] = key
		}

		f, err := domain.FlightFromMap(raw)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", key, err)
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func nonNil(flights []domain.Flight) []domain.Flight {
	if flights == nil {
		return []domain.Flight{}
	}
	return flights
}

// wrapDecodeError keeps errors already classified as malformed and
// classifies syntax errors.
func wrapDecodeError(err error) error {
	if errors.Is(err, domain.ErrMalformedRecord) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
}
