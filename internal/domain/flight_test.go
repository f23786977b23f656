package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlight_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   bool
		checkFunc func(*testing.T, Flight)
	}{
		{
			name:  "numeric id and price",
			input: `{"id":1,"origin":"JFK","destination":"LAX","price":200}`,
			checkFunc: func(t *testing.T, f Flight) {
				assert.Equal(t, json.Number("1"), f.ID)
				assert.Equal(t, "JFK", f.Origin)
				assert.Equal(t, "LAX", f.Destination)
				assert.Equal(t, 200.0, f.Price)
				assert.Nil(t, f.Extra)
			},
		},
		{
			name:  "string id with passthrough fields",
			input: `{"id":"AC-101","origin":"YYZ","destination":"YVR","price":412.5,"airline":"Air Canada","departure":"08:15"}`,
			checkFunc: func(t *testing.T, f Flight) {
				assert.Equal(t, "AC-101", f.ID)
				assert.Equal(t, 412.5, f.Price)
				assert.Equal(t, "Air Canada", f.Extra["airline"])
				assert.Equal(t, "08:15", f.Extra["departure"])
			},
		},
		{
			name:  "price as numeric string",
			input: `{"id":"x","origin":"A","destination":"B","price":"99.99"}`,
			checkFunc: func(t *testing.T, f Flight) {
				assert.Equal(t, 99.99, f.Price)
			},
		},
		{
			name:    "missing id",
			input:   `{"origin":"JFK","destination":"LAX","price":200}`,
			wantErr: true,
		},
		{
			name:    "missing origin",
			input:   `{"id":1,"destination":"LAX","price":200}`,
			wantErr: true,
		},
		{
			name:    "non-string destination",
			input:   `{"id":1,"origin":"JFK","destination":7,"price":200}`,
			wantErr: true,
		},
		{
			name:    "negative price",
			input:   `{"id":1,"origin":"JFK","destination":"LAX","price":-1}`,
			wantErr: true,
		},
		{
			name:    "non-numeric price",
			input:   `{"id":1,"origin":"JFK","destination":"LAX","price":"cheap"}`,
			wantErr: true,
		},
		{
			name:    "null record",
			input:   `null`,
			wantErr: true,
		},
		{
			name:    "not an object",
			input:   `[1,2]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flight
			err := json.Unmarshal([]byte(tt.input), &f)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedRecord))
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, f)
			}
		})
	}
}

func TestFlight_MarshalJSON_RoundTripsPassthroughFields(t *testing.T) {
	input := `{"id":2,"origin":"JFK","destination":"SFO","price":350,"airline":"Demo Air 1","stops":0}`

	var f Flight
	require.NoError(t, json.Unmarshal([]byte(input), &f))

	out, err := json.Marshal(f)
	require.NoError(t, err)

	assert.JSONEq(t, input, string(out))
}

func TestFlight_MarshalJSON_CoreFieldsWinOverExtra(t *testing.T) {
	f := Flight{
		ID:          "1",
		Origin:      "JFK",
		Destination: "LAX",
		Price:       200,
		Extra:       map[string]any{"price": 1, "carrier": "XY"},
	}

	out, err := json.Marshal(f)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"1","origin":"JFK","destination":"LAX","price":200,"carrier":"XY"}`, string(out))
}

func TestFlightFromMap_NumericDriverTypes(t *testing.T) {
	f, err := FlightFromMap(map[string]any{
		"id":          int64(42),
		"origin":      "YOW",
		"destination": "YUL",
		"price":       int32(150),
	})
	require.NoError(t, err)

	assert.Equal(t, json.Number("42"), f.ID)
	assert.Equal(t, 150.0, f.Price)
}

func TestFlight_MatchesRoute(t *testing.T) {
	f := Flight{Origin: "JFK", Destination: "LAX"}

	assert.True(t, f.MatchesRoute("JFK", "LAX"))
	assert.False(t, f.MatchesRoute("jfk", "LAX"), "route matching is case-sensitive")
	assert.False(t, f.MatchesRoute("LAX", "JFK"))
	assert.False(t, f.MatchesRoute("JFK", ""))
}
