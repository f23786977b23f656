package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-price-tracker/internal/domain"
)

func TestAdapter_Name(t *testing.T) {
	assert.Equal(t, "http", NewAdapter("", nil).Name())
}

func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.FlightProvider = (*Adapter)(nil)
}

func TestAdapter_Flights(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantFlights int
		wantErr     bool
	}{
		{
			name:        "array document",
			status:      http.StatusOK,
			body:        `[{"id":1,"origin":"JFK","destination":"LAX","price":200},{"id":2,"origin":"JFK","destination":"SFO","price":350}]`,
			wantFlights: 2,
		},
		{
			name:        "firebase keyed document",
			status:      http.StatusOK,
			body:        `{"-Na":{"origin":"YYZ","destination":"YVR","price":384}}`,
			wantFlights: 1,
		},
		{
			name:        "empty database",
			status:      http.StatusOK,
			body:        `null`,
			wantFlights: 0,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":"boom"}`,
			wantErr: true,
		},
		{
			name:    "permission denied",
			status:  http.StatusUnauthorized,
			body:    `{"error":"Permission denied"}`,
			wantErr: true,
		},
		{
			name:    "unusable payload",
			status:  http.StatusOK,
			body:    `"hello"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/flights.json", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			flights, err := NewAdapter(srv.URL+"/flights.json", srv.Client()).Flights(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
				return
			}

			require.NoError(t, err)
			assert.Len(t, flights, tt.wantFlights)
		})
	}
}

func TestAdapter_Flights_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewAdapter(url, nil).Flights(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestAdapter_Flights_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter(srv.URL, srv.Client()).Flights(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}
