package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	flighthttp "github.com/flight-search/flight-price-tracker/internal/adapter/http"
	"github.com/flight-search/flight-price-tracker/internal/domain"
	"github.com/flight-search/flight-price-tracker/internal/usecase"
)

const flightsJSON = `[
	{"id":1,"origin":"JFK","destination":"LAX","price":200},
	{"id":2,"origin":"JFK","destination":"SFO","price":350},
	{"id":3,"origin":"JFK","destination":"LAX","price":410}
]`

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "flights")
	assert.NotNil(t, root.RunE)

	flights, _, err := root.Find([]string{"flights"})
	require.NoError(t, err)
	for _, flag := range []string{"origin", "destination", "max-price"} {
		assert.NotNil(t, flights.Flags().Lookup(flag), flag)
	}
}

func TestRunFlights(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().Flights(gomock.Any()).Return([]domain.Flight{
		{ID: "1", Origin: "JFK", Destination: "LAX", Price: 200},
		{ID: "2", Origin: "JFK", Destination: "SFO", Price: 350},
		{ID: "3", Origin: "JFK", Destination: "LAX", Price: 410},
	}, nil)

	svc := usecase.NewFlightQueryService(provider, nil)
	var out bytes.Buffer

	err := runFlights(context.Background(), svc, flighthttp.ListFlightsRequest{
		Origin:      "JFK",
		Destination: "LAX",
		MaxPrice:    "300",
	}, &out)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","origin":"JFK","destination":"LAX","price":200}]`, out.String())
}

func TestRunFlights_InvalidMaxPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFlightProvider(ctrl)

	var out bytes.Buffer
	err := runFlights(context.Background(), usecase.NewFlightQueryService(provider, nil),
		flighthttp.ListFlightsRequest{MaxPrice: "cheap"}, &out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidFilterValue))
	assert.Empty(t, out.String())
}

func TestRunFlights_EmptyResultIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().Flights(gomock.Any()).Return(nil, nil)

	var out bytes.Buffer
	err := runFlights(context.Background(), usecase.NewFlightQueryService(provider, nil),
		flighthttp.ListFlightsRequest{}, &out)

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out.String())
}

func TestFlightsCmd_FileSource(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "flights.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(flightsJSON), 0o600))

	t.Setenv("FLIGHT_SOURCE", "file")
	t.Setenv("FLIGHT_DATA_PATH", dataPath)
	t.Setenv("STATIC_DIR", dir)
	t.Setenv("LOG_FORMAT", "json")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"flights", "--origin", "JFK", "--destination", "LAX"})

	require.NoError(t, root.Execute())
	assert.JSONEq(t, `[
		{"id":1,"origin":"JFK","destination":"LAX","price":200},
		{"id":3,"origin":"JFK","destination":"LAX","price":410}
	]`, stdout.String())
}
