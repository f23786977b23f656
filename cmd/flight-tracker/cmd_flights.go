package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	flighthttp "github.com/flight-search/flight-price-tracker/internal/adapter/http"
	"github.com/flight-search/flight-price-tracker/internal/app"
	"github.com/flight-search/flight-price-tracker/internal/config"
	"github.com/flight-search/flight-price-tracker/internal/usecase"
)

// flight-tracker flights: run one listing query and print the JSON array.
func newFlightsCmd() *cobra.Command {
	var req flighthttp.ListFlightsRequest

	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Print flights from the configured source as JSON",
		Example: "  flight-tracker flights --origin JFK --destination LAX\n" +
			"  flight-tracker flights --max-price 300",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// stdout carries the result
			setupLogger(cfg, cmd.ErrOrStderr())

			provider, err := app.NewProvider(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("create %s provider: %w", cfg.Flights.Source, err)
			}
			defer app.CloseProvider(provider)

			svc := usecase.NewFlightQueryService(provider, nil)
			return runFlights(cmd.Context(), svc, req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&req.Origin, "origin", "", "departure location code")
	cmd.Flags().StringVar(&req.Destination, "destination", "", "arrival location code")
	cmd.Flags().StringVar(&req.MaxPrice, "max-price", "", "inclusive upper price bound")
	return cmd
}

// runFlights validates req, runs the listing, and writes indented JSON to w.
func runFlights(ctx context.Context, svc usecase.FlightQueryService, req flighthttp.ListFlightsRequest, w io.Writer) error {
	q, err := req.ToQuery()
	if err != nil {
		return err
	}

	flights, err := usecase.ListFlights(ctx, svc, q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(flights)
}
