package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flight-search/flight-price-tracker/internal/app"
	"github.com/flight-search/flight-price-tracker/internal/config"
)

// flight-tracker serve: run the HTTP server until SIGINT or SIGTERM.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			l := setupLogger(cfg, os.Stdout)

			l.Info().
				Str("env", cfg.App.Env).
				Int("port", cfg.Server.Port).
				Str("source", cfg.Flights.Source).
				Msg("Configuration loaded")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, l)
			if err != nil {
				l.Error().Err(err).Msg("Failed to start")
				return err
			}
			return a.Run(ctx)
		},
	}
}
