// Package main is the entry point for the flight price tracker.
//
//	@title						Flight Price Tracker API
//	@version					1.0.0
//	@description				Lists tracked flights with optional route and maximum price filters, and serves the web client.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/flight-search/flight-price-tracker/internal/config"
	"github.com/flight-search/flight-price-tracker/internal/infrastructure/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "flight-tracker",
		Short: "Flight price tracker server and query tool",
		Long: "Serves the flight listing API and web client, or queries the configured " +
			"flight data source once from the command line. Settings come from the environment and .env.",
		SilenceUsage: true,
		// no subcommand means serve
		RunE: serve.RunE,
	}
	root.AddCommand(serve)
	root.AddCommand(newFlightsCmd())
	return root
}

// setupLogger builds the process logger from config and installs it as the
// zerolog global so package-level log calls share format and level.
func setupLogger(cfg *config.Config, out io.Writer) *logger.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	l := logger.NewWithOutput(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		NoColor: !cfg.IsDevelopment(),
	}, out)
	log.Logger = l.Logger
	return l
}
