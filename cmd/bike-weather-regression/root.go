package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/bike-weather-regression/internal/analysis"
	"github.com/i474232898/bike-weather-regression/internal/config"
	"github.com/i474232898/bike-weather-regression/internal/dataset/sources"
	"github.com/i474232898/bike-weather-regression/internal/logger"
	"github.com/i474232898/bike-weather-regression/internal/render"
	"github.com/i474232898/bike-weather-regression/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bike-weather-regression",
	Short: "Regress daily bike rentals on a weather factor",
	Long: `bike-weather-regression joins daily bike rental counts with daily weather
observations and fits rentals against one weather factor (average, minimum or
maximum temperature, or precipitation). Without a subcommand it serves the
interactive page.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, plotCmd)
}

// bootstrap loads config, sets up logging and performs the startup load.
// A load failure is fatal for the session.
func bootstrap(ctx context.Context) (*config.AppConfig, *analysis.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	// Shared HTTP client for URL-backed datasets.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	service := analysis.NewService(
		store.NewMemoryStore(),
		sources.FromLocation(cfg.RentalsSource, httpClient),
		sources.FromLocation(cfg.WeatherSource, httpClient),
		render.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
	)

	if err := service.Reload(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	return cfg, service, nil
}
