package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/i474232898/bike-weather-regression/internal/logger"
)

type AppConfig struct {
	// Dataset locations: a local path or an http(s) URL.
	RentalsSource string
	WeatherSource string

	// HTTPTimeout bounds each request made by URL-backed sources.
	HTTPTimeout time.Duration

	// RefreshInterval re-reads both datasets periodically (0 = load once).
	RefreshInterval time.Duration

	ChartWidth  int
	ChartHeight int

	LogLevel string
	Port     string
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found or error loading it: %v", err)
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("rentals_source", "fietsdata2021_rentals_by_day.csv")
	v.SetDefault("weather_source", "weather_london.csv")
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("refresh_interval", "0")
	v.SetDefault("chart_width", 800)
	v.SetDefault("chart_height", 500)
	v.SetDefault("log_level", "info")
	v.SetDefault("port", "8080")
	return v
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{
		RentalsSource: strings.TrimSpace(v.GetString("rentals_source")),
		WeatherSource: strings.TrimSpace(v.GetString("weather_source")),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		Port:          v.GetString("port"),
		ChartWidth:    v.GetInt("chart_width"),
		ChartHeight:   v.GetInt("chart_height"),
	}

	if cfg.RentalsSource == "" || cfg.WeatherSource == "" {
		return nil, fmt.Errorf("RENTALS_SOURCE and WEATHER_SOURCE must not be empty")
	}

	timeout, err := parseDuration(v.GetString("http_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refresh, err := parseDuration(v.GetString("refresh_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	if refresh < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}
	cfg.RefreshInterval = refresh

	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return nil, fmt.Errorf("CHART_WIDTH and CHART_HEIGHT must be positive, got %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// parseDuration accepts Go durations and a bare "0".
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
