// Package config loads flood-terminal settings from the environment.
//
// Loading order: .env file via godotenv (non-fatal if absent), then envconfig
// struct tags, then validator struct validation. Real environment variables
// win over .env values.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// GPS provider names
const (
	GPSNone  = "none"
	GPSFixed = "fixed"
	GPSIPAPI = "ipapi"
)

// Config holds all settings for the terminal and its backends
type Config struct {
	PredictBaseURL  string        `envconfig:"PREDICT_BASE_URL" default:"http://127.0.0.1:8000" validate:"required,url"`
	ForensicBaseURL string        `envconfig:"FORENSIC_BASE_URL" default:"http://127.0.0.1:8000" validate:"required,url"`
	NominatimURL    string        `envconfig:"NOMINATIM_URL" default:"https://nominatim.openstreetmap.org/search" validate:"required,url"`
	UserAgent       string        `envconfig:"USER_AGENT" default:"FloodTerminal/1.0" validate:"required"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`

	GPSProvider string  `envconfig:"GPS_PROVIDER" default:"none" validate:"oneof=none fixed ipapi"`
	GPSLat      float64 `envconfig:"GPS_LAT" validate:"gte=-90,lte=90"`
	GPSLon      float64 `envconfig:"GPS_LON" validate:"gte=-180,lte=180"`
	IPAPIURL    string  `envconfig:"IPAPI_URL" default:"http://ip-api.com/json" validate:"required,url"`

	DataDir          string `envconfig:"DATA_DIR" default:"data" validate:"required"`
	RegionsShapefile string `envconfig:"REGIONS_SHAPEFILE"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogFile   string `envconfig:"LOG_FILE"`

	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// Load reads configuration from .env and the process environment
func Load() (*Config, error) {
	// Missing .env is fine; it never overrides real environment variables.
	_ = godotenv.Load()
	return load()
}

func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// DBPath returns the sqlite database location inside the data directory
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "flood-terminal.db")
}

// LogPath returns where logs are written; stdout belongs to the TUI
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "flood-terminal.log")
}

// NewLogger creates a slog.Logger writing to w at the configured level and format
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// OpenLogFile opens (creating if needed) the log file for appending
func (c *Config) OpenLogFile() (*os.File, error) {
	path := c.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
