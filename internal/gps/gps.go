// Package gps resolves the device's current position.
package gps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ngmaloney/flood-terminal/internal/config"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
)

var (
	// ErrUnsupported means no location source is available on this device
	ErrUnsupported = errors.New("location not supported")

	// ErrDenied means the location source refused or failed to answer
	ErrDenied = errors.New("location unavailable")
)

// Locator returns the current device position
type Locator interface {
	Locate(ctx context.Context) (models.Coordinate, error)
}

// NoneLocator is used when no location provider is configured
type NoneLocator struct{}

// Locate always reports that location is unsupported
func (NoneLocator) Locate(context.Context) (models.Coordinate, error) {
	return models.Coordinate{}, ErrUnsupported
}

// FixedLocator returns a configured position, e.g. a stationary workstation
type FixedLocator struct {
	Position models.Coordinate
}

// Locate returns the fixed position
func (l FixedLocator) Locate(context.Context) (models.Coordinate, error) {
	return l.Position, nil
}

// instrumented wraps a Locator with metrics and logging
type instrumented struct {
	provider string
	inner    Locator
	metrics  *observability.Metrics
	logger   *slog.Logger
}

func (l *instrumented) Locate(ctx context.Context) (models.Coordinate, error) {
	coord, err := l.inner.Locate(ctx)
	switch {
	case errors.Is(err, ErrUnsupported):
		l.metrics.GPSRequests.WithLabelValues(l.provider, "unsupported").Inc()
		l.logger.Warn("location not supported", "provider", l.provider)
	case err != nil:
		l.metrics.GPSRequests.WithLabelValues(l.provider, "error").Inc()
		l.logger.Error("location request failed", "provider", l.provider, "error", err)
	default:
		l.metrics.GPSRequests.WithLabelValues(l.provider, "success").Inc()
	}
	return coord, err
}

// NewLocator builds the Locator selected by cfg.GPSProvider
func NewLocator(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (Locator, error) {
	var inner Locator
	switch cfg.GPSProvider {
	case config.GPSNone, "":
		inner = NoneLocator{}
	case config.GPSFixed:
		inner = FixedLocator{Position: models.Coordinate{Latitude: cfg.GPSLat, Longitude: cfg.GPSLon}}
	case config.GPSIPAPI:
		inner = NewIPLocator(cfg.IPAPIURL, cfg.UserAgent, timeoutOrDefault(cfg.HTTPTimeout))
	default:
		return nil, fmt.Errorf("unknown GPS provider %q", cfg.GPSProvider)
	}

	return &instrumented{
		provider: cfg.GPSProvider,
		inner:    inner,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 10 * time.Second
	}
	return d
}
