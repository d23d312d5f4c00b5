package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/flood-terminal/internal/backend"
	"github.com/ngmaloney/flood-terminal/internal/config"
	"github.com/ngmaloney/flood-terminal/internal/database"
	"github.com/ngmaloney/flood-terminal/internal/geocoding"
	"github.com/ngmaloney/flood-terminal/internal/gps"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
	"github.com/ngmaloney/flood-terminal/internal/places"
	"github.com/ngmaloney/flood-terminal/internal/regions"
	"github.com/ngmaloney/flood-terminal/internal/report"
	"github.com/ngmaloney/flood-terminal/internal/ui"
)

type flags struct {
	mode   string
	lat    string
	lon    string
	place  string
	report bool
}

func main() {
	var f flags
	flag.StringVar(&f.mode, "mode", "forecast", "Analysis mode: forecast (3-day prediction) or forensic (SAR audit)")
	flag.StringVar(&f.lat, "lat", "", "Latitude to select on start (requires --lon)")
	flag.StringVar(&f.lon, "lon", "", "Longitude to select on start (requires --lat)")
	flag.StringVar(&f.place, "place", "", "Name of a saved place to load directly")
	flag.BoolVar(&f.report, "report", false, "Print forecast and forensic results for the selected location and exit")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	mode, err := ui.ParseMode(f.mode)
	if err != nil {
		return err
	}
	if (f.lat == "") != (f.lon == "") {
		return errors.New("--lat and --lon must be given together")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := cfg.OpenLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics := observability.NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := observability.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	db, err := database.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()
	placeRepo := places.NewRepository(db)

	var regionIndex ui.RegionLocator
	if cfg.RegionsShapefile != "" {
		if err := regions.Provision(db, cfg.RegionsShapefile, logger); err != nil {
			logger.Warn("region lookup disabled", "error", err)
		} else {
			regionIndex = regions.NewIndex(db)
		}
	}

	start, err := startCoordinate(f, placeRepo)
	if err != nil {
		return err
	}

	predict := backend.NewPredictClient(cfg.PredictBaseURL, cfg.UserAgent, cfg.HTTPTimeout, metrics, logger)
	forensic := backend.NewForensicClient(cfg.ForensicBaseURL, cfg.UserAgent, cfg.HTTPTimeout, metrics, logger)

	if f.report {
		if start == nil {
			return errors.New("--report requires --lat/--lon or --place")
		}
		return report.NewRunner(predict, forensic, logger).Run(ctx, os.Stdout, *start)
	}

	locator, err := gps.NewLocator(cfg, metrics, logger)
	if err != nil {
		return err
	}

	m := ui.NewModel(ui.Options{
		Mode:     mode,
		Start:    start,
		Geocoder: geocoding.NewGeocoder(cfg.NominatimURL, cfg.UserAgent, cfg.HTTPTimeout, metrics, logger),
		Predict:  predict,
		Forensic: forensic,
		Locator:  locator,
		Places:   placeRepo,
		Regions:  regionIndex,
		Logger:   logger,
	})

	logger.Info("starting", "mode", mode.String())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// startCoordinate resolves --place or --lat/--lon; nil means none was given
func startCoordinate(f flags, repo *places.Repository) (*models.Coordinate, error) {
	if f.place != "" {
		place, err := repo.Get(f.place)
		if err != nil {
			return nil, err
		}
		c := place.Coordinate()
		return &c, nil
	}
	if f.lat == "" {
		return nil, nil
	}
	c, err := models.ParseCoordinate(f.lat, f.lon)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
