package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/ngmaloney/flood-terminal/internal/fixture"
	"github.com/ngmaloney/flood-terminal/internal/geocoding"
	"github.com/ngmaloney/flood-terminal/internal/gps"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
	"github.com/ngmaloney/flood-terminal/internal/ui"
)

// This demo runs the UI against the in-process fixture backend
func main() {
	modeFlag := flag.String("mode", "forensic", "forecast or forensic")
	flag.Parse()

	mode, err := ui.ParseMode(*modeFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	local := fixture.NewLocal(fixture.NewGenerator(clockwork.NewRealClock()))

	// Dayeuhkolot, a flood-prone district south of Bandung
	start := models.Coordinate{Latitude: -6.987, Longitude: 107.625}

	m := ui.NewModel(ui.Options{
		Mode:     mode,
		Start:    &start,
		Geocoder: geocoding.NewGeocoder(geocoding.DefaultNominatimURL, "FloodTerminalDemo/1.0", 10*time.Second, observability.NewUnregisteredMetrics(), logger),
		Predict:  local,
		Forensic: local,
		Locator:  gps.FixedLocator{Position: models.Coordinate{Latitude: -6.8915, Longitude: 107.6107}},
		Logger:   logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
