package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/flood-terminal/internal/backend"
	"github.com/ngmaloney/flood-terminal/internal/geocoding"
	"github.com/ngmaloney/flood-terminal/internal/gps"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/regions"
)

const (
	geocodeTimeout = 10 * time.Second
	locateTimeout  = 15 * time.Second
	analyzeTimeout = 60 * time.Second
)

// Geocoder resolves a place name to a location
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocoding.Location, error)
}

// PlaceStore persists saved places
type PlaceStore interface {
	Save(place *models.Place) error
	List() ([]models.Place, error)
	Delete(name string) error
}

// RegionLocator names the region around a coordinate
type RegionLocator interface {
	Lookup(coord models.Coordinate) (*regions.Region, error)
}

// Message types for async operations

// geocodeMsg is sent when geocoding completes
type geocodeMsg struct {
	query    string
	location *geocoding.Location
	err      error
}

// gpsMsg is sent when the locator answers
type gpsMsg struct {
	coord models.Coordinate
	err   error
}

// predictMsg carries a forecast response
type predictMsg struct {
	generation int
	coord      models.Coordinate
	forecast   *models.Forecast
	err        error
}

// forensicMsg carries a realtime analysis response
type forensicMsg struct {
	generation int
	coord      models.Coordinate
	report     *models.ForensicReport
	err        error
}

type placesFetchedMsg struct {
	places []models.Place
	err    error
}

type placeSavedMsg struct {
	place *models.Place
	err   error
}

type placeDeletedMsg struct {
	name string
	err  error
}

// regionMsg labels the coordinate it was looked up for
type regionMsg struct {
	coord models.Coordinate
	name  string
	err   error
}

// geocodeLocation performs geocoding in the background
func geocodeLocation(geocoder Geocoder, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), geocodeTimeout)
		defer cancel()

		location, err := geocoder.Geocode(ctx, query)
		return geocodeMsg{query: query, location: location, err: err}
	}
}

// locateDevice asks the locator for the current position
func locateDevice(locator gps.Locator) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
		defer cancel()

		coord, err := locator.Locate(ctx)
		return gpsMsg{coord: coord, err: err}
	}
}

// fetchForecast posts the coordinate to the prediction backend. The response
// is tagged with generation so answers from before a mode switch can be dropped.
func fetchForecast(client backend.PredictClient, coord models.Coordinate, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		forecast, err := client.Predict(ctx, coord)
		return predictMsg{generation: generation, coord: coord, forecast: forecast, err: err}
	}
}

// fetchForensic posts the coordinate to the forensic backend
func fetchForensic(client backend.ForensicClient, coord models.Coordinate, generation int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		report, err := client.Analyze(ctx, coord)
		return forensicMsg{generation: generation, coord: coord, report: report, err: err}
	}
}

func fetchSavedPlaces(store PlaceStore) tea.Cmd {
	return func() tea.Msg {
		places, err := store.List()
		return placesFetchedMsg{places: places, err: err}
	}
}

func savePlace(store PlaceStore, name string, coord models.Coordinate) tea.Cmd {
	return func() tea.Msg {
		place := &models.Place{Name: name, Latitude: coord.Latitude, Longitude: coord.Longitude}
		err := store.Save(place)
		return placeSavedMsg{place: place, err: err}
	}
}

func deletePlace(store PlaceStore, name string) tea.Cmd {
	return func() tea.Msg {
		err := store.Delete(name)
		return placeDeletedMsg{name: name, err: err}
	}
}

// lookupRegion names the region under coord
func lookupRegion(locator RegionLocator, coord models.Coordinate) tea.Cmd {
	return func() tea.Msg {
		region, err := locator.Lookup(coord)
		if err != nil {
			return regionMsg{coord: coord, err: err}
		}
		return regionMsg{coord: coord, name: region.Name}
	}
}
