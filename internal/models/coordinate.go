package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinate is a selected point on the map
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// ParseCoordinate parses latitude/longitude text fields.
// Values must be finite numbers; they are not range-checked.
func ParseCoordinate(lat, lon string) (Coordinate, error) {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return Coordinate{}, fmt.Errorf("latitude and longitude are required")
	}

	latVal, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parsing latitude: %w", err)
	}
	lonVal, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("parsing longitude: %w", err)
	}
	if !finite(latVal) || !finite(lonVal) {
		return Coordinate{}, fmt.Errorf("coordinate %q, %q is not a finite number", lat, lon)
	}

	return Coordinate{Latitude: latVal, Longitude: lonVal}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatLat returns the latitude as shown in the input fields (6 decimals)
func (c Coordinate) FormatLat() string {
	return strconv.FormatFloat(c.Latitude, 'f', 6, 64)
}

// FormatLon returns the longitude as shown in the input fields (6 decimals)
func (c Coordinate) FormatLon() string {
	return strconv.FormatFloat(c.Longitude, 'f', 6, 64)
}

func (c Coordinate) String() string {
	return c.FormatLat() + ", " + c.FormatLon()
}
