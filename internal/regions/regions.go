// Package regions labels coordinates with the administrative region that
// contains them, using boundary polygons stored in SQLite
package regions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

// ErrNotFound is returned when no stored polygon contains the point
var ErrNotFound = errors.New("no region contains point")

// Region is an administrative area with its distance from a looked-up point
type Region struct {
	Name      string
	CenterLat float64
	CenterLon float64
	Distance  float64 // km from the queried point to the region center
}

// ring is a closed sequence of [lon, lat] pairs
type ring [][]float64

// EnsureSchema creates the regions table if it does not exist
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS regions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			geometry TEXT NOT NULL,
			bbox_min_lat REAL NOT NULL,
			bbox_max_lat REAL NOT NULL,
			bbox_min_lon REAL NOT NULL,
			bbox_max_lon REAL NOT NULL,
			center_lat REAL NOT NULL,
			center_lon REAL NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_regions_bbox ON regions(
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon
		);
	`)
	if err != nil {
		return fmt.Errorf("creating regions table: %w", err)
	}
	return nil
}

// Index answers region lookups against one database
type Index struct {
	db *sql.DB
}

// NewIndex creates an index over the regions table in db
func NewIndex(db *sql.DB) *Index {
	return &Index{db: db}
}

// Lookup returns the region containing coord
func (i *Index) Lookup(coord models.Coordinate) (*Region, error) {
	return Lookup(i.db, coord)
}

// Count returns the number of stored regions
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM regions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting regions: %w", err)
	}
	return n, nil
}

// Lookup returns the region containing coord. When polygons overlap the
// one whose center is closest wins.
func Lookup(db *sql.DB, coord models.Coordinate) (*Region, error) {
	rows, err := db.Query(`
		SELECT name, geometry, center_lat, center_lon
		FROM regions
		WHERE ? BETWEEN bbox_min_lat AND bbox_max_lat
		  AND ? BETWEEN bbox_min_lon AND bbox_max_lon
	`, coord.Latitude, coord.Longitude)
	if err != nil {
		return nil, fmt.Errorf("querying regions: %w", err)
	}
	defer rows.Close()

	var matches []Region
	for rows.Next() {
		var name, geometry string
		var centerLat, centerLon float64
		if err := rows.Scan(&name, &geometry, &centerLat, &centerLon); err != nil {
			return nil, fmt.Errorf("scanning region: %w", err)
		}

		var rings []ring
		if err := json.Unmarshal([]byte(geometry), &rings); err != nil {
			return nil, fmt.Errorf("decoding geometry for %s: %w", name, err)
		}
		if !contains(rings, coord.Longitude, coord.Latitude) {
			continue
		}

		matches = append(matches, Region{
			Name:      name,
			CenterLat: centerLat,
			CenterLon: centerLon,
			Distance:  HaversineDistance(coord.Latitude, coord.Longitude, centerLat, centerLon),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating regions: %w", err)
	}

	if len(matches) == 0 {
		return nil, ErrNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return &matches[0], nil
}

// contains applies the even-odd rule across all rings, so inner rings
// punch holes in outer ones
func contains(rings []ring, x, y float64) bool {
	inside := false
	for _, r := range rings {
		n := len(r)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			xi, yi := r[i][0], r[i][1]
			xj, yj := r[j][0], r[j][1]
			if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}

// HaversineDistance calculates distance in kilometers between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
