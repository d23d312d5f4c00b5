package regions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/ngmaloney/flood-terminal/internal/database"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, EnsureSchema(db))
	return db
}

func square(minLon, minLat, maxLon, maxLat float64) ring {
	return ring{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}
}

func insertRegion(t *testing.T, db *sql.DB, name string, rings ...ring) {
	t.Helper()
	geometry, err := json.Marshal(rings)
	require.NoError(t, err)

	outer := rings[0]
	minLon, minLat, maxLon, maxLat := outer[0][0], outer[0][1], outer[2][0], outer[2][1]
	_, err = db.Exec(`
		INSERT INTO regions (name, geometry, bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon, center_lat, center_lon)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, name, string(geometry), minLat, maxLat, minLon, maxLon, (minLat+maxLat)/2, (minLon+maxLon)/2)
	require.NoError(t, err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookup(t *testing.T) {
	db := testDB(t)
	insertRegion(t, db, "Kota Bandung", square(107.55, -6.98, 107.75, -6.85))
	insertRegion(t, db, "Kabupaten Bandung", square(107.25, -7.30, 107.95, -6.80), square(107.55, -6.98, 107.75, -6.85))

	tests := []struct {
		name  string
		coord models.Coordinate
		want  string
	}{
		{"inside city", models.Coordinate{Latitude: -6.9175, Longitude: 107.6191}, "Kota Bandung"},
		{"regency outside city hole", models.Coordinate{Latitude: -7.0, Longitude: 107.6}, "Kabupaten Bandung"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := Lookup(db, tt.coord)
			require.NoError(t, err)
			assert.Equal(t, tt.want, region.Name)
		})
	}
}

func TestLookup_NotFound(t *testing.T) {
	db := testDB(t)
	insertRegion(t, db, "Kota Bandung", square(107.55, -6.98, 107.75, -6.85))

	_, err := Lookup(db, models.Coordinate{Latitude: -6.2, Longitude: 106.8})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestContains_Triangle(t *testing.T) {
	tri := []ring{{{0, 0}, {10, 0}, {0, 10}, {0, 0}}}

	assert.True(t, contains(tri, 2, 2))
	assert.False(t, contains(tri, 8, 8))
	assert.False(t, contains(tri, -1, 5))
}

func TestHaversineDistance(t *testing.T) {
	// Bandung to Jakarta is roughly 120 km in a straight line
	d := HaversineDistance(-6.9175, 107.6191, -6.2088, 106.8456)
	assert.InDelta(t, 116, d, 10)
	assert.Zero(t, HaversineDistance(1, 2, 1, 2))
}

func writeShapefile(t *testing.T, path string) {
	t.Helper()
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAMOBJ", 50)}))

	parts := [][]shp.Point{{
		{X: 107.55, Y: -6.98}, {X: 107.55, Y: -6.85}, {X: 107.75, Y: -6.85}, {X: 107.75, Y: -6.98}, {X: 107.55, Y: -6.98},
	}}
	polygon := shp.Polygon(*shp.NewPolyLine(parts))
	w.Write(&polygon)
	require.NoError(t, w.WriteAttribute(0, 0, "Kota Bandung"))
	w.Close()
}

func TestProvision_ImportsShapefileOnce(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "regions.shp")
	writeShapefile(t, path)

	require.NoError(t, Provision(db, path, discardLogger()))
	require.NoError(t, Provision(db, path, discardLogger()))

	n, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	region, err := Lookup(db, models.Coordinate{Latitude: -6.9, Longitude: 107.6})
	require.NoError(t, err)
	assert.Equal(t, "Kota Bandung", region.Name)
}

func TestProvision_EmptyPathDisabled(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Provision(db, "", discardLogger()))

	var tables int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='regions'").Scan(&tables))
	assert.Zero(t, tables)
}

func TestIndex_Lookup(t *testing.T) {
	db := testDB(t)
	insertRegion(t, db, "Kota Cimahi", square(107.50, -6.93, 107.58, -6.84))

	region, err := NewIndex(db).Lookup(models.Coordinate{Latitude: -6.88, Longitude: 107.54})
	require.NoError(t, err)
	assert.Equal(t, "Kota Cimahi", region.Name)
	assert.Less(t, region.Distance, 5.0)
}
