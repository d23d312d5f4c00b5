package regions

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
)

// nameFields are attribute names checked, in order, for a region's label.
// They cover BIG (WADMKK, NAMOBJ) and GADM (NAME_2, NAME_1) exports.
var nameFields = []string{"WADMKK", "NAMOBJ", "NAME_2", "NAME_1", "NAME"}

// Provision imports the shapefile into the regions table unless regions are
// already present. An empty path disables the feature.
func Provision(db *sql.DB, shapefilePath string, logger *slog.Logger) error {
	if shapefilePath == "" {
		return nil
	}
	if err := EnsureSchema(db); err != nil {
		return err
	}

	n, err := Count(db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	logger.Info("regions table empty, importing shapefile", "path", shapefilePath)
	count, err := Import(db, shapefilePath, logger)
	if err != nil {
		return fmt.Errorf("importing regions: %w", err)
	}
	logger.Info("imported regions", "count", count)
	return nil
}

// Import reads polygons from a shapefile into the regions table and returns
// how many were stored
func Import(db *sql.DB, shapefilePath string, logger *slog.Logger) (int, error) {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return 0, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx := nameFieldIndex(shape.Fields())
	if nameIdx < 0 {
		return 0, fmt.Errorf("shapefile has none of the name fields %v", nameFields)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO regions (
			name, geometry,
			bbox_min_lat, bbox_max_lat, bbox_min_lon, bbox_max_lon,
			center_lat, center_lon
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for shape.Next() {
		n, p := shape.Shape()

		polygon, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}
		name := strings.TrimSpace(shape.ReadAttribute(n, nameIdx))

		geometryJSON, err := json.Marshal(polygonRings(polygon))
		if err != nil {
			logger.Warn("skipping region with bad geometry", "name", name, "error", err)
			continue
		}

		bbox := polygon.BBox()
		_, err = stmt.Exec(name, string(geometryJSON),
			bbox.MinY, bbox.MaxY, bbox.MinX, bbox.MaxX,
			(bbox.MinY+bbox.MaxY)/2, (bbox.MinX+bbox.MaxX)/2)
		if err != nil {
			return count, fmt.Errorf("inserting region %s: %w", name, err)
		}

		count++
		if count%100 == 0 {
			logger.Debug("importing regions", "processed", count)
		}
	}
	if err := shape.Err(); err != nil {
		return count, fmt.Errorf("reading shapefile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

func nameFieldIndex(fields []shp.Field) int {
	for _, want := range nameFields {
		for i, f := range fields {
			if strings.EqualFold(f.String(), want) {
				return i
			}
		}
	}
	return -1
}

// polygonRings splits a polygon's flat point list into its parts
func polygonRings(polygon *shp.Polygon) []ring {
	rings := make([]ring, 0, len(polygon.Parts))
	for partIdx := range polygon.Parts {
		start := int(polygon.Parts[partIdx])
		end := len(polygon.Points)
		if partIdx+1 < len(polygon.Parts) {
			end = int(polygon.Parts[partIdx+1])
		}

		r := make(ring, 0, end-start)
		for _, pt := range polygon.Points[start:end] {
			r = append(r, []float64{pt.X, pt.Y})
		}
		rings = append(rings, r)
	}
	return rings
}
