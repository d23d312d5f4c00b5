package mapview

import (
	"math"
	"strconv"
	"strings"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

const tileSize = 256.0

// TileSource describes an XYZ tile provider.
// Tiles are addressed but never downloaded; the attribution is still shown.
type TileSource struct {
	URLTemplate string
	Attribution string
	Subdomains  []string
}

// CartoDark is the CartoDB dark basemap
var CartoDark = TileSource{
	URLTemplate: "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
	Attribution: "© OpenStreetMap, © CartoDB",
	Subdomains:  []string{"a", "b", "c", "d"},
}

// Tile is an XYZ tile address
type Tile struct {
	Z, X, Y int
}

// URL fills in the template for t
func (s TileSource) URL(t Tile) string {
	sub := ""
	if len(s.Subdomains) > 0 {
		sub = s.Subdomains[(t.X+t.Y)%len(s.Subdomains)]
	}
	r := strings.NewReplacer(
		"{s}", sub,
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
		"{r}", "",
	)
	return r.Replace(s.URLTemplate)
}

// maxLatitude is the Web Mercator latitude limit
const maxLatitude = 85.05112878

// project converts a coordinate to world pixel space at zoom
func project(c models.Coordinate, zoom int) (x, y float64) {
	scale := tileSize * math.Exp2(float64(zoom))
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, c.Latitude))
	sin := math.Sin(lat * math.Pi / 180)

	x = (c.Longitude + 180) / 360 * scale
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * scale
	return x, y
}

// unproject converts world pixel space back to a coordinate
func unproject(x, y float64, zoom int) models.Coordinate {
	scale := tileSize * math.Exp2(float64(zoom))
	lon := x/scale*360 - 180
	n := math.Pi - 2*math.Pi*y/scale
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return models.Coordinate{Latitude: lat, Longitude: lon}
}

// TileFor returns the tile containing c at zoom
func TileFor(c models.Coordinate, zoom int) Tile {
	x, y := project(c, zoom)
	n := int(math.Exp2(float64(zoom)))
	tx := clampInt(int(math.Floor(x/tileSize)), 0, n-1)
	ty := clampInt(int(math.Floor(y/tileSize)), 0, n-1)
	return Tile{Z: zoom, X: tx, Y: ty}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
