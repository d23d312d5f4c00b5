// Package mapview is the terminal map: a Web Mercator viewport with a
// single draggable marker.
package mapview

import (
	"math"
	"strings"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

const (
	MinZoom = 1
	MaxZoom = 19

	// A terminal cell is treated as 8x16 screen pixels
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Map holds the viewport and the marker
type Map struct {
	center models.Coordinate
	zoom   int
	marker models.Coordinate
	width  int
	height int
	tiles  TileSource

	dragging bool
}

// New creates a map centered on center with the marker placed there too
func New(center models.Coordinate, zoom int, tiles TileSource) *Map {
	return &Map{
		center: center,
		zoom:   clampInt(zoom, MinZoom, MaxZoom),
		marker: center,
		width:  48,
		height: 16,
		tiles:  tiles,
	}
}

func (m *Map) Center() models.Coordinate { return m.center }
func (m *Map) Zoom() int                 { return m.zoom }
func (m *Map) Marker() models.Coordinate { return m.marker }
func (m *Map) Size() (int, int)          { return m.width, m.height }
func (m *Map) Dragging() bool            { return m.dragging }

// Resize sets the viewport size in cells
func (m *Map) Resize(width, height int) {
	if width < 8 {
		width = 8
	}
	if height < 4 {
		height = 4
	}
	m.width, m.height = width, height
}

// SetView re-centers the viewport
func (m *Map) SetView(center models.Coordinate, zoom int) {
	m.center = center
	m.zoom = clampInt(zoom, MinZoom, MaxZoom)
}

// SetMarker moves the marker without touching the viewport
func (m *Map) SetMarker(c models.Coordinate) {
	m.marker = c
}

// ZoomBy changes zoom around the current center
func (m *Map) ZoomBy(delta int) {
	m.zoom = clampInt(m.zoom+delta, MinZoom, MaxZoom)
}

// CoordAt converts a viewport cell to a coordinate
func (m *Map) CoordAt(col, row int) models.Coordinate {
	cx, cy := project(m.center, m.zoom)
	x := cx + (float64(col)-float64(m.width/2))*cellWidth
	y := cy + (float64(row)-float64(m.height/2))*cellHeight
	return unproject(x, y, m.zoom)
}

// CellOf converts a coordinate to a viewport cell; ok is false if it is off-screen
func (m *Map) CellOf(c models.Coordinate) (col, row int, ok bool) {
	cx, cy := project(m.center, m.zoom)
	x, y := project(c, m.zoom)
	col = int(math.Round((x-cx)/cellWidth)) + m.width/2
	row = int(math.Round((y-cy)/cellHeight)) + m.height/2
	ok = col >= 0 && col < m.width && row >= 0 && row < m.height
	return col, row, ok
}

// Click places the marker at the clicked cell and returns its coordinate.
// The viewport does not move.
func (m *Map) Click(col, row int) models.Coordinate {
	m.marker = m.CoordAt(col, row)
	return m.marker
}

// BeginDrag starts dragging if (col, row) is on or next to the marker
func (m *Map) BeginDrag(col, row int) bool {
	mc, mr, ok := m.CellOf(m.marker)
	if !ok {
		return false
	}
	if absInt(mc-col) <= 1 && absInt(mr-row) <= 1 {
		m.dragging = true
	}
	return m.dragging
}

// DragTo moves the marker while dragging
func (m *Map) DragTo(col, row int) {
	if !m.dragging {
		return
	}
	m.marker = m.CoordAt(col, row)
}

// EndDrag finishes a drag and reports the final marker position
func (m *Map) EndDrag(col, row int) (models.Coordinate, bool) {
	if !m.dragging {
		return models.Coordinate{}, false
	}
	m.marker = m.CoordAt(col, row)
	m.dragging = false
	return m.marker, true
}

// Nudge moves the marker by whole cells (keyboard drag)
func (m *Map) Nudge(dCol, dRow int) models.Coordinate {
	x, y := project(m.marker, m.zoom)
	m.marker = unproject(x+float64(dCol)*cellWidth, y+float64(dRow)*cellHeight, m.zoom)
	return m.marker
}

// Tile returns the tile under the marker at the current zoom
func (m *Map) Tile() Tile {
	return TileFor(m.marker, m.zoom)
}

// TileURL returns the provider URL of the tile under the marker
func (m *Map) TileURL() string {
	return m.tiles.URL(m.Tile())
}

// Attribution returns the tile provider's required attribution
func (m *Map) Attribution() string {
	return m.tiles.Attribution
}

// Grid renders the viewport as plain runes: graticule dots, a center
// crosshair and the marker.
func (m *Map) Grid() []string {
	mc, mr, markerVisible := m.CellOf(m.marker)

	rows := make([]string, m.height)
	for r := 0; r < m.height; r++ {
		var b strings.Builder
		for c := 0; c < m.width; c++ {
			switch {
			case markerVisible && c == mc && r == mr:
				b.WriteRune('◉')
			case c == m.width/2 && r == m.height/2:
				b.WriteRune('+')
			case r%4 == 0 && c%8 == 0:
				b.WriteRune('·')
			default:
				b.WriteRune(' ')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// View renders the grid as a single block
func (m *Map) View() string {
	return strings.Join(m.Grid(), "\n")
}
