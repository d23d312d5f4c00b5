package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/mapview"
)

// RenderMap draws the map grid in a rounded box with the marker highlighted.
// The box adds one cell of border on each side and no padding.
func RenderMap(m *mapview.Map, focused bool) string {
	grid := strings.ReplaceAll(m.View(), "◉", markerStyle.Render("◉"))

	box := mapBoxStyle
	if focused {
		box = mapFocusedBoxStyle
	}
	return box.Render(grid)
}

// RenderMapFooter shows zoom, tile address and the provider attribution
func RenderMapFooter(m *mapview.Map) string {
	t := m.Tile()
	return lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(fmt.Sprintf("zoom %d • tile %d/%d/%d", m.Zoom(), t.Z, t.X, t.Y)),
		mutedStyle.Render(m.Attribution()),
	)
}
