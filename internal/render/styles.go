package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

var (
	colorCritical = lipgloss.Color("#FF4444")
	colorWarning  = lipgloss.Color("#FFBB33")
	colorSafe     = lipgloss.Color("#00FF88")
	colorMuted    = lipgloss.Color("#94A3B8")
	colorPanel    = lipgloss.Color("#334155")
	colorBorder   = lipgloss.Color("#4A90E2")

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1).
			Width(24)

	detailStyle = lipgloss.NewStyle().
			Background(colorPanel).
			Padding(0, 1).
			Width(20)

	statusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			PaddingLeft(1)

	mapBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	mapFocusedBoxStyle = mapBoxStyle.
				BorderForeground(colorSafe)

	markerStyle = lipgloss.NewStyle().
			Foreground(colorCritical).
			Bold(true)
)

// LevelColor returns the display color for a severity level
func LevelColor(l models.Level) lipgloss.Color {
	switch l {
	case models.LevelCritical:
		return colorCritical
	case models.LevelWarning:
		return colorWarning
	default:
		return colorSafe
	}
}
