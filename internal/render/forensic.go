package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

// Dashboard is a forensic report prepared for display
type Dashboard struct {
	Saturation       string
	SaturationPct    float64
	SaturationLevel  models.Level
	Status           string
	StatusLevel      models.Level
	PredictionWindow string
	Blink            bool
	Details          string
}

// NewDashboard maps a forensic report onto dashboard fields and colors
func NewDashboard(r *models.ForensicReport) Dashboard {
	pct, _ := r.SaturationPercent()
	status := r.StatusLevel()

	return Dashboard{
		Saturation:       r.Hydrology.Saturation,
		SaturationPct:    pct,
		SaturationLevel:  models.ThresholdLevel(pct),
		Status:           r.Result.Status,
		StatusLevel:      status,
		PredictionWindow: r.Result.PredictionWindow,
		Blink:            status == models.LevelCritical,
		Details: fmt.Sprintf("Curah Hujan: %s\nRekomendasi: %s",
			r.Hydrology.WeatherForecast, r.Result.Recommendation),
	}
}

// ProgressBar draws a bar filled to pct percent (clamped to 0-100)
func ProgressBar(pct float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	pct = math.Max(0, math.Min(100, pct))
	filled := int(math.Round(pct / 100 * float64(width)))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// RenderDashboard draws the sponge-effect bar, prediction window and status box
func RenderDashboard(d Dashboard, width int) string {
	barWidth := width - 4
	if barWidth < 10 {
		barWidth = 10
	}

	statusColor := LevelColor(d.StatusLevel)

	windowStyle := lipgloss.NewStyle().Bold(true).Foreground(statusColor).Blink(d.Blink)

	sections := []string{
		labelStyle.Render("SPONGE EFFECT (KEJENUHAN TANAH)"),
		lipgloss.NewStyle().Bold(true).Render(d.Saturation),
		ProgressBar(d.SaturationPct, barWidth, LevelColor(d.SaturationLevel)),
		"",
		labelStyle.Render("PREDIKSI WAKTU"),
		windowStyle.Render(d.PredictionWindow),
		"",
		statusBoxStyle.BorderForeground(statusColor).Render(
			lipgloss.NewStyle().Bold(true).Foreground(statusColor).Render(d.Status) + "\n" +
				lipgloss.NewStyle().Width(barWidth).Render(d.Details),
		),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
