package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

// Card is one forecast day prepared for display
type Card struct {
	Label        string
	Date         string
	FloodRisk    float64
	Status       string
	Level        models.Level
	SoilMoisture float64
	RainMM       float64
}

// ForecastCards builds exactly one card per forecast day, in order
func ForecastCards(f *models.Forecast) []Card {
	if f == nil {
		return nil
	}
	cards := make([]Card, len(f.Days))
	for i, day := range f.Days {
		cards[i] = Card{
			Label:        models.DayLabel(i, day.DayName),
			Date:         day.Date,
			FloodRisk:    day.FloodRisk,
			Status:       day.Status,
			Level:        models.CSSClassLevel(day.CSSClass),
			SoilMoisture: day.SoilMoisture,
			RainMM:       day.RainMM,
		}
	}
	return cards
}

// RenderCard draws a single forecast card
func RenderCard(c Card) string {
	color := LevelColor(c.Level)

	lines := []string{
		mutedStyle.Render(fmt.Sprintf("%s (%s)", c.Label, c.Date)),
		"",
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(formatNumber(c.FloodRisk) + "%"),
		lipgloss.NewStyle().Bold(true).Render(c.Status),
		"",
		detailStyle.Render(fmt.Sprintf("💧 Tanah: %s\n🌧️ Hujan: %s mm",
			formatNumber(c.SoilMoisture), formatNumber(c.RainMM))),
	}

	return cardStyle.BorderForeground(color).Render(strings.Join(lines, "\n"))
}

// RenderForecast draws the meta header, the region status and all cards.
// Cards wrap onto new rows when they do not fit in width.
func RenderForecast(f *models.Forecast, width int) string {
	if f == nil {
		return mutedStyle.Render("Belum ada data prediksi")
	}

	var sections []string

	meta := []string{
		labelStyle.Render("Tanggal Satelit: ") + f.Meta.SatelliteDate,
		labelStyle.Render("Sumber Data: ") + f.Meta.DataSource,
	}
	if f.Meta.GapNote != "" {
		meta = append(meta, lipgloss.NewStyle().Foreground(colorWarning).Render(f.Meta.GapNote))
	}
	sections = append(sections, strings.Join(meta, "\n"), "")

	statusColor := LevelColor(models.CSSClassLevel(globalStatusClass(f.GlobalStatus)))
	sections = append(sections,
		lipgloss.NewStyle().Bold(true).Foreground(statusColor).Render("STATUS WILAYAH: "+f.GlobalStatus),
		"",
	)

	cards := ForecastCards(f)
	if len(cards) == 0 {
		sections = append(sections, mutedStyle.Render("Tidak ada data harian"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	perRow := 1
	if w := lipgloss.Width(RenderCard(cards[0])); w > 0 && width > w {
		perRow = width / w
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, RenderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	sections = append(sections, rows...)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// globalStatusClass maps the backend's region status words onto card classes
func globalStatusClass(status string) string {
	switch strings.ToUpper(status) {
	case "BAHAYA":
		return "danger"
	case "SIAGA":
		return "warning"
	default:
		return "safe"
	}
}

// formatNumber prints a float the shortest way that round-trips
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
