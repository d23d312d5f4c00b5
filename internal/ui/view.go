package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/render"
)

// View renders the UI
func (m Model) View() string {
	switch m.state {
	case StateAlert:
		return m.viewAlert()
	case StatePlaces:
		return m.viewPlaces()
	default:
		return m.viewMain()
	}
}

func (m Model) header() (string, string) {
	if m.mode == ModeForensic {
		return titleStyle.Render("🛰️  ECOFORENSICS • Audit Forensik SAR"),
			mutedStyle.Render("Sponge effect & prediksi waktu banjir realtime")
	}
	return titleStyle.Render("🌊 FLOOD TERMINAL • Prediksi Banjir 3 Hari"),
		mutedStyle.Render("Sentinel-1 soil moisture + curah hujan")
}

// viewMain renders the map with the input panel beside it and results below.
// The first three lines are fixed so mouse events can be mapped onto the grid.
func (m Model) viewMain() string {
	title, subtitle := m.header()

	mapPanel := lipgloss.JoinVertical(lipgloss.Left,
		render.RenderMap(m.mapView, m.focus == FocusMap),
		render.RenderMapFooter(m.mapView),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, mapPanel, m.viewSidePanel())

	sections := []string{title, subtitle, "", body}

	if m.state == StateLoading {
		sections = append(sections, "", fmt.Sprintf("%s %s", m.spinner.View(), m.analyzeLabel))
	}
	if m.showResults {
		sections = append(sections, "", m.viewResults())
	}

	help := "tab: pindah fokus • enter: cari/analisis • ctrl+l: GPS • ctrl+t: ganti mode • ctrl+s: simpan • ctrl+o: tersimpan • ctrl+c: keluar"
	if m.showResults {
		help += " • esc: tutup hasil"
	}
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) fieldLabel(f Focus, text string) string {
	if m.focus == f {
		return focusedFieldStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func button(label string, busy bool) string {
	if busy {
		return busyButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) viewSidePanel() string {
	analyzeDisabled := m.mode == ModeForensic && m.analyzing > 0

	lines := []string{
		m.fieldLabel(FocusSearch, "CARI LOKASI"),
		m.searchInput.View() + " " + button(m.searchLabel, m.searching),
		"",
		m.fieldLabel(FocusLat, "LAT ") + m.latInput.View(),
		m.fieldLabel(FocusLon, "LON ") + m.lonInput.View(),
		"",
		button(m.locateLabel, m.locating) + mutedStyle.Render(" lokasi saya (ctrl+l)"),
		"",
		button(m.analyzeLabel, analyzeDisabled),
	}

	if m.region != "" {
		lines = append(lines, "", labelStyle.Render("WILAYAH ")+m.region)
	}
	if m.status != "" {
		lines = append(lines, "", successStyle.Render(m.status))
	}

	return panelStyle.Width(sidePanelWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewResults() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	if m.mode == ModeForensic {
		if m.dashboard == nil {
			return ""
		}
		return render.RenderDashboard(*m.dashboard, width-2)
	}
	return render.RenderForecast(m.forecast, width)
}

// viewAlert renders the blocking alert
func (m Model) viewAlert() string {
	box := alertStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(colorDanger).Bold(true).Render("⚠ PERHATIAN"),
		"",
		m.alert,
	))
	help := helpStyle.Render("Tekan tombol apa saja untuk kembali")

	if m.width == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, box, help)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, box, help))
}

// viewPlaces renders the saved place list
func (m Model) viewPlaces() string {
	help := helpStyle.Render("↑/↓: pilih • enter: buka • d: hapus • /: filter • esc: kembali")
	return lipgloss.JoinVertical(lipgloss.Left, m.placeList.View(), help)
}
