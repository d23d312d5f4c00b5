package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

func TestNewModel(t *testing.T) {
	m := NewModel(Options{Mode: ModeForensic})

	if m.state != StateInput {
		t.Errorf("NewModel() state = %v, want StateInput", m.state)
	}
	if m.mapView.Center() != forensicCenter {
		t.Errorf("NewModel() center = %v, want %v", m.mapView.Center(), forensicCenter)
	}
	if m.mapView.Marker() != forensicCenter {
		t.Errorf("NewModel() marker = %v, want %v", m.mapView.Marker(), forensicCenter)
	}
	if m.mapView.Zoom() != defaultZoom {
		t.Errorf("NewModel() zoom = %d, want %d", m.mapView.Zoom(), defaultZoom)
	}
	if m.analyzeLabel != labelForensicIdle {
		t.Errorf("NewModel() analyzeLabel = %q, want %q", m.analyzeLabel, labelForensicIdle)
	}
	if !m.searchInput.Focused() {
		t.Error("Expected search input to be focused initially")
	}
}

func TestNewModel_ForecastDefaults(t *testing.T) {
	m := NewModel(Options{Mode: ModeForecast})

	if m.mapView.Center() != forecastCenter {
		t.Errorf("center = %v, want %v", m.mapView.Center(), forecastCenter)
	}
	if m.analyzeLabel != labelForecastIdle {
		t.Errorf("analyzeLabel = %q, want %q", m.analyzeLabel, labelForecastIdle)
	}
}

func TestNewModel_StartCoordinate(t *testing.T) {
	start := models.Coordinate{Latitude: -6.987654, Longitude: 107.625}
	m := NewModel(Options{Mode: ModeForecast, Start: &start})

	if m.mapView.Center() != start || m.mapView.Marker() != start {
		t.Errorf("center/marker = %v/%v, want %v", m.mapView.Center(), m.mapView.Marker(), start)
	}
	if m.latInput.Value() != "-6.987654" || m.lonInput.Value() != "107.625000" {
		t.Errorf("fields = %q, %q", m.latInput.Value(), m.lonInput.Value())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"forecast", ModeForecast, false},
		{"", ModeForecast, false},
		{"FORENSIC", ModeForensic, false},
		{"sar", ModeForecast, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := NewModel(Options{})

	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	w, h := m.mapView.Size()
	if w != 120-sidePanelWidth-6 || h != 40-14 {
		t.Errorf("map size = %dx%d", w, h)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := NewModel(Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected Ctrl+C to return quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m := NewModel(Options{})

	want := []Focus{FocusLat, FocusLon, FocusMap, FocusSearch}
	for _, f := range want {
		updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updatedModel.(Model)
		if m.focus != f {
			t.Fatalf("focus = %v, want %v", m.focus, f)
		}
	}

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updatedModel.(Model)
	if m.focus != FocusMap {
		t.Errorf("after shift+tab focus = %v, want FocusMap", m.focus)
	}
	if m.searchInput.Focused() || m.latInput.Focused() || m.lonInput.Focused() {
		t.Error("text fields should be blurred while the map has focus")
	}
}

// TestTextInputHandling verifies that typing goes to the focused field
func TestTextInputHandling(t *testing.T) {
	m := NewModel(Options{})
	m = typeText(m, "Dayeuhkolot")

	if m.searchInput.Value() != "Dayeuhkolot" {
		t.Errorf("search = %q, want 'Dayeuhkolot'", m.searchInput.Value())
	}

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(updatedModel.(Model), "-6.9")
	if m.latInput.Value() != "-6.9" {
		t.Errorf("lat = %q, want '-6.9'", m.latInput.Value())
	}
	if m.searchInput.Value() != "Dayeuhkolot" {
		t.Errorf("search changed to %q", m.searchInput.Value())
	}
}

func TestModel_SwitchMode(t *testing.T) {
	m := NewModel(Options{Mode: ModeForecast})
	m.forecast = &models.Forecast{}
	m.showResults = true
	m.state = StateResults

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updatedModel.(Model)

	if m.mode != ModeForensic {
		t.Errorf("mode = %v, want forensic", m.mode)
	}
	if m.forecast != nil || m.showResults {
		t.Error("results should be cleared on mode switch")
	}
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.analyzeLabel != labelForensicIdle {
		t.Errorf("analyzeLabel = %q", m.analyzeLabel)
	}
}

func TestModel_EscHidesResults(t *testing.T) {
	m := NewModel(Options{Mode: ModeForecast})
	m.forecast = &models.Forecast{}
	m.showResults = true
	m.state = StateResults

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updatedModel.(Model)

	if m.showResults || m.state != StateInput {
		t.Errorf("showResults = %v, state = %v", m.showResults, m.state)
	}
}

func TestModel_AlertDismissedByAnyKey(t *testing.T) {
	m := NewModel(Options{})
	m = m.showAlert(AlertNoTarget)

	if m.state != StateAlert {
		t.Fatalf("state = %v, want StateAlert", m.state)
	}

	updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updatedModel.(Model)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.searchInput.Value() != "" {
		t.Error("the dismissing key should not reach the fields")
	}
}

func TestModel_ViewStates(t *testing.T) {
	m := NewModel(Options{Mode: ModeForensic})
	updatedModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updatedModel.(Model)

	if v := m.View(); !contains(v, labelForensicIdle) || !contains(v, "© OpenStreetMap, © CartoDB") {
		t.Errorf("main view missing button or attribution:\n%s", v)
	}

	m = m.showAlert(AlertNotFound)
	if v := m.View(); !contains(v, AlertNotFound) {
		t.Errorf("alert view missing text:\n%s", v)
	}
}
