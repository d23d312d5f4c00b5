package ui

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/flood-terminal/internal/backend"
	"github.com/ngmaloney/flood-terminal/internal/geocoding"
	"github.com/ngmaloney/flood-terminal/internal/gps"
	"github.com/ngmaloney/flood-terminal/internal/mapview"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/render"
)

// AppState represents the current state of the application
type AppState int

const (
	StateInput   AppState = iota // Map and coordinate fields
	StateLoading                 // Waiting for an analysis response
	StateResults                 // Forecast cards or forensic dashboard shown under the map
	StatePlaces                  // Saved place list
	StateAlert                   // Blocking alert; any key dismisses it
)

// Mode selects which backend the analyze action talks to
type Mode int

const (
	ModeForecast Mode = iota // POST /api/predict, forecast cards
	ModeForensic             // POST /v1/realtime-analysis, forensic dashboard
)

func (m Mode) String() string {
	if m == ModeForensic {
		return "forensic"
	}
	return "forecast"
}

// ParseMode converts a --mode flag value
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forecast", "":
		return ModeForecast, nil
	case "forensic":
		return ModeForensic, nil
	default:
		return ModeForecast, errors.New("mode must be forecast or forensic")
	}
}

// Focus is the widget receiving keyboard input
type Focus int

const (
	FocusSearch Focus = iota
	FocusLat
	FocusLon
	FocusMap
	focusCount
)

const (
	defaultZoom = 13
	searchZoom  = 14
	gpsZoom     = 16

	sidePanelWidth = 38

	// The map box starts below the title, subtitle and a blank line and
	// has a one cell border.
	mapOriginX = 1
	mapOriginY = 4
)

// Default map centers for each mode
var (
	forensicCenter = models.Coordinate{Latitude: -6.8915, Longitude: 107.6107} // ITB Bandung
	forecastCenter = models.Coordinate{Latitude: -6.9175, Longitude: 107.6191}
)

// Options wires the model to its collaborators. Geocoder and the client
// for the chosen mode are required; the rest may be nil.
type Options struct {
	Mode     Mode
	Start    *models.Coordinate
	Geocoder Geocoder
	Predict  backend.PredictClient
	Forensic backend.ForensicClient
	Locator  gps.Locator
	Places   PlaceStore
	Regions  RegionLocator
	Logger   *slog.Logger
}

// Model represents the application's state
type Model struct {
	state     AppState
	prevState AppState
	mode      Mode
	focus     Focus
	width     int
	height    int

	// Inputs
	searchInput textinput.Model
	latInput    textinput.Model
	lonInput    textinput.Model
	mapView     *mapview.Map

	// Collaborators
	geocoder Geocoder
	predict  backend.PredictClient
	forensic backend.ForensicClient
	locator  gps.Locator
	places   PlaceStore
	regions  RegionLocator
	logger   *slog.Logger

	// Control labels and in-flight work
	searchLabel  string
	locateLabel  string
	analyzeLabel string
	searching    bool
	locating     bool
	analyzing    int
	generation   int // bumped on mode switch; older responses are dropped
	spinner      spinner.Model

	// Results
	forecast    *models.Forecast
	dashboard   *render.Dashboard
	showResults bool

	// Saved places
	placeList list.Model

	region string
	status string
	alert  string
}

func newField(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = width
	return ti
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	search := textinput.New()
	search.Placeholder = "Cari kota / kecamatan..."
	search.CharLimit = 100
	search.Width = sidePanelWidth - 10
	search.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	center := forecastCenter
	if opts.Mode == ModeForensic {
		center = forensicCenter
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	locator := opts.Locator
	if locator == nil {
		locator = gps.NoneLocator{}
	}

	m := Model{
		state:       StateInput,
		mode:        opts.Mode,
		focus:       FocusSearch,
		searchInput: search,
		latInput:    newField("Latitude", 12),
		lonInput:    newField("Longitude", 12),
		mapView:     mapview.New(center, defaultZoom, mapview.CartoDark),
		geocoder:    opts.Geocoder,
		predict:     opts.Predict,
		forensic:    opts.Forensic,
		locator:     locator,
		places:      opts.Places,
		regions:     opts.Regions,
		logger:      logger,
		searchLabel: labelSearchIdle,
		locateLabel: labelLocateIdle,
		spinner:     s,
	}
	m.analyzeLabel = m.idleAnalyzeLabel()

	if opts.Start != nil {
		m.moveTo(*opts.Start, searchZoom)
	}

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.lookupRegionCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeMap()
		if m.state == StatePlaces {
			m.placeList.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case geocodeMsg:
		return m.handleGeocode(msg)

	case gpsMsg:
		return m.handleGPS(msg)

	case predictMsg:
		return m.handlePredict(msg)

	case forensicMsg:
		return m.handleForensic(msg)

	case regionMsg:
		if msg.coord != m.mapView.Marker() {
			return m, nil // stale
		}
		if msg.err != nil {
			m.region = ""
			return m, nil
		}
		m.region = msg.name
		return m, nil

	case placesFetchedMsg:
		if msg.err != nil {
			m.logger.Error("listing saved places failed", "error", msg.err)
			return m.showAlert(AlertPlacesFailed), nil
		}
		m.placeList = createPlaceList(msg.places, m.listWidth(), m.listHeight())
		if m.state != StatePlaces && m.state != StateAlert {
			m.prevState = m.state
		}
		m.state = StatePlaces
		return m, nil

	case placeSavedMsg:
		if msg.err != nil {
			m.logger.Error("saving place failed", "error", msg.err)
			return m.showAlert(AlertSaveFailed), nil
		}
		m.status = "Tersimpan: " + msg.place.Name
		return m, nil

	case placeDeletedMsg:
		if msg.err != nil {
			m.logger.Error("deleting place failed", "name", msg.name, "error", msg.err)
			return m.showAlert(AlertDeleteFailed), nil
		}
		m.status = "Dihapus: " + msg.name
		return m, fetchSavedPlaces(m.places)

	case tea.MouseMsg:
		if m.state == StateAlert || m.state == StatePlaces {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case StateAlert:
			m.alert = ""
			m.state = m.prevState
			return m, nil
		case StatePlaces:
			return m.handlePlaces(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.state == StatePlaces {
		var cmd tea.Cmd
		m.placeList, cmd = m.placeList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles keyboard input on the main screen
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+l":
		return m.startLocate()
	case "ctrl+t":
		return m.switchMode()
	case "ctrl+s":
		return m.startSavePlace()
	case "ctrl+o":
		if m.places == nil {
			return m, nil
		}
		return m, fetchSavedPlaces(m.places)
	case "esc":
		if m.showResults {
			m.showResults = false
			m.setState(StateInput)
		}
		return m, nil
	case "enter":
		if m.focus == FocusSearch {
			return m.startSearch()
		}
		return m.startAnalyze()
	}

	if m.focus == FocusMap {
		return m.handleMapKey(msg)
	}

	// Clear status when typing
	m.status = ""

	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case FocusLat:
		m.latInput, cmd = m.latInput.Update(msg)
	case FocusLon:
		m.lonInput, cmd = m.lonInput.Update(msg)
	}
	return m, cmd
}

// handleMapKey moves the marker with the arrow keys and zooms with +/-
func (m Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		return m.markerMoved(m.mapView.Nudge(0, -1))
	case "down", "j":
		return m.markerMoved(m.mapView.Nudge(0, 1))
	case "left", "h":
		return m.markerMoved(m.mapView.Nudge(-1, 0))
	case "right", "l":
		return m.markerMoved(m.mapView.Nudge(1, 0))
	case "+", "=":
		m.mapView.ZoomBy(1)
	case "-":
		m.mapView.ZoomBy(-1)
	}
	return m, nil
}

// handleMouse turns clicks and drags on the map into marker moves
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row := msg.X-mapOriginX, msg.Y-mapOriginY
	w, h := m.mapView.Size()
	inside := col >= 0 && col < w && row >= 0 && row < h

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		m.focus = FocusMap
		m.blurFields()
		if m.mapView.BeginDrag(col, row) {
			return m, nil
		}
		return m.markerMoved(m.mapView.Click(col, row))

	case tea.MouseActionMotion:
		if m.mapView.Dragging() && inside {
			m.mapView.DragTo(col, row)
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.mapView.Dragging() {
			return m, nil
		}
		if !inside {
			col, row = clamp(col, 0, w-1), clamp(row, 0, h-1)
		}
		if coord, ok := m.mapView.EndDrag(col, row); ok {
			return m.markerMoved(coord)
		}
	}
	return m, nil
}

// handlePlaces handles the saved place list
func (m Model) handlePlaces(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.placeList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.placeList, cmd = m.placeList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.state = m.prevState
		return m, nil
	case "enter":
		item, ok := m.placeList.SelectedItem().(placeItem)
		if !ok {
			return m, nil
		}
		m.state = m.prevState
		m.status = item.place.Name
		m.moveTo(item.place.Coordinate(), searchZoom)
		return m, m.lookupRegionCmd()
	case "d", "delete":
		if item, ok := m.placeList.SelectedItem().(placeItem); ok {
			return m, deletePlace(m.places, item.place.Name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.placeList, cmd = m.placeList.Update(msg)
	return m, cmd
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.searchInput.Value())
	if query == "" {
		return m.showAlert(AlertEmptySearch), nil
	}
	if m.geocoder == nil {
		return m.showAlert(AlertSearchFailed), nil
	}

	m.searching = true
	m.searchLabel = labelBusy
	return m, tea.Batch(m.spinner.Tick, geocodeLocation(m.geocoder, query))
}

func (m Model) handleGeocode(msg geocodeMsg) (tea.Model, tea.Cmd) {
	m.searching = false
	m.searchLabel = labelSearchIdle

	if msg.err != nil {
		if errors.Is(msg.err, geocoding.ErrNotFound) {
			m.logger.Info("geocoding found nothing", "query", msg.query)
			return m.showAlert(AlertNotFound), nil
		}
		m.logger.Error("geocoding failed", "query", msg.query, "error", msg.err)
		return m.showAlert(AlertSearchFailed), nil
	}

	m.status = msg.location.Name
	m.moveTo(msg.location.Coordinate, searchZoom)
	return m, m.lookupRegionCmd()
}

func (m Model) startLocate() (tea.Model, tea.Cmd) {
	m.locating = true
	m.locateLabel = labelBusy
	return m, tea.Batch(m.spinner.Tick, locateDevice(m.locator))
}

func (m Model) handleGPS(msg gpsMsg) (tea.Model, tea.Cmd) {
	m.locating = false
	m.locateLabel = labelLocateIdle

	if msg.err != nil {
		if errors.Is(msg.err, gps.ErrUnsupported) {
			return m.showAlert(AlertNoGPS), nil
		}
		m.logger.Error("locating device failed", "error", msg.err)
		return m.showAlert(AlertGPSFailedPrefix + msg.err.Error()), nil
	}

	m.moveTo(msg.coord, gpsZoom)
	return m, m.lookupRegionCmd()
}

// startAnalyze submits the coordinate in the fields to the mode's backend
func (m Model) startAnalyze() (tea.Model, tea.Cmd) {
	if m.mode == ModeForensic && m.analyzing > 0 {
		return m, nil // button disabled while a forensic audit runs
	}

	coord, err := models.ParseCoordinate(m.latInput.Value(), m.lonInput.Value())
	if err != nil {
		return m.showAlert(AlertNoTarget), nil
	}

	m.mapView.SetView(coord, searchZoom)
	m.mapView.SetMarker(coord)
	m.analyzing++
	m.analyzeLabel = m.busyAnalyzeLabel()
	m.status = ""
	m.setState(StateLoading)

	var fetch tea.Cmd
	if m.mode == ModeForensic {
		if m.forensic == nil {
			return m.analyzeFailed(ModeForensic, errors.New("no forensic backend configured"))
		}
		fetch = fetchForensic(m.forensic, coord, m.generation)
	} else {
		if m.predict == nil {
			return m.analyzeFailed(ModeForecast, errors.New("no prediction backend configured"))
		}
		m.forecast = nil
		fetch = fetchForecast(m.predict, coord, m.generation)
	}

	return m, tea.Batch(m.spinner.Tick, fetch, m.lookupRegionCmd())
}

func (m Model) handlePredict(msg predictMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation || m.mode != ModeForecast {
		m.logger.Debug("dropping forecast from before mode switch", "coord", msg.coord.String())
		return m, nil
	}
	if msg.err != nil {
		return m.analyzeFailed(ModeForecast, msg.err)
	}
	m.finishAnalyze()
	m.forecast = msg.forecast
	m.showResults = true
	m.setState(StateResults)
	return m, nil
}

func (m Model) handleForensic(msg forensicMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation || m.mode != ModeForensic {
		m.logger.Debug("dropping forensic report from before mode switch", "coord", msg.coord.String())
		return m, nil
	}
	if msg.err != nil {
		return m.analyzeFailed(ModeForensic, msg.err)
	}
	m.finishAnalyze()
	d := render.NewDashboard(msg.report)
	m.dashboard = &d
	m.showResults = true
	m.setState(StateResults)
	return m, nil
}

func (m *Model) finishAnalyze() {
	if m.analyzing > 0 {
		m.analyzing--
	}
	if m.analyzing == 0 {
		m.analyzeLabel = m.idleAnalyzeLabel()
	}
}

// analyzeFailed ends a request sent in mode and alerts with that mode's text
func (m Model) analyzeFailed(mode Mode, err error) (tea.Model, tea.Cmd) {
	m.finishAnalyze()
	m.logger.Error("analysis request failed", "mode", mode.String(), "error", err)
	m.setState(m.restingState())

	text := AlertForecastBackend
	if mode == ModeForensic {
		text = AlertForensicBackend
	}
	return m.showAlert(text), nil
}

func (m Model) switchMode() (tea.Model, tea.Cmd) {
	if m.mode == ModeForensic {
		m.mode = ModeForecast
	} else {
		m.mode = ModeForensic
	}
	m.forecast = nil
	m.dashboard = nil
	m.showResults = false
	m.analyzing = 0
	m.generation++
	m.analyzeLabel = m.idleAnalyzeLabel()
	m.setState(StateInput)
	return m, nil
}

// startSavePlace bookmarks the field coordinate under the search text,
// or under the coordinate itself when the search box is empty
func (m Model) startSavePlace() (tea.Model, tea.Cmd) {
	if m.places == nil {
		return m, nil
	}
	coord, err := models.ParseCoordinate(m.latInput.Value(), m.lonInput.Value())
	if err != nil {
		return m.showAlert(AlertNoTarget), nil
	}
	name := strings.TrimSpace(m.searchInput.Value())
	if name == "" {
		name = coord.String()
	}
	return m, savePlace(m.places, name, coord)
}

// moveTo re-centers the map on coord and puts the marker and fields there
func (m *Model) moveTo(coord models.Coordinate, zoom int) {
	m.mapView.SetView(coord, zoom)
	m.mapView.SetMarker(coord)
	m.syncFields(coord)
}

// markerMoved syncs the fields after a click, drag or nudge. The view stays put.
func (m Model) markerMoved(coord models.Coordinate) (tea.Model, tea.Cmd) {
	m.syncFields(coord)
	return m, m.lookupRegionCmd()
}

func (m *Model) syncFields(coord models.Coordinate) {
	m.latInput.SetValue(coord.FormatLat())
	m.lonInput.SetValue(coord.FormatLon())
}

func (m Model) lookupRegionCmd() tea.Cmd {
	if m.regions == nil {
		return nil
	}
	return lookupRegion(m.regions, m.mapView.Marker())
}

func (m Model) setFocus(f Focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.blurFields()

	var cmd tea.Cmd
	switch f {
	case FocusSearch:
		cmd = m.searchInput.Focus()
	case FocusLat:
		cmd = m.latInput.Focus()
	case FocusLon:
		cmd = m.lonInput.Focus()
	}
	return m, cmd
}

func (m *Model) blurFields() {
	m.searchInput.Blur()
	m.latInput.Blur()
	m.lonInput.Blur()
}

// showAlert raises the blocking alert over whatever is on screen
func (m Model) showAlert(text string) Model {
	if m.state != StateAlert && m.state != StatePlaces {
		m.prevState = m.state
	}
	m.alert = text
	m.state = StateAlert
	return m
}

// setState changes the main screen state, or the state an open overlay
// returns to
func (m *Model) setState(s AppState) {
	if m.state == StateAlert || m.state == StatePlaces {
		m.prevState = s
		return
	}
	m.state = s
}

func (m Model) restingState() AppState {
	switch {
	case m.analyzing > 0:
		return StateLoading
	case m.showResults && m.hasResults():
		return StateResults
	default:
		return StateInput
	}
}

func (m Model) hasResults() bool {
	if m.mode == ModeForensic {
		return m.dashboard != nil
	}
	return m.forecast != nil
}

func (m Model) busy() bool {
	return m.searching || m.locating || m.analyzing > 0
}

func (m Model) idleAnalyzeLabel() string {
	if m.mode == ModeForensic {
		return labelForensicIdle
	}
	return labelForecastIdle
}

func (m Model) busyAnalyzeLabel() string {
	if m.mode == ModeForensic {
		return labelForensicBusy
	}
	return labelForecastBusy
}

func (m *Model) resizeMap() {
	w := clamp(m.width-sidePanelWidth-6, 16, 96)
	h := clamp(m.height-14, 8, 24)
	m.mapView.Resize(w, h)
}

func (m Model) listWidth() int {
	if m.width == 0 {
		return 60
	}
	return m.width - 4
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 20
	}
	return m.height - 6
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
