package ui

import (
	"context"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/flood-terminal/internal/geocoding"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/regions"
)

// Mock collaborators for testing

type mockGeocoder struct {
	location *geocoding.Location
	err      error
}

func (g *mockGeocoder) Geocode(ctx context.Context, query string) (*geocoding.Location, error) {
	return g.location, g.err
}

type mockLocator struct {
	coord models.Coordinate
	err   error
}

func (l *mockLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	return l.coord, l.err
}

type mockPredict struct {
	mu       sync.Mutex
	calls    int
	forecast *models.Forecast
	err      error
}

func (p *mockPredict) Predict(ctx context.Context, coord models.Coordinate) (*models.Forecast, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.forecast, p.err
}

type mockForensic struct {
	report *models.ForensicReport
	err    error
	got    models.Coordinate
}

func (f *mockForensic) Analyze(ctx context.Context, coord models.Coordinate) (*models.ForensicReport, error) {
	f.got = coord
	return f.report, f.err
}

type mockPlaces struct {
	places  []models.Place
	saved   []models.Place
	deleted []string
	err     error
}

func (s *mockPlaces) Save(p *models.Place) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, *p)
	return nil
}

func (s *mockPlaces) List() ([]models.Place, error) { return s.places, s.err }

func (s *mockPlaces) Delete(name string) error {
	s.deleted = append(s.deleted, name)
	return s.err
}

type mockRegions struct {
	name string
}

func (r *mockRegions) Lookup(coord models.Coordinate) (*regions.Region, error) {
	if r.name == "" {
		return nil, regions.ErrNotFound
	}
	return &regions.Region{Name: r.name}, nil
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		updatedModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updatedModel.(Model)
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	updatedModel, cmd := m.Update(tea.KeyMsg{Type: k})
	return updatedModel.(Model), cmd
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updatedModel, cmd := m.Update(msg)
	return updatedModel.(Model), cmd
}

// focusField moves focus with tab until f is focused
func focusField(m Model, f Focus) Model {
	for m.focus != f {
		m, _ = press(m, tea.KeyTab)
	}
	return m
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
