package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

// placeItem wraps a Place for use in a list
type placeItem struct {
	place models.Place
}

// FilterValue implements list.Item
func (p placeItem) FilterValue() string {
	return p.place.Name
}

// Title implements list.DefaultItem
func (p placeItem) Title() string {
	return p.place.Name
}

// Description implements list.DefaultItem
func (p placeItem) Description() string {
	desc := p.place.Coordinate().String()
	if !p.place.CreatedAt.IsZero() {
		desc += " • " + p.place.CreatedAt.Format("02 Jan 2006")
	}
	return desc
}

// createPlaceList creates a list.Model from saved places
func createPlaceList(places []models.Place, width, height int) list.Model {
	items := make([]list.Item, len(places))
	for i, place := range places {
		items[i] = placeItem{place: place}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Lokasi Tersimpan"
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)

	return l
}
