package models

import "time"

// Place is a saved, named coordinate
type Place struct {
	ID        int64     `json:"id"` // 0 if not saved
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Coordinate returns the place's location
func (p Place) Coordinate() Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}
