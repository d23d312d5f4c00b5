// Package places stores named coordinates the user wants to revisit.
package places

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

// ErrNotFound is returned when no place has the requested name
var ErrNotFound = errors.New("place not found")

// Repository handles persistence for saved places
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository on an open database (see database.Open)
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts a place by name
func (r *Repository) Save(place *models.Place) error {
	place.Name = strings.TrimSpace(place.Name)
	if place.Name == "" {
		return fmt.Errorf("place name cannot be empty")
	}
	if place.CreatedAt.IsZero() {
		place.CreatedAt = time.Now()
	}

	err := r.db.QueryRow(`
		INSERT INTO saved_places (name, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			created_at = excluded.created_at
		RETURNING id
	`, place.Name, place.Latitude, place.Longitude, place.CreatedAt).Scan(&place.ID)
	if err != nil {
		return fmt.Errorf("saving place: %w", err)
	}

	return nil
}

// List returns all saved places ordered by name
func (r *Repository) List() ([]models.Place, error) {
	rows, err := r.db.Query("SELECT id, name, latitude, longitude, created_at FROM saved_places ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning place: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating places: %w", err)
	}

	return places, nil
}

// Get returns the place with the given name
func (r *Repository) Get(name string) (*models.Place, error) {
	var p models.Place
	err := r.db.QueryRow(
		"SELECT id, name, latitude, longitude, created_at FROM saved_places WHERE name = ?",
		strings.TrimSpace(name),
	).Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying place: %w", err)
	}
	return &p, nil
}

// Delete removes a place by name
func (r *Repository) Delete(name string) error {
	if _, err := r.db.Exec("DELETE FROM saved_places WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting place: %w", err)
	}
	return nil
}
