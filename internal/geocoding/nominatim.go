package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap search endpoint
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

	// Nominatim usage policy: at most one request per second
	minInterval = time.Second
)

// ErrNotFound is returned when Nominatim has no result for a query
var ErrNotFound = errors.New("location not found")

// Geocoder converts place names to coordinates
type Geocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// Location represents a geocoded location
type Location struct {
	models.Coordinate
	Name string
}

// NewGeocoder creates a new Nominatim geocoder
func NewGeocoder(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &Geocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
		logger:  logger,
	}
}

// nominatimResponse represents one Nominatim search hit
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode looks up a place name and returns the first result
func (g *Geocoder) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	loc, err := g.geocode(ctx, query)
	switch {
	case errors.Is(err, ErrNotFound):
		g.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		g.logger.Info("geocode returned no results", "query", query)
	case err != nil:
		g.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		g.logger.Error("geocode failed", "query", query, "error", err)
	default:
		g.metrics.GeocodeRequests.WithLabelValues("success").Inc()
		g.logger.Debug("geocoded", "query", query, "lat", loc.Latitude, "lon", loc.Longitude)
	}
	return loc, err
}

func (g *Geocoder) geocode(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Add("format", "json")
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	if err := g.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// Nominatim rejects requests without an identifying User-Agent
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, body)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	result := results[0]

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}

	return &Location{
		Coordinate: models.Coordinate{Latitude: lat, Longitude: lon},
		Name:       result.DisplayName,
	}, nil
}

// reserve claims the next request slot and returns how long to wait for it
func (g *Geocoder) reserve() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	var delay time.Duration
	if !g.lastCall.IsZero() {
		if elapsed := now.Sub(g.lastCall); elapsed < minInterval {
			delay = minInterval - elapsed
		}
	}
	g.lastCall = now.Add(delay)
	return delay
}

func (g *Geocoder) wait(ctx context.Context) error {
	delay := g.reserve()
	if delay <= 0 {
		return nil
	}
	select {
	case <-g.clock.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
