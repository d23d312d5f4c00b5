package gps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

// IPLocator approximates position from the public IP via ip-api.com
type IPLocator struct {
	url        string
	userAgent  string
	httpClient *http.Client
}

// NewIPLocator creates an ip-api.com locator
func NewIPLocator(url, userAgent string, timeout time.Duration) *IPLocator {
	return &IPLocator{
		url:        url,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"` // "success" or "fail"
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate queries ip-api.com. Any failure is reported as ErrDenied.
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: creating request: %v", ErrDenied, err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrDenied, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("%w: status %d", ErrDenied, resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: decoding response: %v", ErrDenied, err)
	}
	if body.Status != "success" {
		return models.Coordinate{}, fmt.Errorf("%w: %s", ErrDenied, body.Message)
	}

	return models.Coordinate{Latitude: body.Lat, Longitude: body.Lon}, nil
}
