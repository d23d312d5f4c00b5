package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
)

// DefaultForensicURL is the local uvicorn address the forensic service runs on
const DefaultForensicURL = "http://127.0.0.1:8000"

// HTTPForensicClient implements ForensicClient against POST /v1/realtime-analysis
type HTTPForensicClient struct {
	baseClient
}

// NewForensicClient creates a forensic analysis client
func NewForensicClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *HTTPForensicClient {
	if baseURL == "" {
		baseURL = DefaultForensicURL
	}
	return &HTTPForensicClient{
		baseClient: newBaseClient(baseURL, "forensic", userAgent, timeout, metrics, logger),
	}
}

// Analyze posts the coordinate as query parameters with an empty body
func (c *HTTPForensicClient) Analyze(ctx context.Context, coord models.Coordinate) (*models.ForensicReport, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', 6, 64))
	reqURL := fmt.Sprintf("%s/v1/realtime-analysis?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report models.ForensicReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &report, nil
}
