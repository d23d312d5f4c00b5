package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
)

// HTTPPredictClient implements PredictClient against POST /api/predict
type HTTPPredictClient struct {
	baseClient
}

// NewPredictClient creates a forecast client for the given backend base URL
func NewPredictClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *HTTPPredictClient {
	return &HTTPPredictClient{
		baseClient: newBaseClient(baseURL, "predict", userAgent, timeout, metrics, logger),
	}
}

// Predict posts {lat, lon} and returns the forecast payload.
// A response whose status is not "success" is an ErrBackend.
func (c *HTTPPredictClient) Predict(ctx context.Context, coord models.Coordinate) (*models.Forecast, error) {
	body, err := json.Marshal(models.PredictRequest{Lat: coord.Latitude, Lon: coord.Longitude})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var predictResp models.PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if !predictResp.Succeeded() {
		return nil, fmt.Errorf("%w: prediction status %q", ErrBackend, predictResp.Status)
	}

	return &predictResp.Data, nil
}
