// Package backend talks to the flood prediction and SAR forensic services.
package backend

import (
	"context"
	"errors"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

// ErrBackend is returned when the backend answers with a non-success status
var ErrBackend = errors.New("backend error")

// PredictClient fetches the multi-day flood forecast for a coordinate
type PredictClient interface {
	Predict(ctx context.Context, coord models.Coordinate) (*models.Forecast, error)
}

// ForensicClient runs the realtime SAR forensic analysis for a coordinate
type ForensicClient interface {
	Analyze(ctx context.Context, coord models.Coordinate) (*models.ForensicReport, error)
}
