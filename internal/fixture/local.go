package fixture

import (
	"context"

	"github.com/ngmaloney/flood-terminal/internal/models"
)

// Local answers both backend interfaces in-process, for demos
type Local struct {
	gen *Generator
}

// NewLocal creates an in-process backend over gen
func NewLocal(gen *Generator) *Local {
	return &Local{gen: gen}
}

// Predict implements backend.PredictClient
func (l *Local) Predict(ctx context.Context, coord models.Coordinate) (*models.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := l.gen.Forecast(coord)
	return &f, nil
}

// Analyze implements backend.ForensicClient
func (l *Local) Analyze(ctx context.Context, coord models.Coordinate) (*models.ForensicReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := l.gen.Forensic(coord)
	return &r, nil
}
