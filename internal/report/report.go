// Package report prints forecast and forensic results for one coordinate
// without starting the interactive UI.
package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ngmaloney/flood-terminal/internal/backend"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/render"
	"golang.org/x/sync/errgroup"
)

const defaultWidth = 80

// Result holds whatever each backend returned. A nil field means that
// backend failed and Errors carries the reason.
type Result struct {
	Coordinate models.Coordinate
	Forecast   *models.Forecast
	Forensic   *models.ForensicReport
	Errors     []error
}

// Runner fetches both analyses concurrently
type Runner struct {
	predict  backend.PredictClient
	forensic backend.ForensicClient
	logger   *slog.Logger
}

// NewRunner creates a report runner. Either client may be nil to skip it.
func NewRunner(predict backend.PredictClient, forensic backend.ForensicClient, logger *slog.Logger) *Runner {
	return &Runner{predict: predict, forensic: forensic, logger: logger}
}

// Fetch queries both backends at once. A failure of one backend does not
// cancel the other; the returned error is non-nil only when every
// configured backend failed.
func (r *Runner) Fetch(ctx context.Context, coord models.Coordinate) (*Result, error) {
	res := &Result{Coordinate: coord}
	var predictErr, forensicErr error

	g, ctx := errgroup.WithContext(ctx)
	if r.predict != nil {
		g.Go(func() error {
			res.Forecast, predictErr = r.predict.Predict(ctx, coord)
			return nil
		})
	}
	if r.forensic != nil {
		g.Go(func() error {
			res.Forensic, forensicErr = r.forensic.Analyze(ctx, coord)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range []error{predictErr, forensicErr} {
		if err != nil {
			r.logger.Error("report fetch failed", "coordinate", coord.String(), "error", err)
			res.Errors = append(res.Errors, err)
		}
	}

	if res.Forecast == nil && res.Forensic == nil {
		if len(res.Errors) == 0 {
			return res, fmt.Errorf("no backend configured")
		}
		return res, fmt.Errorf("all backends failed: %w", res.Errors[0])
	}
	return res, nil
}

// Write renders a result the same way the interactive views do
func Write(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "Lokasi: %s, %s\n\n", res.Coordinate.FormatLat(), res.Coordinate.FormatLon()); err != nil {
		return err
	}

	if res.Forecast != nil {
		if _, err := fmt.Fprintln(w, render.RenderForecast(res.Forecast, defaultWidth)); err != nil {
			return err
		}
	}
	if res.Forensic != nil {
		if _, err := fmt.Fprintln(w, render.RenderDashboard(render.NewDashboard(res.Forensic), defaultWidth)); err != nil {
			return err
		}
	}
	for _, e := range res.Errors {
		if _, err := fmt.Fprintf(w, "! %v\n", e); err != nil {
			return err
		}
	}
	return nil
}

// Run fetches and writes a report
func (r *Runner) Run(ctx context.Context, w io.Writer, coord models.Coordinate) error {
	res, err := r.Fetch(ctx, coord)
	if werr := Write(w, res); werr != nil {
		return fmt.Errorf("writing report: %w", werr)
	}
	return err
}
