package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredict struct {
	forecast *models.Forecast
	err      error
	got      models.Coordinate
}

func (f *fakePredict) Predict(_ context.Context, c models.Coordinate) (*models.Forecast, error) {
	f.got = c
	return f.forecast, f.err
}

type fakeForensic struct {
	report *models.ForensicReport
	err    error
	got    models.Coordinate
}

func (f *fakeForensic) Analyze(_ context.Context, c models.Coordinate) (*models.ForensicReport, error) {
	f.got = c
	return f.report, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var itb = models.Coordinate{Latitude: -6.8915, Longitude: 107.6107}

func sampleForecast() *models.Forecast {
	return &models.Forecast{
		GlobalStatus: "SIAGA",
		Days: []models.ForecastDay{
			{DayName: "Minggu", Date: "18 Okt", FloodRisk: 40, Status: "AMAN", CSSClass: "safe"},
			{DayName: "Senin", Date: "19 Okt", FloodRisk: 65, Status: "SIAGA", CSSClass: "warning"},
		},
	}
}

func sampleReport() *models.ForensicReport {
	return &models.ForensicReport{
		Hydrology: models.Hydrology{Saturation: "85%", WeatherForecast: "Hujan lebat"},
		Result:    models.ForensicResult{Status: "CRITICAL", PredictionWindow: "6 jam", Recommendation: "Evakuasi"},
	}
}

func TestRunner_BothSucceed(t *testing.T) {
	p := &fakePredict{forecast: sampleForecast()}
	f := &fakeForensic{report: sampleReport()}

	var buf bytes.Buffer
	err := NewRunner(p, f, discardLogger()).Run(context.Background(), &buf, itb)
	require.NoError(t, err)

	assert.Equal(t, itb, p.got)
	assert.Equal(t, itb, f.got)

	out := buf.String()
	assert.Contains(t, out, "-6.891500")
	assert.Contains(t, out, "HARI INI")
	assert.Contains(t, out, "BESOK")
	assert.Contains(t, out, "STATUS WILAYAH: SIAGA")
	assert.Contains(t, out, "Rekomendasi: Evakuasi")
}

func TestRunner_PartialFailure(t *testing.T) {
	p := &fakePredict{err: errors.New("connection refused")}
	f := &fakeForensic{report: sampleReport()}

	res, err := NewRunner(p, f, discardLogger()).Fetch(context.Background(), itb)
	require.NoError(t, err)
	assert.Nil(t, res.Forecast)
	assert.NotNil(t, res.Forensic)
	require.Len(t, res.Errors, 1)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res))
	assert.Contains(t, buf.String(), "connection refused")
}

func TestRunner_AllFail(t *testing.T) {
	boom := errors.New("boom")
	p := &fakePredict{err: boom}
	f := &fakeForensic{err: errors.New("down")}

	_, err := NewRunner(p, f, discardLogger()).Fetch(context.Background(), itb)
	assert.ErrorIs(t, err, boom)
}

func TestRunner_SkipsNilClient(t *testing.T) {
	f := &fakeForensic{report: sampleReport()}

	res, err := NewRunner(nil, f, discardLogger()).Fetch(context.Background(), itb)
	require.NoError(t, err)
	assert.Nil(t, res.Forecast)
	assert.Empty(t, res.Errors)

	_, err = NewRunner(nil, nil, discardLogger()).Fetch(context.Background(), itb)
	assert.Error(t, err)
}
