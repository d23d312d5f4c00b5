package fixture

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ngmaloney/flood-terminal/internal/backend"
	"github.com/ngmaloney/flood-terminal/internal/models"
	"github.com/ngmaloney/flood-terminal/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itb = models.Coordinate{Latitude: -6.8915, Longitude: 107.6107}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGenerator() *Generator {
	return NewGenerator(clockwork.NewFakeClockAt(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)))
}

func TestStableNumber(t *testing.T) {
	a := stableNumber("-6.8915_107.6107", 0.3, 0.8)
	b := stableNumber("-6.8915_107.6107", 0.3, 0.8)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0.3)
	assert.Less(t, a, 0.8)
	assert.NotEqual(t, a, stableNumber("-6.9175_107.6191", 0.3, 0.8))
}

func TestRiskClass(t *testing.T) {
	tests := []struct {
		risk       float64
		wantStatus string
		wantCSS    string
	}{
		{10, "AMAN", "safe"},
		{40, "AMAN", "safe"},
		{40.1, "SIAGA", "warning"},
		{70, "SIAGA", "warning"},
		{70.1, "BAHAYA", "danger"},
	}
	for _, tt := range tests {
		status, css := riskClass(tt.risk)
		assert.Equal(t, tt.wantStatus, status, "risk %v", tt.risk)
		assert.Equal(t, tt.wantCSS, css, "risk %v", tt.risk)
	}
}

func TestGenerator_Forecast(t *testing.T) {
	f := testGenerator().Forecast(itb)

	require.Len(t, f.Days, 3)
	assert.Equal(t, "Sunday", f.Days[0].DayName)
	assert.Equal(t, "18 Oct", f.Days[0].Date)
	assert.Equal(t, "20 Oct", f.Days[2].Date)
	assert.Equal(t, "2026-10-15", f.Meta.SatelliteDate)
	assert.Contains(t, f.Meta.GapNote, "3 hari lalu")

	worst := "AMAN"
	for _, d := range f.Days {
		assert.LessOrEqual(t, d.FloodRisk, maxFloodRisk)
		status, css := riskClass(d.FloodRisk)
		assert.Equal(t, status, d.Status)
		assert.Equal(t, css, d.CSSClass)
		if d.Status == "BAHAYA" || (d.Status == "SIAGA" && worst == "AMAN") {
			worst = d.Status
		}
	}
	assert.Equal(t, worst, f.GlobalStatus)

	assert.Equal(t, f, testGenerator().Forecast(itb))
}

func TestGenerator_Forensic(t *testing.T) {
	r := testGenerator().Forensic(itb)

	pct, err := r.SaturationPercent()
	require.NoError(t, err)
	assert.Greater(t, pct, 0.0)
	assert.Less(t, pct, 100.0)

	switch {
	case pct > 80:
		assert.Equal(t, models.LevelCritical, r.StatusLevel())
	case pct > 60:
		assert.Equal(t, models.LevelWarning, r.StatusLevel())
	default:
		assert.Equal(t, models.LevelSafe, r.StatusLevel())
	}
	assert.NotEmpty(t, r.Result.PredictionWindow)
	assert.NotEmpty(t, r.Result.Recommendation)
}

func TestHandlePredict(t *testing.T) {
	srv := httptest.NewServer(NewHandler(testGenerator(), discardLogger()).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/predict", "application/json", strings.NewReader(`{"lat": -6.8915, "lon": 107.6107}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body models.PredictResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Succeeded())
	assert.Len(t, body.Data.Days, 3)
}

func TestHandlePredict_Invalid(t *testing.T) {
	srv := httptest.NewServer(NewHandler(testGenerator(), discardLogger()).Routes())
	defer srv.Close()

	for _, body := range []string{`not json`, `{"lat": 120, "lon": 0}`} {
		resp, err := http.Post(srv.URL+"/api/predict", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, body)
	}
}

func TestHandleRealtimeAnalysis_MissingParams(t *testing.T) {
	srv := httptest.NewServer(NewHandler(testGenerator(), discardLogger()).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/realtime-analysis?lat=abc", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// The HTTP clients used by the terminal decode the fixture payloads
func TestRoundTripThroughClients(t *testing.T) {
	gen := testGenerator()
	srv := httptest.NewServer(NewHandler(gen, discardLogger()).Routes())
	defer srv.Close()

	metrics := observability.NewUnregisteredMetrics()
	ctx := context.Background()

	predict := backend.NewPredictClient(srv.URL, "test", 5*time.Second, metrics, discardLogger())
	forecast, err := predict.Predict(ctx, itb)
	require.NoError(t, err)
	assert.Equal(t, gen.Forecast(itb), *forecast)

	forensic := backend.NewForensicClient(srv.URL, "test", 5*time.Second, metrics, discardLogger())
	report, err := forensic.Analyze(ctx, itb)
	require.NoError(t, err)
	assert.Equal(t, gen.Forensic(itb), *report)
}

func TestLocal(t *testing.T) {
	var (
		_ backend.PredictClient  = (*Local)(nil)
		_ backend.ForensicClient = (*Local)(nil)
	)

	gen := testGenerator()
	local := NewLocal(gen)

	f, err := local.Predict(context.Background(), itb)
	require.NoError(t, err)
	assert.Equal(t, gen.Forecast(itb), *f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = local.Analyze(ctx, itb)
	assert.ErrorIs(t, err, context.Canceled)
}
