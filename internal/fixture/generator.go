// Package fixture serves deterministic stand-ins for the prediction and
// forensic backends so the terminal can run without them.
package fixture

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

const (
	forecastDays    = 3
	satelliteLagDay = 3
	maxFloodRisk    = 98.5
	dataSource      = "Simulasi (Offline/Auth Failed)"
)

// Generator derives stable payloads from the coordinate and the current day.
// The same inputs always give the same numbers.
type Generator struct {
	clock clockwork.Clock
}

// NewGenerator creates a generator using clock for "today"
func NewGenerator(clock clockwork.Clock) *Generator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Generator{clock: clock}
}

// stableNumber maps input onto [lo, hi) through its md5 digest
func stableNumber(input string, lo, hi float64) float64 {
	sum := md5.Sum([]byte(input))
	frac := float64(binary.BigEndian.Uint64(sum[:8])) / math.Pow(2, 64)
	return lo + frac*(hi-lo)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func locationID(c models.Coordinate) string {
	return fmt.Sprintf("%.4f_%.4f", c.Latitude, c.Longitude)
}

// moisture is the simulated soil moisture fraction for a location
func moisture(c models.Coordinate) float64 {
	return stableNumber(locationID(c), 0.3, 0.8)
}

func dailyRain(c models.Coordinate, day time.Time) float64 {
	return stableNumber(fmt.Sprintf("%v%v%s", c.Latitude, c.Longitude, day.Format("2006-01-02")), 0, 80)
}

// riskClass buckets a flood risk the way the prediction service does
func riskClass(risk float64) (status, cssClass string) {
	switch {
	case risk > 70:
		return "BAHAYA", "danger"
	case risk > 40:
		return "SIAGA", "warning"
	default:
		return "AMAN", "safe"
	}
}

// Forecast builds a three day forecast for c
func (g *Generator) Forecast(c models.Coordinate) models.Forecast {
	today := g.clock.Now()
	soil := moisture(c)
	satelliteDate := today.AddDate(0, 0, -satelliteLagDay).Format("2006-01-02")

	f := models.Forecast{
		Meta: models.ForecastMeta{
			SatelliteDate: satelliteDate,
			DataSource:    dataSource,
			GapNote:       fmt.Sprintf("⚠️ Note: Data satelit terakhir diambil %d hari lalu (%s).", satelliteLagDay, satelliteDate),
		},
		GlobalStatus: "AMAN",
		Days:         make([]models.ForecastDay, 0, forecastDays),
	}

	for i := 0; i < forecastDays; i++ {
		day := today.AddDate(0, 0, i)
		rain := dailyRain(c, day)
		risk := math.Min(soil*40+rain*0.5, maxFloodRisk)
		status, css := riskClass(risk)

		switch {
		case status == "BAHAYA":
			f.GlobalStatus = "BAHAYA"
		case status == "SIAGA" && f.GlobalStatus != "BAHAYA":
			f.GlobalStatus = "SIAGA"
		}

		f.Days = append(f.Days, models.ForecastDay{
			DayName:      day.Weekday().String(),
			Date:         day.Format("02 Jan"),
			FloodRisk:    round(risk, 1),
			Status:       status,
			CSSClass:     css,
			SoilMoisture: round(soil, 2),
			RainMM:       round(rain, 1),
		})
	}

	return f
}

// Forensic builds a realtime analysis for c from today's rain and the
// location's soil moisture
func (g *Generator) Forensic(c models.Coordinate) models.ForensicReport {
	today := g.clock.Now()
	rain := dailyRain(c, today)
	saturation := math.Min(moisture(c)*100+rain*0.25, 99.9)

	r := models.ForensicReport{
		Hydrology: models.Hydrology{
			Saturation:      fmt.Sprintf("%.1f%%", saturation),
			WeatherForecast: fmt.Sprintf("%.1f mm / 24 jam", rain),
		},
	}

	switch {
	case saturation > 80:
		r.Result = models.ForensicResult{
			Status:           "CRITICAL: TANAH JENUH",
			PredictionWindow: "< 6 JAM",
			Recommendation:   "Siapkan evakuasi warga di bantaran sungai.",
		}
	case saturation > 60:
		r.Result = models.ForensicResult{
			Status:           "WARNING: WASPADA",
			PredictionWindow: "12 - 24 JAM",
			Recommendation:   "Pantau debit sungai dan bersihkan saluran air.",
		}
	default:
		r.Result = models.ForensicResult{
			Status:           "NORMAL",
			PredictionWindow: "TIDAK ADA ANCAMAN",
			Recommendation:   "Kondisi aman, lanjutkan pemantauan rutin.",
		}
	}

	return r
}
