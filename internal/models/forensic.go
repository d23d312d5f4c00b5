package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Hydrology holds the soil saturation ("sponge effect") reading
type Hydrology struct {
	Saturation      string `json:"saturation"` // e.g. "83.5%"
	WeatherForecast string `json:"weather_forecast"`
}

// ForensicResult is the SAR forensic verdict
type ForensicResult struct {
	Status           string `json:"status"`
	PredictionWindow string `json:"prediction_window"`
	Recommendation   string `json:"recommendation"`
}

// ForensicReport is the response of /v1/realtime-analysis
type ForensicReport struct {
	Hydrology Hydrology      `json:"hydrology"`
	Result    ForensicResult `json:"forensic_result"`
}

// SaturationPercent parses the saturation string into a number
func (r *ForensicReport) SaturationPercent() (float64, error) {
	raw := strings.TrimSpace(strings.Replace(r.Hydrology.Saturation, "%", "", 1))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing saturation %q: %w", r.Hydrology.Saturation, err)
	}
	return v, nil
}

// SaturationLevel classifies the saturation reading.
// Unparseable readings are treated as safe.
func (r *ForensicReport) SaturationLevel() Level {
	v, err := r.SaturationPercent()
	if err != nil {
		return LevelSafe
	}
	return ThresholdLevel(v)
}

// StatusLevel classifies the forensic status string
func (r *ForensicReport) StatusLevel() Level {
	return StatusLevel(r.Result.Status)
}
