package models

// Fixed labels for the first two forecast cards
const (
	LabelToday    = "HARI INI"
	LabelTomorrow = "BESOK"
)

// ForecastDay is one day of the flood forecast
type ForecastDay struct {
	DayName      string  `json:"day_name"`
	Date         string  `json:"date"`
	FloodRisk    float64 `json:"flood_risk"` // 0-100
	Status       string  `json:"status"`     // e.g. "AMAN", "SIAGA", "BAHAYA"
	CSSClass     string  `json:"css_class"`  // "safe", "warning", "danger"
	SoilMoisture float64 `json:"soil_moisture"`
	RainMM       float64 `json:"rain_mm"`
}

// ForecastMeta describes where the soil data came from
type ForecastMeta struct {
	SatelliteDate string `json:"satellite_date"`
	DataSource    string `json:"data_source"`
	GapNote       string `json:"gap_note"`
}

// Forecast is the data payload of a predict response
type Forecast struct {
	Meta         ForecastMeta  `json:"meta"`
	GlobalStatus string        `json:"global_status"`
	Days         []ForecastDay `json:"forecast"`
}

// PredictRequest is the body sent to /api/predict
type PredictRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PredictResponse is the envelope returned by /api/predict
type PredictResponse struct {
	Status string   `json:"status"`
	Data   Forecast `json:"data"`
}

// Succeeded reports whether the backend marked the prediction as successful
func (r *PredictResponse) Succeeded() bool {
	return r.Status == "success"
}

// DayLabel returns the card label for the forecast day at index
func DayLabel(index int, dayName string) string {
	switch index {
	case 0:
		return LabelToday
	case 1:
		return LabelTomorrow
	default:
		return dayName
	}
}
