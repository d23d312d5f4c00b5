package models

import "strings"

// Level is the severity bucket used to color results
type Level int

const (
	LevelSafe Level = iota
	LevelWarning
	LevelCritical
)

// criticalThreshold is exclusive: 80 is still safe, anything above is critical.
const criticalThreshold = 80.0

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelWarning:
		return "warning"
	default:
		return "safe"
	}
}

// ThresholdLevel classifies a saturation percentage. Forecast cards are
// colored by the css_class the backend sends instead.
func ThresholdLevel(value float64) Level {
	if value > criticalThreshold {
		return LevelCritical
	}
	return LevelSafe
}

// StatusLevel classifies a forensic status string by substring.
// CRITICAL wins over WARNING when both are present.
func StatusLevel(status string) Level {
	switch {
	case strings.Contains(status, "CRITICAL"):
		return LevelCritical
	case strings.Contains(status, "WARNING"):
		return LevelWarning
	default:
		return LevelSafe
	}
}

// CSSClassLevel maps the backend's card class (safe, warning, danger) to a Level
func CSSClassLevel(class string) Level {
	switch class {
	case "danger":
		return LevelCritical
	case "warning":
		return LevelWarning
	default:
		return LevelSafe
	}
}
