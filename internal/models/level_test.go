package models

import "testing"

func TestThresholdLevel(t *testing.T) {
	tests := []struct {
		value float64
		want  Level
	}{
		{0, LevelSafe},
		{79.9, LevelSafe},
		{80, LevelSafe},
		{80.01, LevelCritical},
		{81, LevelCritical},
		{100, LevelCritical},
	}

	for _, tt := range tests {
		if got := ThresholdLevel(tt.value); got != tt.want {
			t.Errorf("ThresholdLevel(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStatusLevel(t *testing.T) {
	tests := []struct {
		status string
		want   Level
	}{
		{"CRITICAL", LevelCritical},
		{"🔴 CRITICAL: FLASH FLOOD IMMINENT", LevelCritical},
		{"WARNING then CRITICAL", LevelCritical},
		{"CRITICAL / WARNING", LevelCritical},
		{"⚠️ WARNING: HIGH SATURATION", LevelWarning},
		{"warning", LevelSafe},
		{"SAFE", LevelSafe},
		{"", LevelSafe},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusLevel(tt.status); got != tt.want {
				t.Errorf("StatusLevel(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCSSClassLevel(t *testing.T) {
	if CSSClassLevel("danger") != LevelCritical {
		t.Error("danger should map to critical")
	}
	if CSSClassLevel("warning") != LevelWarning {
		t.Error("warning should map to warning")
	}
	if CSSClassLevel("safe") != LevelSafe || CSSClassLevel("") != LevelSafe {
		t.Error("safe and unknown classes should map to safe")
	}
}
