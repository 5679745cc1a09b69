package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinStamina     = 0.0
	MaxStamina     = 100.0
	DefaultStamina = MaxStamina
)

// ClampStamina bounds v to [MinStamina, MaxStamina]. NaN is treated as a
// full meter.
func ClampStamina(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return DefaultStamina
	case v < MinStamina:
		return MinStamina
	case v > MaxStamina:
		return MaxStamina
	}
	return v
}

// StaminaPercent is the rounded percentage shown to the user.
func StaminaPercent(v float64) int {
	return int(math.Round(ClampStamina(v)))
}

// FormatStamina renders v the way it is persisted: the shortest decimal
// that parses back to the same float.
func FormatStamina(v float64) string {
	return strconv.FormatFloat(ClampStamina(v), 'f', -1, 64)
}

// StaminaFillWidth is the CSS width of the meter fill.
func StaminaFillWidth(v float64) string {
	return FormatStamina(v) + "%"
}

// ParseStamina reads a persisted stamina value. Missing or malformed input
// yields DefaultStamina and ok=false; parsed values are clamped.
func ParseStamina(raw string) (v float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultStamina, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		return DefaultStamina, false
	}
	return ClampStamina(f), true
}
