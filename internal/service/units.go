package service

import (
	"fmt"
	"strings"
)

const kgPerLb = 0.45359237

// ToKilograms converts a weight value to kilograms. Empty unit means kg.
func ToKilograms(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	switch normalizeUnit(unit, "kg") {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * kgPerLb, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// FromKilograms converts a stored kilogram weight for display.
func FromKilograms(weightKg float64, unit string) (float64, error) {
	switch normalizeUnit(unit, "kg") {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / kgPerLb, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// ToMeters converts a height value to meters. Empty unit means m.
func ToMeters(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("height must be positive and non-zero")
	}
	switch normalizeUnit(unit, "m") {
	case "m":
		return value, nil
	case "cm":
		return value / 100, nil
	default:
		return 0, fmt.Errorf("invalid height unit %q (use m or cm)", unit)
	}
}

func normalizeUnit(unit, fallback string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return fallback
	}
	return u
}
