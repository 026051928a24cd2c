// Package bmi holds the pure body-mass-index math: the BMI formula and
// the fixed four-band WHO category table. No I/O, no state.
package bmi

import "fmt"

// Category is one of the four fixed BMI bands.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Band thresholds, lower-inclusive: [18.5, 25) is Normal.
const (
	UnderweightMax = 18.5
	NormalMax      = 25.0
	OverweightMax  = 30.0
)

// Calculate returns weight / height² for metric inputs.
func Calculate(weightKg, heightM float64) (float64, error) {
	if weightKg <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	if heightM <= 0 {
		return 0, fmt.Errorf("height must be positive and non-zero")
	}
	return weightKg / (heightM * heightM), nil
}

// Categorize maps a BMI value to its band.
func Categorize(value float64) Category {
	switch {
	case value < UnderweightMax:
		return Underweight
	case value < NormalMax:
		return Normal
	case value < OverweightMax:
		return Overweight
	default:
		return Obese
	}
}
