package service_test

import (
	"math"
	"testing"

	"github.com/saadjs/bmi-cli/internal/service"
)

func TestToKilograms(t *testing.T) {
	t.Parallel()
	kg, err := service.ToKilograms(154.3236, "lb")
	if err != nil {
		t.Fatalf("convert lb: %v", err)
	}
	if math.Abs(kg-70) > 0.001 {
		t.Fatalf("expected ~70 kg, got %.4f", kg)
	}

	same, err := service.ToKilograms(70, "")
	if err != nil {
		t.Fatalf("default unit: %v", err)
	}
	if same != 70 {
		t.Fatalf("expected 70 kg, got %.4f", same)
	}

	if _, err := service.ToKilograms(70, "stone"); err == nil {
		t.Fatalf("expected invalid unit error")
	}
	if _, err := service.ToKilograms(0, "kg"); err == nil {
		t.Fatalf("expected non-positive weight error")
	}
}

func TestToMeters(t *testing.T) {
	t.Parallel()
	m, err := service.ToMeters(175, "cm")
	if err != nil {
		t.Fatalf("convert cm: %v", err)
	}
	if math.Abs(m-1.75) > 1e-9 {
		t.Fatalf("expected 1.75 m, got %.4f", m)
	}

	if _, err := service.ToMeters(-1, "m"); err == nil {
		t.Fatalf("expected non-positive height error")
	}
	if _, err := service.ToMeters(1.75, "ft"); err == nil {
		t.Fatalf("expected invalid unit error")
	}
}

func TestFromKilograms(t *testing.T) {
	t.Parallel()
	lb, err := service.FromKilograms(70, "lb")
	if err != nil {
		t.Fatalf("convert to lb: %v", err)
	}
	if math.Abs(lb-154.3236) > 0.001 {
		t.Fatalf("expected ~154.32 lb, got %.4f", lb)
	}
}
