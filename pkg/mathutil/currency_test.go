package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 1015020.6857588243, 1015020.69},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		tolerance float64
		expected  bool
	}{
		{"Equal values", 10, 10, 0.01, true},
		{"Within tolerance", 10, 10.005, 0.01, true},
		{"Outside tolerance", 10, 10.5, 0.01, false},
		{"Order independent", 10.5, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Errorf("IsFinite(1.5) = false, expected true")
	}
	if IsFinite(math.NaN()) {
		t.Errorf("IsFinite(NaN) = true, expected false")
	}
	if IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Errorf("IsFinite(Inf) = true, expected false")
	}
}

func TestPercentConversions(t *testing.T) {
	if got := PercentToFraction(7); math.Abs(got-0.07) > 1e-12 {
		t.Errorf("PercentToFraction(7) = %v, expected 0.07", got)
	}
	if got := FractionToPercent(0.025); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("FractionToPercent(0.025) = %v, expected 2.5", got)
	}
}

func TestMinMaxInt(t *testing.T) {
	if got := MinInt(100, 51); got != 51 {
		t.Errorf("MinInt(100, 51) = %d, expected 51", got)
	}
	if got := MaxInt(-3, 1); got != 1 {
		t.Errorf("MaxInt(-3, 1) = %d, expected 1", got)
	}
}
