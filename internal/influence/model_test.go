package influence

import (
	"math"
	"testing"
)

// TestTemperatureAtZeroTrust verifies the baseline temperature is unmodified.
func TestTemperatureAtZeroTrust(t *testing.T) {
	got := Temperature(0, 0.7, 0.8)
	if got != 0.7 {
		t.Fatalf("expected 0.7, got %v", got)
	}
}

// TestTemperatureAtFullTrust verifies the damped temperature at mu=1.
func TestTemperatureAtFullTrust(t *testing.T) {
	got := Temperature(1, 0.7, 0.8)
	want := 0.7 / 1.8
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestTemperatureClampsNegativeTrust verifies distrust gives no boost.
func TestTemperatureClampsNegativeTrust(t *testing.T) {
	if got := Temperature(-3.0, 0.7, 0.8); got != 0.7 {
		t.Fatalf("expected negative mu to behave as 0, got %v", got)
	}
}

// TestTemperatureStaysInBounds verifies clamping over a wide mu range.
func TestTemperatureStaysInBounds(t *testing.T) {
	cases := []struct {
		mu, t0, alpha float64
	}{
		{0, 0.7, 0.8},
		{1, 0.7, 0.8},
		{100, 0.7, 0.8},
		{-100, 0.7, 0.8},
		{0, 5.0, 0.1},
		{0.5, 0.01, 0.8},
	}
	for _, c := range cases {
		got := Temperature(c.mu, c.t0, c.alpha)
		if got < MinTemperature || got > MaxTemperature {
			t.Fatalf("Temperature(%v,%v,%v)=%v out of [%v,%v]", c.mu, c.t0, c.alpha, got, MinTemperature, MaxTemperature)
		}
	}
}

// TestMixingMidpoint verifies the logistic crosses 0.5 exactly at mu==tau.
func TestMixingMidpoint(t *testing.T) {
	for _, c := range []struct{ k, tau float64 }{
		{6.0, 0.5},
		{3.0, 0.4},
		{12.0, 0.7},
	} {
		if got := Mixing(c.tau, c.k, c.tau); got != 0.5 {
			t.Fatalf("Mixing(%v,%v,%v)=%v, expected exactly 0.5", c.tau, c.k, c.tau, got)
		}
	}
}

// TestMixingSaturates verifies asymptotic behavior away from tau.
func TestMixingSaturates(t *testing.T) {
	low := Mixing(0.0, 6.0, 0.5)
	high := Mixing(1.0, 6.0, 0.5)
	if low <= 0.0 || low >= 0.5 {
		t.Fatalf("expected 0 < Mixing(0) < 0.5, got %v", low)
	}
	if high <= 0.5 || high >= 1.0 {
		t.Fatalf("expected 0.5 < Mixing(1) < 1, got %v", high)
	}
}
