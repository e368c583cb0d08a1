package coord

import (
	"math"
	"testing"
)

func TestUnrefractNearHorizon(t *testing.T) {
	floor := refractionFloor(DefaultRefraction)
	if deg := floor * 360; deg < 0.9 || deg > 1.1 {
		t.Fatalf("refractionFloor = %v deg, want about 1", deg)
	}

	tests := []struct {
		name string
		el   float64 // true elevation, turns
	}{
		{"1.5 deg", 1.5 / 360},
		{"1.8 deg", 0.005},
		{"3.6 deg", 0.01},
		{"7.2 deg", 0.02},
		{"10 deg", 10.0 / 360},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := Refract(tt.el, DefaultRefraction)
			got, n := Unrefract(app, DefaultRefraction)
			if d := math.Abs(got - tt.el); d > unrefractTolerance {
				t.Errorf("Unrefract(Refract(%v)) = %v, want %v (±%v, off by %v)", tt.el, got, tt.el, unrefractTolerance, d)
			}
			if n > unrefractIterations {
				t.Errorf("Unrefract used %d iterations", n)
			}
		})
	}
}

func TestUnrefractBelowFloor(t *testing.T) {
	floor := refractionFloor(DefaultRefraction)

	// A true elevation under the floor refracts onto the same apparent
	// elevation as one above it; the higher one is returned.
	app := Refract(0.002, DefaultRefraction)
	got, _ := Unrefract(app, DefaultRefraction)
	if got < floor {
		t.Errorf("Unrefract(%v) = %v, below floor %v", app, got, floor)
	}
	if d := math.Abs(Refract(got, DefaultRefraction) - app); d > 1e-9 {
		t.Errorf("Refract(Unrefract(%v)) = %v, off by %v", app, Refract(got, DefaultRefraction), d)
	}

	// Lower than any refracted elevation.
	if got, n := Unrefract(0.004, DefaultRefraction); got != floor || n != 0 {
		t.Errorf("Unrefract(0.004) = %v, %d; want floor %v", got, n, floor)
	}
}
