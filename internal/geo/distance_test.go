package geo

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestSeparationIdenticalPoints(t *testing.T) {
	points := []orb.Point{
		{0, 0},
		{12.5, -7.25},
		{-180, 85},
	}

	for _, p := range points {
		if d := Separation(p, p); d != 0 {
			t.Errorf("Separation(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestSeparationSymmetric(t *testing.T) {
	a := orb.Point{-1.5, 52.4}
	b := orb.Point{0.12, 51.5}

	if Separation(a, b) != Separation(b, a) {
		t.Errorf("Separation(a, b) = %v, Separation(b, a) = %v", Separation(a, b), Separation(b, a))
	}
}

func TestSeparationPythagorean(t *testing.T) {
	a := orb.Point{1, 1}
	b := orb.Point{4, 5}

	if d := Separation(a, b); d != 5 {
		t.Errorf("Separation(%v, %v) = %v, want 5", a, b, d)
	}
}
