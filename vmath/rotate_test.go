package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestRotateAboutY_QuarterTurn(t *testing.T) {
	tests := []struct {
		name  string
		p     Vec3F
		pivot Vec3F
		deg   float64
		want  Vec3F
	}{
		{"x to z", Vec3F{1, 0, 0}, Vec3F{}, 90, Vec3F{0, 0, 1}},
		{"z to -x", Vec3F{0, 0, 1}, Vec3F{}, 90, Vec3F{-1, 0, 0}},
		{"negative angle", Vec3F{1, 0, 0}, Vec3F{}, -90, Vec3F{0, 0, -1}},
		{"half turn keeps y", Vec3F{2, 3, 0}, Vec3F{}, 180, Vec3F{-2, 3, 0}},
		{"offset pivot", Vec3F{2, 0, 1}, Vec3F{1, 5, 1}, 90, Vec3F{1, 0, 2}},
		{"full turn", Vec3F{0.3, 0, -0.4}, Vec3F{}, 360, Vec3F{0.3, 0, -0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateAboutY(tt.p, tt.pivot, tt.deg)
			if !V3FNear(got, tt.want, eps) {
				t.Errorf("RotateAboutY(%v, %v, %v) = %v, want %v", tt.p, tt.pivot, tt.deg, got, tt.want)
			}
		})
	}
}

func TestRotateAboutY_PreservesRadius(t *testing.T) {
	pivot := Vec3F{0.5, -1, 0.25}
	p := Vec3F{1.7, 2, -0.9}
	r0 := V3FHorizDist(p, pivot)

	for _, deg := range []float64{0.001, 1, 13.7, 90, 179.9, 271, -45, 1e4} {
		got := RotateAboutY(p, pivot, deg)
		if r := V3FHorizDist(got, pivot); math.Abs(r-r0) > eps {
			t.Errorf("deg=%v: radius %v, want %v", deg, r, r0)
		}
		if got.Y != p.Y {
			t.Errorf("deg=%v: y changed to %v", deg, got.Y)
		}
	}
}

func TestRotateAboutY_CoincidentPivot(t *testing.T) {
	p := Vec3F{1, 2, 3}
	got := RotateAboutY(p, Vec3F{1, -7, 3}, 42)
	if got != p {
		t.Errorf("zero-radius rotation moved point: %v", got)
	}
}

func TestSpinAndOrbitDegrees(t *testing.T) {
	if got := SpinDegrees(1, 1, 24); got != 360 {
		t.Errorf("SpinDegrees(1,1,24) = %v, want 360", got)
	}
	if got := SpinDegrees(0, 32, 24); got != 0 {
		t.Errorf("SpinDegrees with zero dt = %v, want 0", got)
	}
	if got := OrbitDegrees(365.2, 1, 365.2); math.Abs(got-360) > eps {
		t.Errorf("OrbitDegrees full period = %v, want 360", got)
	}
	if got := OrbitDegrees(1, 32, 88); math.Abs(got-32.0/88*360) > eps {
		t.Errorf("OrbitDegrees fast = %v", got)
	}
}
