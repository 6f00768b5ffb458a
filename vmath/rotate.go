package vmath

import "github.com/go-gl/mathgl/mgl64"

// RotateAboutY rotates p around the vertical axis through pivot by deg degrees
// Only the pivot's X and Z are used; p.Y is preserved
// Positive angles turn +X toward +Z
func RotateAboutY(p, pivot Vec3F, deg float64) Vec3F {
	dx := p.X - pivot.X
	dz := p.Z - pivot.Z
	if dx == 0 && dz == 0 {
		return p
	}

	r := mgl64.Rotate2D(mgl64.DegToRad(deg)).Mul2x1(mgl64.Vec2{dx, dz})

	return Vec3F{
		X: r[0] + pivot.X,
		Y: p.Y,
		Z: r[1] + pivot.Z,
	}
}

// SpinDegrees returns the self-rotation advance for one step
// dayHours is the body's day length, normalized against a 24 hour reference day
func SpinDegrees(dt, speed, dayHours float64) float64 {
	return dt * speed * (24 / dayHours * 360)
}

// OrbitDegrees returns the orbital advance for one step
func OrbitDegrees(dt, speed, period float64) float64 {
	return dt * speed / period * 360
}
