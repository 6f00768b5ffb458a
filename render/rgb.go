package render

import (
	"image/color"
	"math"
)

// clamp converts float to uint8
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend mixes src over c by alpha; alpha is clamped to [0, 1]
func Blend(c, src color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	inv := 1.0 - alpha
	return color.RGBA{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv),
		A: 255,
	}
}

// Scale multiplies each channel by f
func Scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: clamp(float64(c.R) * f),
		G: clamp(float64(c.G) * f),
		B: clamp(float64(c.B) * f),
		A: 255,
	}
}

const (
	ambient = 0.35
	diffuse = 0.65
)

// Shade lights a point on a unit disc lit from straight above the scene
// dx, dy are the disc-local offsets in [-1, 1], dy growing downward on screen
// Points outside the disc return ok=false
func Shade(c color.RGBA, dx, dy float64) (color.RGBA, bool) {
	d2 := dx*dx + dy*dy
	if d2 > 1 {
		return color.RGBA{}, false
	}
	nz := math.Sqrt(1 - d2)
	// Light direction (0, 1, 0.6) normalized, screen y inverted
	lambert := (-dy*1 + nz*0.6) / math.Sqrt(1.36)
	if lambert < 0 {
		lambert = 0
	}
	return Scale(c, ambient+diffuse*lambert), true
}

// Emissive reports whether a mesh should ignore lighting
// The root body is the light source and is drawn flat
func Emissive(index int) bool {
	return index == 0
}
