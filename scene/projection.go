package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/vmath"
)

const (
	DefaultFovY = 60.0
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Viewport describes the drawing surface in its native units
// CellAspect is the height/width ratio of one unit (2 for terminal cells, 1 for pixels)
type Viewport struct {
	Width, Height float64
	CellAspect    float64
	FovY          float64 // degrees
	Near, Far     float64
}

// NewViewport returns a viewport with default lens settings
func NewViewport(w, h int, cellAspect float64) Viewport {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	return Viewport{
		Width:      float64(w),
		Height:     float64(h),
		CellAspect: cellAspect,
		FovY:       DefaultFovY,
		Near:       DefaultNear,
		Far:        DefaultFar,
	}
}

// Projected is a mesh mapped onto the viewport
// RadiusY is in vertical units; horizontal radius is RadiusY*CellAspect
type Projected struct {
	X, Y    float64
	RadiusY float64
	RadiusX float64
	Depth   float64
	Index   int
}

// ViewMatrix returns the world-to-camera transform
func (c Camera) ViewMatrix() mgl64.Mat4 {
	model := mgl64.Translate3D(c.Position.X, c.Position.Y, c.Position.Z).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(c.Rotation.Y))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(c.Rotation.X))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(c.Rotation.Z)))
	return model.Inv()
}

// ProjectionMatrix returns the perspective matrix for the viewport
func (vp Viewport) ProjectionMatrix() mgl64.Mat4 {
	aspect := 1.0
	if vp.Height > 0 {
		aspect = vp.Width / (vp.Height * vp.CellAspect)
	}
	return mgl64.Perspective(mgl64.DegToRad(vp.FovY), aspect, vp.Near, vp.Far)
}

// Project maps a world-space sphere onto the viewport
// Returns false when the sphere is behind the camera, beyond the far plane,
// or entirely off-screen
func Project(cam Camera, vp Viewport, pos vmath.Vec3F, radius float64) (Projected, bool) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return Projected{}, false
	}

	proj := vp.ProjectionMatrix()
	clip := proj.Mul4(cam.ViewMatrix()).Mul4x1(pos.ToMgl().Vec4(1))

	w := clip.W()
	if w <= vp.Near || w >= vp.Far {
		return Projected{}, false
	}

	ndcX := clip.X() / w
	ndcY := clip.Y() / w

	ry := radius * proj.At(1, 1) / w * vp.Height / 2
	p := Projected{
		X:       (ndcX + 1) / 2 * vp.Width,
		Y:       (1 - ndcY) / 2 * vp.Height,
		RadiusY: ry,
		RadiusX: ry * vp.CellAspect,
		Depth:   w,
	}

	if p.X+p.RadiusX < 0 || p.X-p.RadiusX > vp.Width || p.Y+p.RadiusY < 0 || p.Y-p.RadiusY > vp.Height {
		return Projected{}, false
	}
	return p, true
}
