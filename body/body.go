package body

import (
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// Step carries the per-frame simulation inputs for one traversal
type Step struct {
	Dt             float64
	SpeedFactor    float64
	DistanceFactor float64
}

// Body is one node of the celestial hierarchy
// Position is in simulation units; the mesh receives Position*DistanceFactor
type Body struct {
	Name     string
	Diameter float64
	Day      float64
	Period   float64

	Position vmath.Vec3F
	Spin     float64 // accumulated self-rotation, degrees

	Children []*Body

	parent *Body
	active bool
	mesh   *scene.Mesh
}

// New builds a body tree from spec and registers one mesh per body in sc
func New(spec Spec, sc *scene.Scene, distanceFactor float64) (*Body, error) {
	if sc == nil {
		return nil, ErrNoScene
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return build(spec, sc, distanceFactor), nil
}

// build assumes spec was validated
func build(spec Spec, sc *scene.Scene, distanceFactor float64) *Body {
	day := spec.Day
	if day == 0 {
		day = defaultDayHours
	}
	clr, _ := parseColor(spec.Color)

	b := &Body{
		Name:     spec.Name,
		Diameter: spec.Diameter,
		Day:      day,
		Period:   spec.Period,
		Position: vmath.Vec3F{X: spec.Position[0], Y: spec.Position[1], Z: spec.Position[2]},
		Children: make([]*Body, 0, len(spec.Children)),
		active:   true,
	}

	// Unit sphere mesh has radius 1, so half the diameter is the scale
	b.mesh = &scene.Mesh{
		Name:    spec.Name,
		Color:   clr,
		Visible: true,
		Transform: scene.Transform{
			Position: vmath.V3FScale(b.Position, distanceFactor),
			Scale:    vmath.Splat(0.5 * spec.Diameter),
		},
	}
	sc.Add(b.mesh)

	for _, cs := range spec.Children {
		c := build(cs, sc, distanceFactor)
		c.parent = b
		b.Children = append(b.Children, c)
	}
	return b
}

// Parent returns the body this one orbits, nil for the root
func (b *Body) Parent() *Body {
	return b.parent
}

// Mesh returns the render transform owner for this body
func (b *Body) Mesh() *scene.Mesh {
	return b.mesh
}

// Active reports whether the body takes part in updates and drawing
func (b *Body) Active() bool {
	return b.active
}

// SetActive toggles the body; an inactive body hides its whole subtree
func (b *Body) SetActive(active bool) {
	b.active = active
	b.refreshVisibility(b.parent == nil || b.parent.mesh.Visible)
}

func (b *Body) refreshVisibility(parentVisible bool) {
	visible := parentVisible && b.active
	b.mesh.Visible = visible
	for _, c := range b.Children {
		c.refreshVisibility(visible)
	}
}

// Rotate advances self-rotation and publishes it to the mesh
func (b *Body) Rotate(s Step) {
	b.Spin += vmath.SpinDegrees(s.Dt, s.SpeedFactor, b.Day)
	b.mesh.Transform.Rotation.Y = b.Spin
}

// Orbit advances the body around parent's current position by one step
func (b *Body) Orbit(parent *Body, s Step) {
	b.OrbitBy(parent, vmath.OrbitDegrees(s.Dt, s.SpeedFactor, b.Period), s.DistanceFactor)
}

// OrbitBy rotates the body around parent by an explicit angle in degrees
func (b *Body) OrbitBy(parent *Body, deg, distanceFactor float64) {
	b.Position = vmath.RotateAboutY(b.Position, parent.Position, deg)
	b.mesh.Transform.Position = vmath.V3FScale(b.Position, distanceFactor)
}

// update is the pre-order step: self first, then children against the new position
func (b *Body) update(s Step, parent *Body) {
	if !b.active {
		return
	}

	b.Rotate(s)
	if parent != nil {
		b.Orbit(parent, s)
	}

	for _, c := range b.Children {
		c.update(s, b)
	}
}
