package scene

import (
	"image/color"
	"sort"

	"github.com/lixenwraith/orrery/vmath"
)

// Transform is the mutable placement of a drawable
// Rotation is in degrees and treated as periodic, so it may grow without bound
type Transform struct {
	Position vmath.Vec3F
	Rotation vmath.Vec3F
	Scale    vmath.Vec3F
}

// Mesh is a unit sphere drawable; its world radius is Transform.Scale.X
type Mesh struct {
	Name      string
	Color     color.RGBA
	Visible   bool
	Transform Transform
}

// Radius returns the drawn world radius
func (m *Mesh) Radius() float64 {
	return m.Transform.Scale.X
}

// Camera holds position and Euler rotation in degrees, mutated by input only
type Camera struct {
	Position vmath.Vec3F
	Rotation vmath.Vec3F
}

// DefaultCamera looks down at the origin from above and behind
func DefaultCamera() Camera {
	return Camera{
		Position: vmath.Vec3F{X: 0, Y: 7, Z: 7},
		Rotation: vmath.Vec3F{X: -45, Y: 0, Z: 0},
	}
}

// Scene is the flat collection handed to a Renderer each frame
type Scene struct {
	Meshes     []*Mesh
	Camera     Camera
	Background color.RGBA
	Light      vmath.Vec3F
}

// New creates an empty scene with the default camera
func New() *Scene {
	return &Scene{
		Meshes:     make([]*Mesh, 0, 8),
		Camera:     DefaultCamera(),
		Background: color.RGBA{R: 45, G: 45, B: 45, A: 255},
		Light:      vmath.Vec3F{X: 0, Y: 10_000, Z: 0},
	}
}

// Add registers a mesh; the scene keeps the pointer and never copies it
func (s *Scene) Add(m *Mesh) {
	s.Meshes = append(s.Meshes, m)
}

// Renderer draws a scene. Implementations own their surface and must not
// mutate the scene
type Renderer interface {
	Draw(s *Scene) error
}

// DrawOrder projects every visible mesh and returns them far to near
// for painter's algorithm
func (s *Scene) DrawOrder(vp Viewport) []Projected {
	out := make([]Projected, 0, len(s.Meshes))
	for i, m := range s.Meshes {
		if !m.Visible {
			continue
		}
		p, ok := Project(s.Camera, vp, m.Transform.Position, m.Radius())
		if !ok {
			continue
		}
		p.Index = i
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Depth > out[j].Depth
	})
	return out
}
