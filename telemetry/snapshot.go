package telemetry

import (
	"sync/atomic"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/engine"
)

// BodyState is the published view of one body
type BodyState struct {
	Name     string     `json:"name"`
	Parent   string     `json:"parent,omitempty"`
	Position [3]float64 `json:"position"` // simulation units
	Spin     float64    `json:"spin"`     // accumulated degrees
	Radius   float64    `json:"radius"`   // drawn world radius
	Active   bool       `json:"active"`
}

// Snapshot is an immutable copy of simulation state after one tick
type Snapshot struct {
	Frame        uint64      `json:"frame"`
	Elapsed      float64     `json:"elapsed"`
	SpeedFactor  float64     `json:"speed_factor"`
	State        string      `json:"state"`
	SunScale     float64     `json:"sun_scale"`
	ActiveBodies int         `json:"active_bodies"`
	TotalBodies  int         `json:"total_bodies"`
	Camera       [3]float64  `json:"camera"`
	Bodies       []BodyState `json:"bodies,omitempty"`

	anim engine.AnimState
}

// Capture copies the updater state; call on the frame goroutine only
func Capture(u *engine.Updater) *Snapshot {
	cam := u.Scene.Camera.Position
	s := &Snapshot{
		Frame:       u.Ctx.FrameNumber,
		Elapsed:     u.Ctx.Elapsed,
		SpeedFactor: u.Ctx.SpeedFactor,
		State:       u.Sun.State().String(),
		SunScale:    u.Tree.Root.Mesh().Transform.Scale.X,
		TotalBodies: u.Tree.Len(),
		Camera:      [3]float64{cam.X, cam.Y, cam.Z},
		Bodies:      make([]BodyState, 0, u.Tree.Len()),
		anim:        u.Sun.State(),
	}

	u.Tree.Walk(func(b, parent *body.Body) bool {
		st := BodyState{
			Name:     b.Name,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Spin:     b.Spin,
			Radius:   b.Mesh().Radius(),
			Active:   b.Mesh().Visible,
		}
		if parent != nil {
			st.Parent = parent.Name
		}
		if st.Active {
			s.ActiveBodies++
		}
		s.Bodies = append(s.Bodies, st)
		return true
	})
	return s
}

// Summary returns the snapshot without per-body detail
func (s *Snapshot) Summary() Snapshot {
	out := *s
	out.Bodies = nil
	return out
}

// Publisher hands the latest snapshot from the frame goroutine to readers
type Publisher struct {
	latest atomic.Pointer[Snapshot]
}

// Publish replaces the current snapshot; s must not be modified afterwards
func (p *Publisher) Publish(s *Snapshot) {
	p.latest.Store(s)
}

// Latest returns the most recent snapshot, or nil before the first tick
func (p *Publisher) Latest() *Snapshot {
	return p.latest.Load()
}
