package engine

import (
	"time"

	"github.com/lixenwraith/orrery/engine/fsm"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// AnimState is the sun scale effect
type AnimState uint8

const (
	AnimNone AnimState = iota
	AnimGrowing
	AnimShrinking
	AnimPlasma // reserved; no effect is applied
)

var animNames = [...]string{"None", "Growing", "Shrinking", "Plasma"}

func (a AnimState) String() string {
	if int(a) < len(animNames) {
		return animNames[a]
	}
	return "Unknown"
}

func (a AnimState) stateID() fsm.StateID {
	return fsm.StateID(a) + fsm.StateRoot + 1
}

func animFromState(id fsm.StateID) AnimState {
	return AnimState(id - fsm.StateRoot - 1)
}

// Cues receives notable simulation events, used for audio feedback
type Cues interface {
	StateEntered(AnimState)
	Reset()
	Banished(n int)
}

// NopCues ignores every cue
type NopCues struct{}

func (NopCues) StateEntered(AnimState) {}
func (NopCues) Reset()                 {}
func (NopCues) Banished(int)           {}

// animCtx is the per-frame payload passed to guards and actions
type animCtx struct {
	in    input.Snapshot
	dt    float64
	rate  float64
	mesh  *scene.Mesh
	cues  Cues
	ready bool
}

// SunAnimator drives the sun's scale from the arrow keys
//
// The four states hang off a root node that owns the priority transitions
// Up, Down, Right, Left. When none is held the active state persists.
type SunAnimator struct {
	machine *fsm.Machine[*animCtx]
	ctx     animCtx
}

// NewSunAnimator builds the machine in AnimNone for the given sun mesh
func NewSunAnimator(mesh *scene.Mesh, rate float64, cues Cues) (*SunAnimator, error) {
	if cues == nil {
		cues = NopCues{}
	}
	a := &SunAnimator{
		machine: fsm.NewMachine[*animCtx](),
		ctx:     animCtx{mesh: mesh, rate: rate, cues: cues},
	}

	m := a.machine
	m.AddState(fsm.StateRoot, "Root", fsm.StateNone)
	for s := AnimNone; s <= AnimPlasma; s++ {
		m.AddState(s.stateID(), s.String(), fsm.StateRoot)
		m.OnEnter(s.stateID(), enterCue, s)
	}

	held := func(k input.Key) fsm.GuardFunc[*animCtx] {
		return func(c *animCtx) bool { return c.in.Held(k) }
	}
	m.AddTransition(fsm.StateRoot, fsm.Transition[*animCtx]{TargetID: AnimGrowing.stateID(), Guard: held(input.KeyUp)})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*animCtx]{TargetID: AnimShrinking.stateID(), Guard: held(input.KeyDown)})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*animCtx]{TargetID: AnimPlasma.stateID(), Guard: held(input.KeyRight)})
	m.AddTransition(fsm.StateRoot, fsm.Transition[*animCtx]{TargetID: AnimNone.stateID(), Guard: held(input.KeyLeft)})

	m.OnUpdate(AnimGrowing.stateID(), scaleSun, 1.0)
	m.OnUpdate(AnimShrinking.stateID(), scaleSun, -1.0)

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	if err := m.Init(&a.ctx, AnimNone.stateID()); err != nil {
		return nil, err
	}
	a.ctx.ready = true
	return a, nil
}

func enterCue(c *animCtx, args any) {
	// Init enters AnimNone before any frame; that is not a user action
	if !c.ready {
		return
	}
	c.cues.StateEntered(args.(AnimState))
}

func scaleSun(c *animCtx, args any) {
	delta := args.(float64) * c.dt * c.rate
	s := &c.mesh.Transform.Scale
	*s = vmath.V3FAdd(*s, vmath.Splat(delta))
}

// Step applies this frame's transition, then the active state's effect
func (a *SunAnimator) Step(in input.Snapshot, dt float64) {
	a.ctx.in = in
	a.ctx.dt = dt
	a.machine.Update(&a.ctx, time.Duration(dt*float64(time.Second)))
}

// Reset sets the sun to unit scale and the state to AnimNone
func (a *SunAnimator) Reset() {
	a.ctx.mesh.Transform.Scale = vmath.Splat(1)
	a.machine.Reset()
}

// State returns the active animation state
func (a *SunAnimator) State() AnimState {
	return animFromState(a.machine.Current())
}

// TimeInState returns simulated time since the last state change
func (a *SunAnimator) TimeInState() time.Duration {
	return a.machine.TimeInState()
}
