package engine

import (
	"time"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
)

// TickHook runs after every tick with the time the tick took
type TickHook func(u *Updater, took time.Duration)

// Updater is the frame updater: one Tick per rendered frame
type Updater struct {
	Ctx   *Context
	Tree  *body.Tree
	Scene *scene.Scene
	Sun   *SunAnimator

	cues  Cues
	prev  input.Snapshot
	hooks []TickHook
}

// NewUpdater wires the animator to the tree's root mesh
func NewUpdater(ctx *Context, tree *body.Tree, sc *scene.Scene, cues Cues) (*Updater, error) {
	if cues == nil {
		cues = NopCues{}
	}
	sun, err := NewSunAnimator(tree.Root.Mesh(), ctx.GrowthRate(), cues)
	if err != nil {
		return nil, err
	}
	return &Updater{
		Ctx:   ctx,
		Tree:  tree,
		Scene: sc,
		Sun:   sun,
		cues:  cues,
	}, nil
}

// AddHook registers fn to run after each tick
func (u *Updater) AddHook(fn TickHook) {
	u.hooks = append(u.hooks, fn)
}

// Tick advances the simulation by dt seconds using this frame's input
//
// Order: speed toggle, reset, banish, sun animation, camera, then the
// pre-order body walk, so bodies move at the speed selected this frame.
func (u *Updater) Tick(dt float64, in input.Snapshot) {
	start := time.Now()
	c := u.Ctx

	c.Elapsed += dt
	c.FrameNumber++

	if in.Held(input.KeySpace) {
		c.SpeedFactor = c.FastSpeed
	} else {
		c.SpeedFactor = 1
	}

	if in.Held(input.KeyF) {
		u.Sun.Reset()
		if !u.prev.Held(input.KeyF) {
			u.cues.Reset()
		}
	}
	if in.Held(input.KeyR) {
		if n := u.Tree.Banish(c.BanishCount); n > 0 {
			u.cues.Banished(n)
		}
	}

	u.Sun.Step(in, dt)

	PanCamera(&u.Scene.Camera, in, dt, c.PanSpeed)
	ScrollCamera(&u.Scene.Camera, in.Scroll, c.ScrollStep)

	u.Tree.Update(body.Step{
		Dt:             dt,
		SpeedFactor:    c.SpeedFactor,
		DistanceFactor: c.DistanceFactor,
	})

	u.prev = in

	took := time.Since(start)
	for _, h := range u.hooks {
		h(u, took)
	}
}

// PollAndTick polls src and ticks once; the host loop calls it every frame
func (u *Updater) PollAndTick(src input.Source, dt float64) {
	u.Tick(dt, src.Poll())
}
