package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/orrery/body"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

type recordedCues struct {
	entered []AnimState
	resets  int
	banish  []int
}

func (r *recordedCues) StateEntered(s AnimState) { r.entered = append(r.entered, s) }
func (r *recordedCues) Reset()                   { r.resets++ }
func (r *recordedCues) Banished(n int)           { r.banish = append(r.banish, n) }

func newTestUpdater(t *testing.T) (*Updater, *recordedCues) {
	t.Helper()
	settings := DefaultSettings()
	sc := scene.New()
	tree, err := body.NewTree(body.SolarSystem(settings.MassFactor), sc, settings.DistanceFactor)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	cues := &recordedCues{}
	u, err := NewUpdater(NewContext(settings), tree, sc, cues)
	if err != nil {
		t.Fatalf("NewUpdater: %v", err)
	}
	return u, cues
}

func sunScale(u *Updater) vmath.Vec3F {
	return u.Tree.Root.Mesh().Transform.Scale
}

func TestAnimState_Transitions(t *testing.T) {
	none := input.Snapshot{}
	tests := []struct {
		name   string
		frames []input.Snapshot
		want   AnimState
	}{
		{"initial", []input.Snapshot{none}, AnimNone},
		{"up grows", []input.Snapshot{input.Press(input.KeyUp)}, AnimGrowing},
		{"sticky after release", []input.Snapshot{input.Press(input.KeyUp), none, none}, AnimGrowing},
		{"down shrinks", []input.Snapshot{input.Press(input.KeyDown)}, AnimShrinking},
		{"right plasma", []input.Snapshot{input.Press(input.KeyRight), none}, AnimPlasma},
		{"up beats down", []input.Snapshot{input.Press(input.KeyDown, input.KeyUp)}, AnimGrowing},
		{"down beats right", []input.Snapshot{input.Press(input.KeyRight, input.KeyDown)}, AnimShrinking},
		{"right beats left", []input.Snapshot{input.Press(input.KeyLeft, input.KeyRight)}, AnimPlasma},
		{"left clears", []input.Snapshot{input.Press(input.KeyUp), none, input.Press(input.KeyLeft)}, AnimNone},
		{"pan keys ignored", []input.Snapshot{input.Press(input.KeyDown), input.Press(input.KeyW, input.KeyD)}, AnimShrinking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := newTestUpdater(t)
			for _, f := range tt.frames {
				u.Tick(0.016, f)
			}
			if got := u.Sun.State(); got != tt.want {
				t.Errorf("state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnimState_LeftFromAnyState(t *testing.T) {
	for _, k := range []input.Key{input.KeyUp, input.KeyDown, input.KeyRight, input.KeyLeft} {
		u, _ := newTestUpdater(t)
		u.Tick(0.1, input.Press(k))
		u.Tick(0.1, input.Press(input.KeyLeft))
		if got := u.Sun.State(); got != AnimNone {
			t.Errorf("after %v then left: state = %v, want None", k, got)
		}
	}
}

func TestAnimState_GrowShrinkEffect(t *testing.T) {
	u, _ := newTestUpdater(t)
	rate := 1 / (u.Ctx.MassFactor * u.Ctx.DistanceFactor)

	// First frame transitions and applies the effect
	for i := 0; i < 4; i++ {
		u.Tick(0.25, input.Press(input.KeyUp))
	}
	want := 0.5 + 1.0*rate
	if got := sunScale(u); !vmath.V3FNear(got, vmath.Splat(want), 1e-12) {
		t.Errorf("after 1s growing scale = %v, want %v", got, want)
	}

	// Released: sticky growth continues
	u.Tick(0.5, input.Snapshot{})
	want += 0.5 * rate
	if got := sunScale(u); !vmath.V3FNear(got, vmath.Splat(want), 1e-12) {
		t.Errorf("sticky growth scale = %v, want %v", got, want)
	}

	u.Tick(0.25, input.Press(input.KeyDown))
	want -= 0.25 * rate
	if got := sunScale(u); !vmath.V3FNear(got, vmath.Splat(want), 1e-12) {
		t.Errorf("shrinking scale = %v, want %v", got, want)
	}
}

func TestAnimState_PlasmaAndNoneInert(t *testing.T) {
	u, _ := newTestUpdater(t)
	before := sunScale(u)

	u.Tick(1, input.Press(input.KeyRight))
	u.Tick(1, input.Snapshot{})
	if got := sunScale(u); got != before {
		t.Errorf("plasma changed scale: %v -> %v", before, got)
	}

	u.Tick(1, input.Press(input.KeyLeft))
	if got := sunScale(u); got != before {
		t.Errorf("none changed scale: %v -> %v", before, got)
	}
}

func TestReset_FromAnyState(t *testing.T) {
	for _, k := range []input.Key{input.KeyUp, input.KeyDown, input.KeyRight, input.KeyLeft} {
		u, _ := newTestUpdater(t)
		for i := 0; i < 5; i++ {
			u.Tick(0.3, input.Press(k))
		}

		u.Tick(0.3, input.Press(input.KeyF))

		if got := u.Sun.State(); got != AnimNone {
			t.Errorf("after %v + reset: state = %v, want None", k, got)
		}
		if got := sunScale(u); got != vmath.Splat(1) {
			t.Errorf("after %v + reset: scale = %v, want (1,1,1)", k, got)
		}
	}
}

func TestReset_ThenTransitionSameFrame(t *testing.T) {
	u, _ := newTestUpdater(t)
	u.Tick(0.5, input.Press(input.KeyF, input.KeyUp))

	if got := u.Sun.State(); got != AnimGrowing {
		t.Errorf("state = %v, want Growing", got)
	}
	want := 1 + 0.5*u.Ctx.GrowthRate()
	if got := sunScale(u); !vmath.V3FNear(got, vmath.Splat(want), 1e-12) {
		t.Errorf("scale = %v, want %v", got, want)
	}
}

func TestBanish_LeavesAnimationState(t *testing.T) {
	u, cues := newTestUpdater(t)
	u.Tick(0.1, input.Press(input.KeyDown))
	u.Tick(0.1, input.Press(input.KeyR))
	u.Tick(0.1, input.Press(input.KeyR))

	if got := u.Sun.State(); got != AnimShrinking {
		t.Errorf("banish changed state to %v", got)
	}
	if got := u.Tree.ActiveCount(); got != 3 {
		t.Errorf("ActiveCount = %d, want 3", got)
	}
	if len(cues.banish) != 1 || cues.banish[0] != 3 {
		t.Errorf("banish cues = %v, want [3]", cues.banish)
	}
}

func TestCamera_PanAndScroll(t *testing.T) {
	u, _ := newTestUpdater(t)
	start := u.Scene.Camera.Position

	u.Tick(0.1, input.Press(input.KeyW, input.KeyD))
	want := vmath.V3FAdd(start, vmath.Vec3F{X: 0.5, Z: -0.5})
	if got := u.Scene.Camera.Position; !vmath.V3FNear(got, want, 1e-12) {
		t.Errorf("diagonal pan = %v, want %v", got, want)
	}

	u.Tick(0.1, input.Press(input.KeyA, input.KeyD, input.KeyW, input.KeyS))
	if got := u.Scene.Camera.Position; !vmath.V3FNear(got, want, 1e-12) {
		t.Errorf("opposite keys moved camera to %v", got)
	}

	in := input.Snapshot{Scroll: 2}
	u.Tick(0.5, in)
	want = vmath.V3FAdd(want, vmath.Vec3F{Y: -1, Z: -1})
	if got := u.Scene.Camera.Position; !vmath.V3FNear(got, want, 1e-12) {
		t.Errorf("scroll = %v, want %v", got, want)
	}

	// Scroll ignores frame time
	u2, _ := newTestUpdater(t)
	u2.Tick(0.001, in)
	if got, want := u2.Scene.Camera.Position.Y, start.Y-1; math.Abs(got-want) > 1e-12 {
		t.Errorf("scroll with small dt: y = %v, want %v", got, want)
	}

	if u.Scene.Camera.Rotation != scene.DefaultCamera().Rotation {
		t.Error("camera rotation changed")
	}
}

func TestSpeedToggle(t *testing.T) {
	u, _ := newTestUpdater(t)
	earth := u.Tree.Find("Earth")

	u.Tick(0.1, input.Press(input.KeySpace))
	if u.Ctx.SpeedFactor != 32 {
		t.Errorf("speed while held = %v, want 32", u.Ctx.SpeedFactor)
	}
	fast := earth.Spin

	u.Tick(0.1, input.Snapshot{})
	if u.Ctx.SpeedFactor != 1 {
		t.Errorf("speed after release = %v, want 1", u.Ctx.SpeedFactor)
	}
	slow := earth.Spin - fast

	if math.Abs(fast-32*slow) > 1e-9 {
		t.Errorf("fast spin %v is not 32x slow spin %v", fast, slow)
	}
}

func TestTick_ElapsedHooksAndCues(t *testing.T) {
	u, cues := newTestUpdater(t)

	var frames []uint64
	u.AddHook(func(u *Updater, took time.Duration) {
		if took < 0 {
			t.Errorf("negative tick duration %v", took)
		}
		frames = append(frames, u.Ctx.FrameNumber)
	})

	u.Tick(0.5, input.Press(input.KeyUp))
	u.Tick(0.5, input.Press(input.KeyUp))
	u.Tick(0.5, input.Press(input.KeyF))
	u.Tick(0.5, input.Press(input.KeyF))
	u.PollAndTick(input.SourceFunc(func() input.Snapshot { return input.Press(input.KeyDown) }), 0.5)

	if u.Ctx.Elapsed != 2.5 {
		t.Errorf("elapsed = %v, want 2.5", u.Ctx.Elapsed)
	}
	if len(frames) != 5 || frames[4] != 5 {
		t.Errorf("hook frames = %v", frames)
	}
	if cues.resets != 1 {
		t.Errorf("reset cues = %d, want 1 (edge only)", cues.resets)
	}
	wantEntered := []AnimState{AnimGrowing, AnimShrinking}
	if len(cues.entered) != len(wantEntered) {
		t.Fatalf("entered cues = %v, want %v", cues.entered, wantEntered)
	}
	for i := range wantEntered {
		if cues.entered[i] != wantEntered[i] {
			t.Errorf("entered[%d] = %v, want %v", i, cues.entered[i], wantEntered[i])
		}
	}
}

func TestAnimStateString(t *testing.T) {
	if AnimPlasma.String() != "Plasma" || AnimState(9).String() != "Unknown" {
		t.Errorf("unexpected names: %q %q", AnimPlasma.String(), AnimState(9).String())
	}
}
