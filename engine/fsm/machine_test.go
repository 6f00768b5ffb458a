package fsm

import (
	"testing"
	"time"
)

const (
	stateIdle StateID = iota + 2
	stateRun
	stateRunFast
	stateStop
)

type testCtx struct {
	run, fast, stop bool
	log             []string
	ticks           int
}

func record(name string) ActionFunc[*testCtx] {
	return func(c *testCtx, _ any) { c.log = append(c.log, name) }
}

func buildMachine(t *testing.T) *Machine[*testCtx] {
	t.Helper()
	m := NewMachine[*testCtx]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stateIdle, "Idle", StateRoot)
	m.AddState(stateRun, "Run", StateRoot)
	m.AddState(stateRunFast, "RunFast", stateRun)
	m.AddState(stateStop, "Stop", StateRoot)

	// Root-level priority transitions reached by bubbling
	m.AddTransition(StateRoot, Transition[*testCtx]{TargetID: stateRunFast, Guard: func(c *testCtx) bool { return c.fast }})
	m.AddTransition(StateRoot, Transition[*testCtx]{TargetID: stateRun, Guard: func(c *testCtx) bool { return c.run }})
	m.AddTransition(StateRoot, Transition[*testCtx]{TargetID: stateStop, Guard: func(c *testCtx) bool { return c.stop }})

	m.OnEnter(stateRun, record("enter Run"), nil)
	m.OnExit(stateRun, record("exit Run"), nil)
	m.OnEnter(stateRunFast, record("enter RunFast"), nil)
	m.OnExit(stateRunFast, record("exit RunFast"), nil)
	m.OnEnter(stateStop, record("enter Stop"), nil)
	m.OnUpdate(stateRun, func(c *testCtx, _ any) { c.ticks++ }, nil)
	m.OnUpdate(stateRunFast, func(c *testCtx, args any) { c.ticks += args.(int) }, 10)

	if err := m.CompilePaths(); err != nil {
		t.Fatalf("CompilePaths: %v", err)
	}
	return m
}

func TestMachine_PriorityAndSticky(t *testing.T) {
	m := buildMachine(t)
	ctx := &testCtx{}
	if err := m.Init(ctx, stateIdle); err != nil {
		t.Fatalf("Init: %v", err)
	}

	steps := []struct {
		run, fast, stop bool
		want            StateID
	}{
		{false, false, false, stateIdle},
		{true, false, false, stateRun},
		{false, false, false, stateRun}, // sticky
		{true, true, false, stateRunFast},
		{true, false, true, stateRun},
		{false, false, true, stateStop},
		{false, false, false, stateStop},
	}

	for i, s := range steps {
		ctx.run, ctx.fast, ctx.stop = s.run, s.fast, s.stop
		m.Update(ctx, 10*time.Millisecond)
		if got := m.Current(); got != s.want {
			t.Fatalf("step %d: state %s, want %s", i, m.StateName(got), m.StateName(s.want))
		}
	}
}

func TestMachine_LCAActions(t *testing.T) {
	m := buildMachine(t)
	ctx := &testCtx{}
	if err := m.Init(ctx, stateRun); err != nil {
		t.Fatalf("Init: %v", err)
	}
	ctx.log = nil

	// Run -> RunFast shares Run, so only RunFast enters
	m.TransitionTo(ctx, stateRunFast)
	// RunFast -> Stop exits both
	m.TransitionTo(ctx, stateStop)

	want := []string{"enter RunFast", "exit RunFast", "exit Run", "enter Stop"}
	if len(ctx.log) != len(want) {
		t.Fatalf("log = %v, want %v", ctx.log, want)
	}
	for i := range want {
		if ctx.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, ctx.log[i], want[i])
		}
	}
}

func TestMachine_SelfTransitionNoop(t *testing.T) {
	m := buildMachine(t)
	ctx := &testCtx{run: true}
	if err := m.Init(ctx, stateIdle); err != nil {
		t.Fatalf("Init: %v", err)
	}

	m.Update(ctx, time.Millisecond)
	m.Update(ctx, time.Millisecond)
	m.Update(ctx, time.Millisecond)

	enters := 0
	for _, l := range ctx.log {
		if l == "enter Run" {
			enters++
		}
	}
	if enters != 1 {
		t.Errorf("Run entered %d times, want 1", enters)
	}
	if ctx.ticks != 3 {
		t.Errorf("OnUpdate ran %d times, want 3", ctx.ticks)
	}
	if m.TimeInState() != 2*time.Millisecond {
		t.Errorf("TimeInState = %v, want 2ms", m.TimeInState())
	}
}

func TestMachine_UpdateAfterTransitionUsesNewLeaf(t *testing.T) {
	m := buildMachine(t)
	ctx := &testCtx{fast: true}
	if err := m.Init(ctx, stateIdle); err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.Update(ctx, time.Millisecond)
	if ctx.ticks != 10 {
		t.Errorf("ticks = %d, want 10 from RunFast OnUpdate args", ctx.ticks)
	}
}

func TestMachine_Reset(t *testing.T) {
	m := buildMachine(t)
	ctx := &testCtx{stop: true}
	if err := m.Init(ctx, stateIdle); err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.Update(ctx, time.Millisecond)
	ctx.log = nil

	m.Reset()
	if m.Current() != stateIdle {
		t.Errorf("Reset left state %s", m.StateName(m.Current()))
	}
	if len(ctx.log) != 0 {
		t.Errorf("Reset ran actions: %v", ctx.log)
	}
}

func TestMachine_Errors(t *testing.T) {
	m := NewMachine[*testCtx]()
	m.AddState(StateRoot, "Root", StateNone)
	m.AddState(stateIdle, "Idle", 99)
	if err := m.CompilePaths(); err == nil {
		t.Error("CompilePaths accepted a missing parent")
	}

	m2 := buildMachine(t)
	if err := m2.Init(&testCtx{}, 42); err == nil {
		t.Error("Init accepted an unknown state")
	}
}
