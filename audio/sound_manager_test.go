package audio

import (
	"errors"
	"testing"

	"github.com/lixenwraith/orrery/engine"
)

// TestSoundManagerGracefulDegradation verifies cues are dropped, not panicking, without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.StateEntered(engine.AnimGrowing)
	sm.StateEntered(engine.AnimNone)
	sm.Reset()
	sm.Banished(3)
	sm.Banished(0)
	sm.Cleanup()

	// None and a zero banish produce no cue at all
	if got := sm.Dropped(); got != 3 {
		t.Errorf("Dropped() = %d, want 3", got)
	}
}

func TestSoundManagerPlasmaSilentByDefault(t *testing.T) {
	sm := NewSoundManager(nil)
	sm.StateEntered(engine.AnimPlasma)
	if got := sm.Dropped(); got != 0 {
		t.Errorf("Dropped() = %d, want plasma skipped at zero volume", got)
	}

	cfg := DefaultConfig()
	cfg.CueVolumes[CuePlasma] = 0.4
	sm = NewSoundManager(cfg)
	sm.StateEntered(engine.AnimPlasma)
	if got := sm.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1 once plasma has volume", got)
	}
}

func TestSoundManagerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg)

	if err := sm.Initialize(); !errors.Is(err, ErrDisabled) {
		t.Errorf("Initialize() = %v, want ErrDisabled", err)
	}
	sm.Play(CueReset)
	if sm.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", sm.Dropped())
	}
}

// TestSoundManagerInitialization tolerates missing audio devices in CI
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil)

	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	// Second initialization is a no-op
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}
	sm.Play(CueGrow)
	if sm.Dropped() != 0 {
		t.Errorf("cue dropped with an open speaker")
	}
	sm.Cleanup()
}

func TestCueForState(t *testing.T) {
	tests := []struct {
		state engine.AnimState
		cue   Cue
		ok    bool
	}{
		{engine.AnimNone, 0, false},
		{engine.AnimGrowing, CueGrow, true},
		{engine.AnimShrinking, CueShrink, true},
		{engine.AnimPlasma, CuePlasma, true},
	}
	for _, tt := range tests {
		cue, ok := cueForState(tt.state)
		if ok != tt.ok || (ok && cue != tt.cue) {
			t.Errorf("cueForState(%v) = %v, %v; want %v, %v", tt.state, cue, ok, tt.cue, tt.ok)
		}
	}
}

func TestCueNames(t *testing.T) {
	if CueBanish.String() != "banish" || Cue(-1).String() != "unknown" {
		t.Errorf("unexpected names %q %q", CueBanish.String(), Cue(-1).String())
	}
}
