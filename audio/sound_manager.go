package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orrery/engine"
)

// SoundManager plays cues through the speaker
// Every method is safe to call when initialization failed; cues are then dropped
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	dropped     int
}

// NewSoundManager creates a sound manager; nil cfg means DefaultConfig
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker; the caller logs the error and keeps running without sound
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences pending cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// Play queues cue on the mixer; cues at zero volume are skipped
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.cfg.cueVolume(cue) <= 0 {
		return
	}
	if !sm.initialized {
		sm.dropped++
		return
	}

	s := CueStreamer(cue, sm.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Dropped returns how many cues were discarded while audio was unavailable
func (sm *SoundManager) Dropped() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.dropped
}

// StateEntered implements engine.Cues
func (sm *SoundManager) StateEntered(s engine.AnimState) {
	if cue, ok := cueForState(s); ok {
		sm.Play(cue)
	}
}

// Reset implements engine.Cues
func (sm *SoundManager) Reset() {
	sm.Play(CueReset)
}

// Banished implements engine.Cues
func (sm *SoundManager) Banished(n int) {
	if n > 0 {
		sm.Play(CueBanish)
	}
}

// Returning to AnimNone is silent
func cueForState(s engine.AnimState) (Cue, bool) {
	switch s {
	case engine.AnimGrowing:
		return CueGrow, true
	case engine.AnimShrinking:
		return CueShrink, true
	case engine.AnimPlasma:
		return CuePlasma, true
	}
	return 0, false
}

var _ engine.Cues = (*SoundManager)(nil)
