package audio

import (
	"time"
)

// Config controls the cue player
type Config struct {
	Enabled    bool
	Volume     float64 // master, 0.0-1.0
	SampleRate int
	CueVolumes map[Cue]float64
}

// DefaultConfig returns enabled audio at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: 44100,
		CueVolumes: map[Cue]float64{
			CueGrow:   0.6,
			CueShrink: 0.6,
			CuePlasma: 0, // reserved state; raise to hear it
			CueReset:  0.8,
			CueBanish: 0.7,
		},
	}
}

// cueVolume is the final linear gain for cue
func (c *Config) cueVolume(cue Cue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1
	}
	return v * c.Volume
}

// Tone timing
const (
	sweepDuration  = 180 * time.Millisecond
	sweepAttack    = 10 * time.Millisecond
	sweepRelease   = 60 * time.Millisecond
	plasmaDuration = 250 * time.Millisecond
	plasmaAttack   = 30 * time.Millisecond
	plasmaRelease  = 150 * time.Millisecond
	resetNote      = 90 * time.Millisecond
	resetAttack    = 5 * time.Millisecond
	resetRelease   = 40 * time.Millisecond
	banishDuration = 300 * time.Millisecond
	banishAttack   = 5 * time.Millisecond
	banishRelease  = 220 * time.Millisecond

	speakerBuffer = 100 * time.Millisecond
)
