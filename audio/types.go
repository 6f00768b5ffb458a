package audio

import (
	"errors"
)

// Cue identifies one short feedback sound
type Cue int

const (
	CueGrow    Cue = iota // Sun starts growing
	CueShrink             // Sun starts shrinking
	CuePlasma             // Plasma state entered
	CueReset              // Sun reset to unit scale
	CueBanish             // Bodies removed from view
	cueCount
)

var cueNames = [cueCount]string{"grow", "shrink", "plasma", "reset", "banish"}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// Sentinel errors
var (
	ErrDisabled = errors.New("audio disabled")
)
