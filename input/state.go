package input

// Snapshot is the input state for one frame
// Held keys are level-triggered; Scroll is the wheel delta accumulated since
// the previous frame (positive = away from the user)
type Snapshot struct {
	held   [KeyCount]bool
	Scroll float64
}

// Held reports whether k is down this frame
func (s Snapshot) Held(k Key) bool {
	return k < KeyCount && s.held[k]
}

// Set marks k as held or released
func (s *Snapshot) Set(k Key, down bool) {
	if k < KeyCount {
		s.held[k] = down
	}
}

// Press returns a snapshot with the given keys held
func Press(keys ...Key) Snapshot {
	var s Snapshot
	for _, k := range keys {
		s.Set(k, true)
	}
	return s
}

// Source produces one snapshot per frame; called once before each update
type Source interface {
	Poll() Snapshot
}

// SourceFunc adapts a function to Source
type SourceFunc func() Snapshot

func (f SourceFunc) Poll() Snapshot { return f() }
