package input

import "time"

// DefaultHoldWindow covers the gap between a key press and the terminal's
// first auto-repeat, after which repeats arrive well inside the window
const DefaultHoldWindow = 550 * time.Millisecond

// HoldTracker turns press-only key events into level-triggered held state
// A key counts as held until Window passes without another press or repeat.
// Not safe for concurrent use; feed and poll from the frame goroutine.
type HoldTracker struct {
	Window time.Duration

	lastSeen [KeyCount]time.Time
	scroll   float64
	now      func() time.Time
}

// NewHoldTracker creates a tracker using the wall clock
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{Window: window, now: time.Now}
}

// Press records a press or repeat of k
func (h *HoldTracker) Press(k Key) {
	if k < KeyCount {
		h.lastSeen[k] = h.now()
	}
}

// Release forgets k immediately, for backends that report key-up
func (h *HoldTracker) Release(k Key) {
	if k < KeyCount {
		h.lastSeen[k] = time.Time{}
	}
}

// Scroll accumulates wheel delta until the next Poll
func (h *HoldTracker) Scroll(dy float64) {
	h.scroll += dy
}

// Poll returns held keys and the scroll accumulated since the last Poll
func (h *HoldTracker) Poll() Snapshot {
	now := h.now()
	var s Snapshot
	for k := Key(0); k < KeyCount; k++ {
		seen := h.lastSeen[k]
		if !seen.IsZero() && now.Sub(seen) < h.Window {
			s.held[k] = true
		}
	}
	s.Scroll = h.scroll
	h.scroll = 0
	return s
}
