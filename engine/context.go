package engine

// Settings are the fixed scale constants and control tunables
type Settings struct {
	DistanceFactor float64 // simulation units -> render units
	MassFactor     float64 // damps sun growth and planet sizing
	FastSpeed      float64 // speed factor while the fast key is held
	PanSpeed       float64 // camera units per second
	ScrollStep     float64 // camera Y/Z change per wheel notch
	BanishCount    int     // root children hidden by the banish command
}

// DefaultSettings mirrors the classic visualizer constants
func DefaultSettings() Settings {
	return Settings{
		DistanceFactor: 5,
		MassFactor:     .5,
		FastSpeed:      32,
		PanSpeed:       5,
		ScrollStep:     -.5,
		BanishCount:    3,
	}
}

// Context is the explicit simulation state threaded through each tick
// Only the frame goroutine reads or writes it
type Context struct {
	Settings

	SpeedFactor float64 // 1, or FastSpeed while held
	Elapsed     float64 // seconds since start
	FrameNumber uint64
}

// NewContext creates a context at normal speed
func NewContext(s Settings) *Context {
	return &Context{
		Settings:    s,
		SpeedFactor: 1,
	}
}

// GrowthRate returns sun scale change per second while growing or shrinking
func (c *Context) GrowthRate() float64 {
	return 1 / (c.MassFactor * c.DistanceFactor)
}
