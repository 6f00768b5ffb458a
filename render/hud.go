package render

import (
	"fmt"

	"github.com/lixenwraith/orrery/engine"
)

// Status is the HUD snapshot taken from the updater after each tick
type Status struct {
	Speed    float64
	State    engine.AnimState
	SunScale float64
	Elapsed  float64
	Active   int
	Total    int
	Frame    uint64
}

// StatusOf reads the HUD fields; call on the frame goroutine only
func StatusOf(u *engine.Updater) Status {
	return Status{
		Speed:    u.Ctx.SpeedFactor,
		State:    u.Sun.State(),
		SunScale: u.Tree.Root.Mesh().Transform.Scale.X,
		Elapsed:  u.Ctx.Elapsed,
		Active:   u.Tree.ActiveCount(),
		Total:    u.Tree.Len(),
		Frame:    u.Ctx.FrameNumber,
	}
}

// Line formats the status row
func (s Status) Line() string {
	return fmt.Sprintf("x%-3.0f %-9s sun %.2f  bodies %d/%d  t %.1fs",
		s.Speed, s.State, s.SunScale, s.Active, s.Total, s.Elapsed)
}

// HelpLine lists the default controls
const HelpLine = "arrows:sun  wasd:pan  wheel:zoom  space:fast  f:reset  r:banish  q:quit"
