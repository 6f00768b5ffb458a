package engine

import (
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/scene"
)

// PanCamera moves the camera on the XZ plane for each held WASD key
// Keys combine additively, so opposite keys cancel and adjacent keys pan diagonally
func PanCamera(cam *scene.Camera, in input.Snapshot, dt, speed float64) {
	step := dt * speed
	if in.Held(input.KeyD) {
		cam.Position.X += step
	}
	if in.Held(input.KeyA) {
		cam.Position.X -= step
	}
	if in.Held(input.KeyW) {
		cam.Position.Z -= step
	}
	if in.Held(input.KeyS) {
		cam.Position.Z += step
	}
}

// ScrollCamera dollies the camera on Y and Z by a fixed multiple of the wheel delta
// Independent of frame time
func ScrollCamera(cam *scene.Camera, delta, step float64) {
	if delta == 0 {
		return
	}
	cam.Position.Y += delta * step
	cam.Position.Z += delta * step
}
