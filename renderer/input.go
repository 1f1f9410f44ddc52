package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishfeed/camera"
	"github.com/pthm-cable/fishfeed/systems"
)

// PollPointer appends this frame's pointer events to dst in the order a
// player would produce them: a move, then button changes. Presses are
// suppressed while captured (the pointer is over the HUD).
func PollPointer(dst []systems.InputEvent, captured bool) []systems.InputEvent {
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		pos := rl.GetMousePosition()
		dst = append(dst, systems.MoveEvent(float64(pos.X), float64(pos.Y)))
	}

	if !captured && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		dst = append(dst, systems.PressEvent(true))
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		dst = append(dst, systems.PressEvent(false))
	}
	return dst
}

// HandleCamera applies pan (right drag), zoom (wheel) and reset (Home).
func HandleCamera(cam *camera.Camera) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		cam.Pan(-float64(delta.X), -float64(delta.Y))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := 1.1
		if wheel < 0 {
			factor = 1 / factor
		}
		cam.ZoomBy(factor)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}

	if rl.IsWindowResized() {
		cam.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}
}
