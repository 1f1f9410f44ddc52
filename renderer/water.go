// Package renderer draws the playfield and its sprites with raylib.
// It only reads simulation state.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishfeed/camera"
)

// Water palette.
var (
	waterTop    = rl.Color{R: 58, G: 142, B: 186, A: 255}
	waterBottom = rl.Color{R: 18, G: 52, B: 92, A: 255}
	sandColor   = rl.Color{R: 194, G: 170, B: 116, A: 255}
	outsideBg   = rl.Color{R: 10, G: 16, B: 24, A: 255}
	causticTint = rl.Color{R: 255, G: 255, B: 255, A: 18}
)

// WaterBackground renders the tank: a vertical water gradient over the
// playfield, drifting light bands and a sand bed below the floor.
type WaterBackground struct {
	width, height float32
	bands         int
}

// NewWaterBackground creates a background for a screen of the given size.
func NewWaterBackground(width, height int32) *WaterBackground {
	return &WaterBackground{
		width:  float32(width),
		height: float32(height),
		bands:  5,
	}
}

// Resize updates the screen size.
func (w *WaterBackground) Resize(width, height int32) {
	w.width = float32(width)
	w.height = float32(height)
}

// Draw renders the background. t is wall time in seconds.
func (w *WaterBackground) Draw(cam *camera.Camera, t float64) {
	rl.DrawRectangle(0, 0, int32(w.width), int32(w.height), outsideBg)

	f := cam.Field
	left, top := cam.WorldToScreen(f.Left, f.Top)
	right, floor := cam.WorldToScreen(f.Right, f.Floor)
	width := int32(right - left)
	height := int32(floor - top)
	if width <= 0 || height <= 0 {
		return
	}

	rl.DrawRectangleGradientV(int32(left), int32(top), width, height, waterTop, waterBottom)

	// Slow light bands near the surface
	bandH := float64(height) / 6
	for i := 0; i < w.bands; i++ {
		phase := t*0.4 + float64(i)*1.7
		x := left + (0.5+0.5*math.Sin(phase))*float64(width)
		bandW := float64(width) / 10
		rl.DrawRectangle(int32(x-bandW/2), int32(top), int32(bandW), int32(bandH), causticTint)
	}

	sandH := int32(cam.Zoom * 6)
	rl.DrawRectangle(int32(left), int32(floor), width, sandH, sandColor)
}
