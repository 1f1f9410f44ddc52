package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel displays.
type ControlsState struct {
	Volume float64
	Muted  bool
	Paused bool
}

// ControlsAction reports what the user changed this frame.
type ControlsAction struct {
	Volume        float64
	VolumeChanged bool
	TogglePause   bool
	ToggleMute    bool
	Restart       bool
}

// ControlsPanel renders the raygui panel with volume, pause, mute and
// restart controls in the top-right corner.
type ControlsPanel struct {
	draw   painter
	x, y   int32
	width  int32
	height int32
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		draw:   newPainter(),
		x:      x,
		y:      y,
		width:  width,
		height: 90,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether a screen point is over the panel, so clicks
// there are not treated as feeding presses.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height)
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(state ControlsState) ControlsAction {
	d := c.draw
	pad := float32(d.p.Pad)
	x := float32(c.x) + pad
	y := float32(c.y) + pad
	inner := float32(c.width) - 2*pad

	d.panel(c.x, c.y, c.width, c.height)

	action := ControlsAction{Volume: state.Volume}

	rl.DrawText("Volume", int32(x), int32(y), d.p.Text, d.p.Label)
	y += 16
	volume := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner - 40, Height: 16},
		"", "",
		float32(state.Volume), 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.0f%%", state.Volume*100), int32(x+inner-34), int32(y+2), d.p.Text, d.p.Value)
	if float64(volume) != state.Volume {
		action.Volume = float64(volume)
		action.VolumeChanged = true
	}
	y += 26

	third := (inner - 2*6) / 3
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: third, Height: 28}, toggleText(state.Paused, "Resume", "Pause")) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + third + 6, Y: y, Width: third, Height: 28}, toggleText(state.Muted, "Unmute", "Mute")) {
		action.ToggleMute = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(third+6), Y: y, Width: third, Height: 28}, "Restart") {
		action.Restart = true
	}

	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
