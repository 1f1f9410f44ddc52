// Package ui draws the heads-up display and the raygui control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Palette holds the HUD colors and metrics.
type Palette struct {
	Panel, Border rl.Color
	Heading       rl.Color
	Label, Value  rl.Color
	Track         rl.Color
	Starved, Fed  rl.Color // meter fill below and above its midpoint

	Pad, Line, Indent int32
	Text, Title       int32
}

// TankPalette returns the palette used over the water background.
func TankPalette() Palette {
	return Palette{
		Panel:   rl.Color{R: 14, G: 24, B: 34, A: 220},
		Border:  rl.Color{R: 60, G: 90, B: 110, A: 255},
		Heading: rl.Color{R: 240, G: 190, B: 40, A: 255},
		Label:   rl.LightGray,
		Value:   rl.White,
		Track:   rl.Color{R: 30, G: 44, B: 58, A: 255},
		Starved: rl.Color{R: 200, G: 110, B: 90, A: 255},
		Fed:     rl.Color{R: 90, G: 190, B: 120, A: 255},
		Pad:     10,
		Line:    16,
		Indent:  100,
		Text:    12,
		Title:   14,
	}
}

// painter draws text rows and meters with one palette.
type painter struct {
	p Palette
}

func newPainter() painter {
	return painter{p: TankPalette()}
}

func (d painter) panel(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, d.p.Panel)
	rl.DrawRectangleLines(x, y, w, h, d.p.Border)
}

// heading draws a title row and returns the next row's Y.
func (d painter) heading(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, d.p.Title, d.p.Heading)
	return y + d.p.Line
}

// row draws "label: value" and returns the next row's Y.
func (d painter) row(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, d.p.Text, d.p.Label)
	rl.DrawText(value, x+d.p.Indent, y, d.p.Text, d.p.Value)
	return y + d.p.Line
}

// meter draws a fraction in [0, 1] as a filled track, blending from the
// starved color to the fed color, and returns the next row's Y.
func (d painter) meter(x, y, width int32, label string, frac float64) int32 {
	frac = min(max(frac, 0), 1)
	trackX := x + d.p.Indent
	trackW := width - d.p.Indent - 40

	rl.DrawText(label, x, y, d.p.Text, d.p.Label)
	rl.DrawRectangle(trackX, y+2, trackW, d.p.Text, d.p.Track)
	fill := blend(d.p.Starved, d.p.Fed, frac)
	rl.DrawRectangle(trackX, y+2, int32(float64(trackW)*frac), d.p.Text, fill)
	rl.DrawText(fmt.Sprintf("%3.0f%%", frac*100), trackX+trackW+5, y, d.p.Text, d.p.Value)
	return y + d.p.Line + 2
}

func blend(a, b rl.Color, t float64) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
