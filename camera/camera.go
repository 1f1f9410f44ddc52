// Package camera provides a 2D camera system for viewport control.
package camera

import (
	"math"

	"github.com/pthm-cable/fishfeed/config"
)

// Camera controls the viewport into the playfield.
// Playfield y points up; screen y points down.
type Camera struct {
	// Position is the camera center in playfield coordinates
	X, Y float64

	// Zoom level in screen pixels per playfield unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Playfield bounds; the camera center never leaves them
	Field config.PlayfieldConfig

	// Zoom constraints
	MinZoom, MaxZoom float64

	initialZoom float64
}

// New creates a camera centered on the playfield. A zoom of zero or less
// fits the whole playfield into the viewport.
func New(viewportW, viewportH float64, field config.PlayfieldConfig, zoom float64) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Field:     field,
	}
	c.updateLimits()
	if zoom <= 0 {
		zoom = c.MinZoom
	}
	c.initialZoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole playfield just fits the viewport.
func (c *Camera) fitZoom() float64 {
	w, h := c.Field.Width(), c.Field.Height()
	if w <= 0 || h <= 0 {
		return 1
	}
	return math.Min(c.ViewportW/w, c.ViewportH/h)
}

func (c *Camera) updateLimits() {
	fit := c.fitZoom()
	c.MinZoom = fit
	c.MaxZoom = fit * 4
}

// WorldToScreen converts playfield coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to playfield coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// ScreenToPlayfield is ScreenToWorld with failure reporting: ok is false
// when the camera is degenerate or the result is not a finite point.
// Bounds are not checked here.
func (c *Camera) ScreenToPlayfield(sx, sy float64) (x, y float64, ok bool) {
	if !(c.Zoom > 0) || math.IsInf(c.Zoom, 0) {
		return 0, 0, false
	}
	x, y = c.ScreenToWorld(sx, sy)
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	return x, y, true
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(wx-c.X) <= halfW && math.Abs(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateLimits()
	c.initialZoom = clamp(c.initialZoom, c.MinZoom, c.MaxZoom)
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The center is kept inside the playfield.
func (c *Camera) Pan(dx, dy float64) {
	c.X = clamp(c.X+dx/c.Zoom, c.Field.Left, c.Field.Right)
	c.Y = clamp(c.Y-dy/c.Zoom, c.Field.Floor, c.Field.Top)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the playfield center and initial zoom.
func (c *Camera) Reset() {
	c.X = (c.Field.Left + c.Field.Right) / 2
	c.Y = (c.Field.Floor + c.Field.Top) / 2
	c.Zoom = c.initialZoom
}

// VisibleWorldBounds returns the playfield-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
