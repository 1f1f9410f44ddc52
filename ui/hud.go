package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishfeed/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Level   string
	Fish    int
	Pellets int
	Tick    int32
	FPS     int32
	Paused  bool
	Stats   telemetry.WindowStats
	TopFish []telemetry.FishRecord
}

// HUD renders the main heads-up display.
type HUD struct {
	draw painter
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{draw: newPainter()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	d := h.draw
	rl.DrawText(data.Level, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Fish: %d | Pellets: %d | Tick: %d | FPS: %d", data.Fish, data.Pellets, data.Tick, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	y := int32(80)
	y = d.meter(10, y, 240, "Catch rate", data.Stats.CatchRate)
	y = d.meter(10, y, 240, "Eating", data.Stats.EatingFrac)
	y = d.row(10, y, "Time to catch", fmt.Sprintf("%.1fs (p90 %.1fs)", data.Stats.LifetimeP50, data.Stats.LifetimeP90))

	if len(data.TopFish) == 0 {
		return
	}
	y = d.heading(10, y+4, "Best fed")
	for _, f := range data.TopFish {
		if f.Meals == 0 {
			break
		}
		y = d.row(10, y, fmt.Sprintf("#%d %s", f.FishID, f.Variant), fmt.Sprintf("%d meals", f.Meals))
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel. Phases above a quarter of the tick
// are orange, above half red.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg tick: %s  p99: %s",
		stats.AvgTick.Round(time.Microsecond), stats.P99Tick.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, ph := range stats.Phases {
		color := rl.LightGray
		switch {
		case ph.Pct > 50:
			color = rl.Red
		case ph.Pct > 25:
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", ph.Phase.Info().Name, ph.Avg.Round(time.Microsecond), ph.Pct),
			x, y, 12, color,
		)
		y += 14
	}
}
