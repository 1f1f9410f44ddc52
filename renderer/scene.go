package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishfeed/camera"
	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/game"
)

// Sprite palette.
var (
	fishCommon    = rl.Color{R: 150, G: 156, B: 164, A: 255}
	fishRare      = rl.Color{R: 240, G: 190, B: 40, A: 255}
	fishEye       = rl.Color{R: 20, G: 20, B: 24, A: 255}
	pelletColor   = rl.Color{R: 120, G: 72, B: 36, A: 255}
	algaColor     = rl.Color{R: 60, G: 150, B: 70, A: 255}
	dispenserBody = rl.Color{R: 210, G: 80, B: 60, A: 255}
)

// Sprite sizes in playfield units.
const (
	fishHalfLength = 7.0
	fishHalfHeight = 4.0
	pelletRadius   = 1.5
	algaSegment    = 8.0
	dispenserSize  = 6.0
)

// Scene draws the tank and every sprite through a camera.
type Scene struct {
	cam        *camera.Camera
	background *WaterBackground
	sprites    []game.Sprite
}

// NewScene creates a scene for a screen of the given size.
func NewScene(cam *camera.Camera, width, height int32) *Scene {
	return &Scene{
		cam:        cam,
		background: NewWaterBackground(width, height),
	}
}

// Resize updates the screen size.
func (s *Scene) Resize(width, height int32) {
	s.background.Resize(width, height)
}

// Draw renders the current game state. t is wall time in seconds.
func (s *Scene) Draw(g *game.Game, t float64) {
	s.background.Draw(s.cam, t)

	s.sprites = g.Sprites(s.sprites[:0])
	for i := range s.sprites {
		sp := &s.sprites[i]
		if !s.cam.IsVisible(sp.X, sp.Y, 2*fishHalfLength) {
			continue
		}
		switch sp.Kind {
		case game.SpriteProp:
			s.drawAlga(sp)
		case game.SpriteFish:
			s.drawFish(sp)
		case game.SpritePellet:
			s.drawPellet(sp)
		case game.SpritePlayer:
			s.drawDispenser(sp)
		}
	}
}

// screen converts a playfield point to a raylib vector.
func (s *Scene) screen(x, y float64) rl.Vector2 {
	sx, sy := s.cam.WorldToScreen(x, y)
	return rl.NewVector2(float32(sx), float32(sy))
}

func (s *Scene) scale(units float64) float32 {
	return float32(units * s.cam.Zoom)
}

// drawAlga draws a swaying stem; the frame selects the lean direction.
func (s *Scene) drawAlga(sp *game.Sprite) {
	segments := 1
	if sp.Family == "alga_1x2" {
		segments = 2
	}
	lean := 1.5
	if sp.Frame%2 == 1 {
		lean = -lean
	}

	base := s.screen(sp.X, sp.Y)
	for i := 1; i <= segments; i++ {
		dx := lean * float64(i) / float64(segments)
		if i%2 == 0 {
			dx = -dx
		}
		tip := s.screen(sp.X+dx, sp.Y+algaSegment*float64(i))
		rl.DrawLineEx(base, tip, s.scale(2), algaColor)
		base = tip
	}
}

// drawFish draws an ellipse body with a tail on the trailing side.
// Frames: 0 swim left, 1 swim right, 2 eat left, 3 eat right.
func (s *Scene) drawFish(sp *game.Sprite) {
	color := fishCommon
	if sp.Variant == components.VariantRare {
		color = fishRare
	}
	dir := -1.0
	if sp.Frame%2 == 1 {
		dir = 1
	}

	center := s.screen(sp.X, sp.Y)
	rl.DrawEllipse(int32(center.X), int32(center.Y), s.scale(fishHalfLength), s.scale(fishHalfHeight), color)

	tailBase := s.screen(sp.X-dir*fishHalfLength, sp.Y)
	tailTop := s.screen(sp.X-dir*(fishHalfLength+4), sp.Y+3)
	tailBottom := s.screen(sp.X-dir*(fishHalfLength+4), sp.Y-3)
	// raylib expects counter-clockwise vertices
	if dir < 0 {
		rl.DrawTriangle(tailBase, tailTop, tailBottom, color)
	} else {
		rl.DrawTriangle(tailBase, tailBottom, tailTop, color)
	}

	eye := s.screen(sp.X+dir*fishHalfLength*0.5, sp.Y+1)
	rl.DrawCircleV(eye, s.scale(0.8), fishEye)

	if sp.Frame >= 2 {
		mouth := s.screen(sp.X+dir*fishHalfLength*0.9, sp.Y-1)
		rl.DrawCircleV(mouth, s.scale(1.2), fishEye)
	}
}

func (s *Scene) drawPellet(sp *game.Sprite) {
	rl.DrawCircleV(s.screen(sp.X, sp.Y), s.scale(pelletRadius), pelletColor)
}

// drawDispenser draws the player; frame 1 means cooling down.
func (s *Scene) drawDispenser(sp *game.Sprite) {
	color := dispenserBody
	if sp.Frame == 1 {
		color = rl.Fade(color, 0.5)
	}
	topLeft := s.screen(sp.X-dispenserSize/2, sp.Y+dispenserSize/2)
	size := s.scale(dispenserSize)
	rl.DrawRectangleRec(rl.NewRectangle(topLeft.X, topLeft.Y, size, size), color)
}
