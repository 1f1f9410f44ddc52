package game

import "github.com/pthm-cable/fishfeed/components"

// SpriteKind identifies what a sprite depicts.
type SpriteKind uint8

const (
	SpriteProp SpriteKind = iota
	SpriteFish
	SpritePellet
	SpritePlayer
)

// String returns the kind name.
func (k SpriteKind) String() string {
	switch k {
	case SpriteProp:
		return "prop"
	case SpriteFish:
		return "fish"
	case SpritePellet:
		return "pellet"
	case SpritePlayer:
		return "player"
	}
	return "unknown"
}

// Sprite is the visual state of one live entity, in playfield coordinates.
type Sprite struct {
	Kind    SpriteKind
	X, Y    float64
	Variant components.Variant // fish only
	Family  string             // props only
	Frame   int
}

// Sprites appends one sprite per live entity to dst, in draw order:
// props, fish, pellets, then the player.
func (g *Game) Sprites(dst []Sprite) []Sprite {
	props := g.propFilter.Query()
	for props.Next() {
		pos, prop := props.Get()
		dst = append(dst, Sprite{Kind: SpriteProp, X: pos.X, Y: pos.Y, Family: prop.Family, Frame: prop.Frame})
	}

	fish := g.fishFilter.Query()
	for fish.Next() {
		pos, f := fish.Get()
		dst = append(dst, Sprite{Kind: SpriteFish, X: pos.X, Y: pos.Y, Variant: f.Variant, Frame: f.State.SpriteFrame()})
	}

	pellets := g.pelletFilter.Query()
	for pellets.Next() {
		pos, _ := pellets.Get()
		dst = append(dst, Sprite{Kind: SpritePellet, X: pos.X, Y: pos.Y})
	}

	players := g.playerFilter.Query()
	for players.Next() {
		pos, player := players.Get()
		frame := 0
		if !player.Cooldown.Finished() {
			frame = 1
		}
		dst = append(dst, Sprite{Kind: SpritePlayer, X: pos.X, Y: pos.Y, Frame: frame})
	}

	return dst
}
