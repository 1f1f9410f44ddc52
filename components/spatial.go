package components

import "math"

// Position represents an entity's playfield position.
// X grows to the right, Y grows upward.
type Position struct {
	X, Y float64
}

// DistSq returns the squared distance to other.
func (p Position) DistSq(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance to other.
func (p Position) Dist(other Position) float64 {
	return math.Sqrt(p.DistSq(other))
}
