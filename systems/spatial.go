package systems

import (
	"github.com/pthm-cable/fishfeed/components"
	"github.com/pthm-cable/fishfeed/config"
)

// Within reports whether a and b are strictly closer than radius.
func Within(a, b components.Position, radius float64) bool {
	if radius <= 0 {
		return false
	}
	return a.DistSq(b) < radius*radius
}

// Neighbor holds a nearby pellet with its precomputed squared distance.
type Neighbor struct {
	Index  int // Index into the pellet snapshot
	DistSq float64
}

// PelletGrid provides bucketed lookups of pellets near a point.
// The playfield is bounded, so out-of-range positions clamp to edge cells.
type PelletGrid struct {
	cellSize float64
	cols     int
	rows     int
	originX  float64
	originY  float64
	cells    [][]int // flat grid of pellet snapshot indices
}

// NewPelletGrid creates a grid covering the playfield.
func NewPelletGrid(field config.PlayfieldConfig, cellSize float64) *PelletGrid {
	if cellSize <= 0 {
		cellSize = 32
	}
	cols := int(field.Width()/cellSize) + 1
	rows := int(field.Height()/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &PelletGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		originX:  field.Left,
		originY:  field.Floor,
		cells:    cells,
	}
}

// Clear removes all pellets from the grid.
func (g *PelletGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a pellet snapshot index at the given position.
func (g *PelletGrid) Insert(idx int, pos components.Position) {
	col, row := g.cellCoords(pos.X, pos.Y)
	cell := row*g.cols + col
	g.cells[cell] = append(g.cells[cell], idx)
}

// QueryRadiusInto appends pellets strictly within radius of pos to dst.
// Reuse dst across calls to avoid allocations. Order is unspecified.
func (g *PelletGrid) QueryRadiusInto(dst []Neighbor, pos components.Position, radius float64, pellets []PelletView) []Neighbor {
	if radius <= 0 {
		return dst
	}
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(pos.X, pos.Y)
	radiusSq := radius * radius

	minCol, maxCol := clampInt(centerCol-cellRadius, 0, g.cols-1), clampInt(centerCol+cellRadius, 0, g.cols-1)
	minRow, maxRow := clampInt(centerRow-cellRadius, 0, g.rows-1), clampInt(centerRow+cellRadius, 0, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, idx := range g.cells[row*g.cols+col] {
				distSq := pos.DistSq(pellets[idx].Pos)
				if distSq < radiusSq {
					dst = append(dst, Neighbor{Index: idx, DistSq: distSq})
				}
			}
		}
	}
	return dst
}

// cellCoords returns the clamped cell for a playfield position.
func (g *PelletGrid) cellCoords(x, y float64) (col, row int) {
	col = clampInt(int((x-g.originX)/g.cellSize), 0, g.cols-1)
	row = clampInt(int((y-g.originY)/g.cellSize), 0, g.rows-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
