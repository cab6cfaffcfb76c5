// Package term runs the game in a terminal with tcell.
package term

import (
	"math"

	"github.com/pthm-cable/dino/components"
)

// Grid maps the world, y up, onto a cell grid, row 0 at the top.
type Grid struct {
	Cols, Rows     int
	WorldW, WorldH float64
}

func (g Grid) cellW() float64 { return g.WorldW / float64(g.Cols) }
func (g Grid) cellH() float64 { return g.WorldH / float64(g.Rows) }

// ToCell returns the cell containing the world point.
func (g Grid) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x / g.cellW()))
	row = g.Rows - 1 - int(math.Floor(y/g.cellH()))
	return col, row
}

// ToWorld returns the world point at the centre of a cell.
func (g Grid) ToWorld(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * g.cellW()
	y = (float64(g.Rows-1-row) + 0.5) * g.cellH()
	return x, y
}

// Cells returns the inclusive cell range covered by a box, clipped to the
// grid. ok is false when nothing is visible. Every box covers at least one
// cell so small sprites stay visible.
func (g Grid) Cells(b components.Box) (c0, r0, c1, r1 int, ok bool) {
	c0, r1 = g.ToCell(b.X, b.Y)
	c1, r0 = g.ToCell(b.X+b.W, b.Y+b.H)
	// Right and top edges that land exactly on a cell boundary belong to
	// the previous cell.
	if c1 > c0 && math.Mod(b.X+b.W, g.cellW()) == 0 {
		c1--
	}
	if r0 < r1 && math.Mod(b.Y+b.H, g.cellH()) == 0 {
		r0++
	}
	c0, c1 = max(c0, 0), min(c1, g.Cols-1)
	r0, r1 = max(r0, 0), min(r1, g.Rows-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}
