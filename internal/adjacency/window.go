package adjacency

import "schematic/internal/grid"

// Rect is an inclusive-exclusive cell rectangle: rows [Top, Bottom), cols [Left, Right).
type Rect struct {
	Top, Bottom int
	Left, Right int
}

// Empty reports whether the rectangle holds no cells.
func (r Rect) Empty() bool { return r.Top >= r.Bottom || r.Left >= r.Right }

// Window returns the neighbourhood of cells [start, end) on row, expanded by
// one cell in every direction and clipped to g.
func Window(g *grid.Grid, row, start, end int) Rect {
	return Rect{
		Top:    max(0, row-1),
		Bottom: min(g.Height(), row+2),
		Left:   max(0, start-1),
		Right:  min(g.Width(), end+1),
	}
}
