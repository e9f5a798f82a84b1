package adjacency

import (
	"schematic/internal/grid"
	"schematic/internal/token"
)

// IsPartNumber reports whether any symbol (gear or not) lies in the token's window.
// The scan stops at the first symbol found.
func IsPartNumber(g *grid.Grid, tok token.Token) bool {
	_, _, ok := FirstSymbol(g, tok)
	return ok
}

// FirstSymbol returns the position of the first symbol in the token's window,
// scanning row by row, left to right.
func FirstSymbol(g *grid.Grid, tok token.Token) (row, col int, ok bool) {
	w := Window(g, tok.Row, tok.Start, tok.End)
	for r := w.Top; r < w.Bottom; r++ {
		for c := w.Left; c < w.Right; c++ {
			if g.ClassAt(r, c).IsSymbol() {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
