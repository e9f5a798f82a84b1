package testkit

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"schematic/internal/grid"
	"schematic/internal/token"
)

// CheckTokenInvariants runs the token invariants against the grid they came from:
// 1) 0 <= Start < End <= Width and the row exists
// 2) every cell of the token is a digit and the run is maximal
// 3) Text matches the cells and Value is the parsed Text
// 4) tokens are ordered by row then column and never overlap
// 5) a non-empty span covers exactly len(Text) bytes
func CheckTokenInvariants(g *grid.Grid, toks []token.Token) error {
	if g == nil {
		return fmt.Errorf("nil grid")
	}
	prevRow, prevEnd := -1, 0
	for i, tok := range toks {
		// 1) bounds
		if tok.Row < 0 || tok.Row >= g.Height() {
			return fmt.Errorf("token %d: row %d outside grid of height %d", i, tok.Row, g.Height())
		}
		if tok.Start < 0 || tok.Start >= tok.End || tok.End > g.Width() {
			return fmt.Errorf("token %d: bad columns [%d, %d) for width %d", i, tok.Start, tok.End, g.Width())
		}

		// 2) digits, maximal run
		row := g.Row(tok.Row)
		for c := tok.Start; c < tok.End; c++ {
			if !grid.IsDigit(row[c]) {
				return fmt.Errorf("token %d: cell %d:%d is %q, not a digit", i, tok.Row, c, row[c])
			}
		}
		if tok.Start > 0 && grid.IsDigit(row[tok.Start-1]) {
			return fmt.Errorf("token %d: run does not start at a boundary", i)
		}
		if tok.End < len(row) && grid.IsDigit(row[tok.End]) {
			return fmt.Errorf("token %d: run does not end at a boundary", i)
		}

		// 3) text and value
		if text := string(row[tok.Start:tok.End]); text != tok.Text {
			return fmt.Errorf("token %d: text %q, cells say %q", i, tok.Text, text)
		}
		if tok.IsNumber() {
			v, err := strconv.ParseUint(tok.Text, 10, 64)
			if err != nil || v != tok.Value {
				return fmt.Errorf("token %d: value %d does not match text %q", i, tok.Value, tok.Text)
			}
		}

		// 4) order
		if tok.Row < prevRow || (tok.Row == prevRow && tok.Start < prevEnd) {
			return fmt.Errorf("token %d: out of order or overlapping at %d:%d", i, tok.Row, tok.Start)
		}
		prevRow, prevEnd = tok.Row, tok.End

		// 5) span
		if !tok.Span.Empty() {
			n, err := safecast.Conv[uint32](len(tok.Text))
			if err != nil {
				return fmt.Errorf("token %d: text length overflow: %w", i, err)
			}
			if tok.Span.Len() != n {
				return fmt.Errorf("token %d: span %v does not cover %q", i, tok.Span, tok.Text)
			}
		}
	}
	return nil
}

// CheckSymbolInvariants verifies that every symbol sits on a symbol cell
// with the recorded character and that gears are exactly the gear cells.
func CheckSymbolInvariants(g *grid.Grid, syms []token.Symbol) error {
	if g == nil {
		return fmt.Errorf("nil grid")
	}
	for i, sym := range syms {
		r, ok := g.At(sym.Row, sym.Col)
		if !ok {
			return fmt.Errorf("symbol %d: %d:%d outside grid", i, sym.Row, sym.Col)
		}
		if r != sym.Char {
			return fmt.Errorf("symbol %d: char %q, cell holds %q", i, sym.Char, r)
		}
		class := g.ClassAt(sym.Row, sym.Col)
		if !class.IsSymbol() {
			return fmt.Errorf("symbol %d: cell %d:%d is %s", i, sym.Row, sym.Col, class)
		}
		if sym.IsGear() != (class == grid.ClassGear) {
			return fmt.Errorf("symbol %d: gear flag disagrees with cell class %s", i, class)
		}
	}
	return nil
}
