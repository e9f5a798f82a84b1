package lexer

import (
	"schematic/internal/grid"
	"schematic/internal/token"
)

// Symbols returns every symbol of row in column order.
// Digits and the blank character are never symbols.
func Symbols(g *grid.Grid, row int) []token.Symbol {
	var out []token.Symbol
	for col, r := range g.Row(row) {
		var kind token.SymbolKind
		switch g.Alphabet().Classify(r) {
		case grid.ClassGear:
			kind = token.Gear
		case grid.ClassSymbol:
			kind = token.Other
		default:
			continue
		}
		out = append(out, token.Symbol{
			Kind: kind,
			Char: r,
			Row:  row,
			Col:  col,
			Span: g.CellSpan(row, col),
		})
	}
	return out
}
