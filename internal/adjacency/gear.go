package adjacency

import (
	"errors"
	"fmt"
	"math/bits"

	"schematic/internal/token"
)

// ErrRatioOverflow is returned when a gear ratio does not fit into uint64.
var ErrRatioOverflow = errors.New("gear ratio overflows uint64")

// RowTokens looks up the numbers of a row. Rows outside the grid return nil.
type RowTokens interface {
	Tokens(row int) []token.Token
}

// Index is a RowTokens backed by a slice indexed by row.
type Index [][]token.Token

func (ix Index) Tokens(row int) []token.Token {
	if row < 0 || row >= len(ix) {
		return nil
	}
	return ix[row]
}

// Touches reports whether tok is adjacent to the cell (row, col):
// rows differ by at most one and [Start, End) meets [col-1, col+1].
func Touches(tok token.Token, row, col int) bool {
	if tok.Row < row-1 || tok.Row > row+1 {
		return false
	}
	return tok.Start <= col+1 && tok.End >= col
}

// Neighbours returns every token occurrence adjacent to sym, in row then
// column order. Equal values at different positions are kept separately.
func Neighbours(rows RowTokens, sym token.Symbol) []token.Token {
	var out []token.Token
	for r := sym.Row - 1; r <= sym.Row+1; r++ {
		for _, tok := range rows.Tokens(r) {
			if tok.Start > sym.Col+1 {
				break // токены отсортированы по колонке
			}
			if Touches(tok, sym.Row, sym.Col) {
				out = append(out, tok)
			}
		}
	}
	return out
}

// GearRatio returns the product of the two neighbours; defined is false for
// any other neighbour count, in which case the ratio is 0.
func GearRatio(neighbours []token.Token) (ratio uint64, defined bool, err error) {
	if len(neighbours) != 2 {
		return 0, false, nil
	}
	a, b := neighbours[0].Value, neighbours[1].Value
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, true, fmt.Errorf("%w: %d * %d", ErrRatioOverflow, a, b)
	}
	return lo, true, nil
}
