package scan

import (
	"errors"

	"schematic/internal/token"
)

var (
	// ErrNumericOverflow is returned when a digit run does not fit into uint64.
	// The diagnostics carry the offending spans (LEX2001).
	ErrNumericOverflow = errors.New("number does not fit into 64 bits")
	// ErrSumOverflow is returned when a sum exceeds uint64.
	ErrSumOverflow = errors.New("sum overflows uint64")
)

// Gear is a gear-character cell with its adjacent numbers.
// Ratio is meaningful only when Defined (exactly two neighbours).
type Gear struct {
	Symbol     token.Symbol
	Neighbours []token.Token
	Ratio      uint64
	Defined    bool
}

// Result is the outcome of a scan.
type Result struct {
	PartSum uint64
	GearSum uint64

	Parts []token.Token // part numbers in row/column order
	Gears []Gear        // every gear character, defined or not

	Tokens  int // numbers found
	Symbols int // symbol cells found
}

// DefinedGears returns the number of gears with a defined ratio.
func (r *Result) DefinedGears() int {
	n := 0
	for i := range r.Gears {
		if r.Gears[i].Defined {
			n++
		}
	}
	return n
}
