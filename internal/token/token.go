package token

import (
	"schematic/internal/source"
)

// Token is one number located in a grid row.
type Token struct {
	Kind  Kind
	Value uint64
	Row   int
	Start int // первая колонка, включительно
	End   int // колонка после последней цифры
	Text  string
	Span  source.Span
}

// Len returns the number of cells the token occupies.
func (t Token) Len() int { return t.End - t.Start }

// Contains reports whether col lies inside the token.
func (t Token) Contains(col int) bool { return col >= t.Start && col < t.End }

// IsNumber reports whether the token carries a valid value.
func (t Token) IsNumber() bool { return t.Kind == Number }

// Symbol is a non-digit, non-blank cell.
type Symbol struct {
	Kind SymbolKind
	Char rune
	Row  int
	Col  int
	Span source.Span
}

// IsGear reports whether the symbol is a gear.
func (s Symbol) IsGear() bool { return s.Kind == Gear }
