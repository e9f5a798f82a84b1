package lexer

import (
	"iter"

	"schematic/internal/grid"
	"schematic/internal/token"
)

// Lexer walks one grid row and yields its numbers left to right.
// Once EOF is returned the lexer stays at EOF; it cannot be rewound.
type Lexer struct {
	grid   *grid.Grid
	row    int
	cursor Cursor
	opts   Options
}

func New(g *grid.Grid, row int, opts Options) *Lexer {
	return &Lexer{
		grid:   g,
		row:    row,
		cursor: NewCursor(g.Row(row)),
		opts:   opts,
	}
}

// Next возвращает следующее число строки (Number или Invalid при переполнении).
// После конца строки всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// пропускаем всё, что не цифра
	for !lx.cursor.EOF() && !grid.IsDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.EOF() {
		w := len(lx.cursor.Row)
		return token.Token{
			Kind:  token.EOF,
			Row:   lx.row,
			Start: w,
			End:   w,
			Span:  lx.grid.Span(lx.row, w, w),
		}
	}
	return lx.scanNumber()
}

// Numbers adapts Next to a range-over-func sequence. The sequence shares
// the lexer state, so it can be consumed only once.
func (lx *Lexer) Numbers() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize collects every number of row (EOF excluded).
func Tokenize(g *grid.Grid, row int, opts Options) []token.Token {
	var out []token.Token
	for tok := range New(g, row, opts).Numbers() {
		out = append(out, tok)
	}
	return out
}
