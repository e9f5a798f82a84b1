package lexer

import (
	"fmt"
	"strconv"

	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/token"
)

// scanNumber съедает максимальную серию ASCII-цифр.
// Ведущие нули допустимы и не меняют значение. Значения шире uint64
// репортятся как LexNumberOverflow, токен возвращается с Kind Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for grid.IsDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	text := lx.cursor.Text(start)
	tok := token.Token{
		Kind:  token.Number,
		Row:   lx.row,
		Start: int(start),
		End:   lx.cursor.Off,
		Text:  text,
		Span:  lx.grid.Span(lx.row, int(start), lx.cursor.Off),
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		tok.Kind = token.Invalid
		msg := fmt.Sprintf("number %s does not fit into 64 bits", abbreviate(text))
		lx.report(diag.LexNumberOverflow, lx.row, tok.Start, tok.End, msg)
		return tok
	}
	tok.Value = value
	return tok
}

func abbreviate(text string) string {
	const keep = 12
	if len(text) <= 2*keep+3 {
		return text
	}
	return text[:keep] + "..." + text[len(text)-keep:]
}
