package lexer

import "schematic/internal/diag"

// Options configure a row lexer.
type Options struct {
	Reporter diag.Reporter // nil: ошибки игнорируются, лексинг продолжается
}

func (lx *Lexer) report(code diag.Code, row, start, end int, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, lx.grid.Span(row, start, end), msg).Emit()
}
