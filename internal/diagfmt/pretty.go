package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"schematic/internal/diag"
	"schematic/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		code:   color.New(color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку сетки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		header := fmt.Sprintf("%s %s: %s",
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		f, ok := lookup(fs, d.Primary)
		if !ok {
			fmt.Fprintln(w, header)
			continue
		}
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s\n", p.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col), header)
		writeSnippet(w, p, f, start, end, int(opts.Context))

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf, ok := lookup(fs, n.Span)
			if !ok {
				fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
				continue
			}
			ns, ne := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s: %s: %s\n", p.note.Sprint("note"),
				p.path.Sprintf("%s:%d:%d", formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col), n.Msg)
			writeSnippet(w, p, nf, ns, ne, 0)
		}
	}
	if bag.Dropped() > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", bag.Dropped())
	}
}

// writeSnippet prints the primary line with context and a caret underline.
// Columns are converted to display width, so wide runes stay aligned.
func writeSnippet(w io.Writer, p palette, f *source.File, start, end source.LineCol, context int) {
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	lines := len(f.LineIdx) + 1
	last := min(int(start.Line)+context, lines)
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(uint32(ln)) //nolint:gosec // ln >= 1
		if ln == lines && ln > int(start.Line) && line == "" {
			break // хвостовой перевод строки
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), line)
		if ln != int(start.Line) {
			continue
		}
		from := min(int(start.Col)-1, len(line))
		to := len(line)
		if end.Line == start.Line {
			to = max(min(int(end.Col)-1, len(line)), from)
		}
		pad := runewidth.StringWidth(line[:from])
		width := max(runewidth.StringWidth(line[from:to]), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), p.caret.Sprint(underline))
	}
}
