package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"schematic/internal/source"
)

// ShortLines renders diagnostics one per line as
// "<CODE> <sev> <path>:<row>:<col>: <message>", with notes as indented
// "note <path>:<row>:<col>: <message>" lines. Order is kept as given:
// callers that need a stable order sort the Bag first.
// Spans of unknown files print "?" instead of a position.
func ShortLines(diags []Diagnostic, fs *source.FileSet) []string {
	out := make([]string, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		out = append(out, fmt.Sprintf("%s %s %s: %s",
			d.Code.ID(), strings.ToLower(d.Severity.String()), shortPos(fs, d.Primary), oneLine(d.Message)))
		for _, n := range d.Notes {
			out = append(out, fmt.Sprintf("  note %s: %s", shortPos(fs, n.Span), oneLine(n.Msg)))
		}
	}
	return out
}

func shortPos(fs *source.FileSet, span source.Span) string {
	if fs == nil || int(span.File) >= fs.Len() {
		return "?"
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	return fmt.Sprintf("%s:%d:%d", strings.TrimPrefix(path, "./"), start.Line, start.Col)
}

// oneLine складывает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
