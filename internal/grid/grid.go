package grid

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"schematic/internal/diag"
	"schematic/internal/source"
)

// ErrMalformed is returned for empty or ragged grids.
var ErrMalformed = errors.New("malformed grid")

// Options control how raw text becomes a Grid.
type Options struct {
	Alphabet Alphabet
	Ragged   RaggedPolicy
}

// DefaultOptions uses DefaultAlphabet and rejects ragged rows.
func DefaultOptions() Options {
	return Options{Alphabet: DefaultAlphabet, Ragged: RaggedReject}
}

// Grid is an immutable H×W rune buffer.
type Grid struct {
	cells    [][]rune
	width    int
	alphabet Alphabet

	// привязка к исходному файлу (для Span); content == nil для New
	file     source.FileID
	content  []byte
	rowStart []uint32
	rowEnd   []uint32
}

// New builds a grid from in-memory rows. Spans of such grid are zero.
func New(rows []string, opts Options) (*Grid, error) {
	lines := make([][]byte, len(rows))
	for i, r := range rows {
		lines[i] = []byte(r)
	}
	return build(lines, nil, nil, opts, nil)
}

// MustNew is New for tests and fixtures; it panics on error.
func MustNew(opts Options, rows ...string) *Grid {
	g, err := New(rows, opts)
	if err != nil {
		panic(err)
	}
	return g
}

// FromFile splits a loaded file into rows and validates them.
// A single trailing newline is ignored. Problems are reported through r
// (which may be nil) and summarised in the returned error.
func FromFile(file *source.File, opts Options, r diag.Reporter) (*Grid, error) {
	content := file.Content
	if n := len(content); n > 0 && content[n-1] == '\n' {
		content = content[:n-1]
	}

	var lines [][]byte
	var starts []uint32
	if len(content) > 0 {
		lines = bytes.Split(content, []byte{'\n'})
		starts = make([]uint32, len(lines))
		off := 0
		for i, l := range lines {
			start, err := safecast.Conv[uint32](off)
			if err != nil {
				panic(fmt.Errorf("row offset overflow: %w", err))
			}
			starts[i] = start
			off += len(l) + 1
		}
	}

	return build(lines, starts, file, opts, r)
}

func build(lines [][]byte, starts []uint32, file *source.File, opts Options, r diag.Reporter) (*Grid, error) {
	if err := opts.Alphabet.Validate(); err != nil {
		var sp source.Span
		if file != nil {
			sp.File = file.ID
		}
		diag.ReportError(r, diag.GridBadAlphabet, sp, err.Error()).Emit()
		return nil, err
	}

	g := &Grid{alphabet: opts.Alphabet}
	if file != nil {
		g.file = file.ID
		g.content = file.Content
		g.rowStart = starts
		g.rowEnd = make([]uint32, len(lines))
		for i, l := range lines {
			g.rowEnd[i] = starts[i] + uint32(len(l)) //nolint:gosec // bounded by rowStart conversion above
		}
	}

	if len(lines) == 0 {
		diag.ReportError(r, diag.GridEmpty, g.fileSpan(), "grid has no rows").Emit()
		return nil, fmt.Errorf("%w: grid has no rows", ErrMalformed)
	}

	g.cells = make([][]rune, len(lines))
	for i, l := range lines {
		g.cells[i] = []rune(string(l))
	}

	switch opts.Ragged {
	case RaggedPad:
		g.width = g.padRows(r)
	default:
		g.width = len(g.cells[0])
		if err := g.checkUniform(r); err != nil {
			return nil, err
		}
	}

	if g.width == 0 {
		diag.ReportError(r, diag.GridEmpty, g.fileSpan(), "grid rows are empty").Emit()
		return nil, fmt.Errorf("%w: grid rows are empty", ErrMalformed)
	}
	return g, nil
}

func (g *Grid) checkUniform(r diag.Reporter) error {
	var first error
	for i, row := range g.cells {
		if len(row) == g.width {
			continue
		}
		msg := fmt.Sprintf("row %d has %d cells, expected %d", i+1, len(row), g.width)
		diag.ReportError(r, diag.GridRaggedRow, g.rowSpan(i), msg).
			WithNote(g.rowSpan(0), "width is taken from the first row").
			Emit()
		if first == nil {
			first = fmt.Errorf("%w: %s", ErrMalformed, msg)
		}
	}
	return first
}

// padRows widens every short row to the widest one.
func (g *Grid) padRows(r diag.Reporter) int {
	width := 0
	for _, row := range g.cells {
		width = max(width, len(row))
	}
	for i, row := range g.cells {
		if len(row) == width {
			continue
		}
		diag.ReportWarning(r, diag.GridRowPadded, g.rowSpan(i),
			fmt.Sprintf("row %d padded from %d to %d cells", i+1, len(row), width)).Emit()
		padded := make([]rune, width)
		copy(padded, row)
		for c := len(row); c < width; c++ {
			padded[c] = g.alphabet.Blank
		}
		g.cells[i] = padded
	}
	return width
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.cells) }

// Alphabet returns the alphabet the grid was built with.
func (g *Grid) Alphabet() Alphabet { return g.alphabet }

// File returns the id of the backing file (zero for in-memory grids).
func (g *Grid) File() source.FileID { return g.file }

// At returns the rune at (row, col); ok is false outside the grid.
func (g *Grid) At(row, col int) (rune, bool) {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.width {
		return 0, false
	}
	return g.cells[row][col], true
}

// ClassAt classifies the cell at (row, col); ClassNone outside the grid.
func (g *Grid) ClassAt(row, col int) Class {
	r, ok := g.At(row, col)
	if !ok {
		return ClassNone
	}
	return g.alphabet.Classify(r)
}

// Row returns the cells of row i. The slice must not be modified.
func (g *Grid) Row(i int) []rune {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return g.cells[i]
}

// String renders the grid back into newline-separated rows.
func (g *Grid) String() string {
	var sb strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Span maps the cell range [start, end) of row onto a byte span of the file.
// Columns past the original end of a padded row clamp to the row end.
func (g *Grid) Span(row, start, end int) source.Span {
	if g.content == nil || row < 0 || row >= len(g.rowStart) {
		return source.Span{File: g.file}
	}
	return source.Span{
		File:  g.file,
		Start: g.colOffset(row, start),
		End:   g.colOffset(row, end),
	}
}

// CellSpan is Span for a single cell.
func (g *Grid) CellSpan(row, col int) source.Span {
	return g.Span(row, col, col+1)
}

func (g *Grid) rowSpan(row int) source.Span {
	if g.content == nil {
		return source.Span{}
	}
	return source.Span{File: g.file, Start: g.rowStart[row], End: g.rowEnd[row]}
}

func (g *Grid) fileSpan() source.Span {
	return source.Span{File: g.file}
}

// colOffset walks the row's UTF-8 bytes; invalid bytes count as one column,
// matching how []rune(string) decoded them.
func (g *Grid) colOffset(row, col int) uint32 {
	off := g.rowStart[row]
	end := g.rowEnd[row]
	for c := 0; c < col && off < end; c++ {
		_, size := utf8.DecodeRune(g.content[off:end])
		off += uint32(size) //nolint:gosec // size <= utf8.UTFMax
	}
	return off
}
