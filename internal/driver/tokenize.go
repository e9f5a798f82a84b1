package driver

import (
	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/lexer"
	"schematic/internal/source"
	"schematic/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Grid    *grid.Grid // nil if the grid is malformed
	Tokens  []token.Token
	Symbols []token.Symbol
	Bag     *diag.Bag
}

// Tokenize loads path and lists every number and symbol of the grid.
// A malformed grid is not an error here: the diagnostics are in Bag.
func Tokenize(path string, maxDiagnostics int, opts grid.Options) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	result := &TokenizeResult{FileSet: fs, File: file, Bag: bag}

	g, err := grid.FromFile(file, opts, reporterAdapter.Reporter())
	if err != nil {
		return result, nil
	}
	result.Grid = g

	lopts := lexer.Options{Reporter: reporterAdapter.Reporter()}
	for row := range g.Height() {
		result.Tokens = append(result.Tokens, lexer.Tokenize(g, row, lopts)...)
		result.Symbols = append(result.Symbols, lexer.Symbols(g, row)...)
	}
	return result, nil
}
