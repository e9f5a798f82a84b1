package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Сетка
	GridInfo        Code = 1000
	GridEmpty       Code = 1001
	GridRaggedRow   Code = 1002
	GridRowPadded   Code = 1003
	GridBadAlphabet Code = 1004

	// Лексические
	LexInfo           Code = 2000
	LexNumberOverflow Code = 2001

	// Сканер
	ScanInfo           Code = 3000
	ScanGearArity      Code = 3001
	ScanIsolatedNumber Code = 3002
	ScanSumOverflow    Code = 3003

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	GridInfo:           "Grid information",
	GridEmpty:          "Empty grid",
	GridRaggedRow:      "Row width differs from the first row",
	GridRowPadded:      "Short row padded with blank cells",
	GridBadAlphabet:    "Invalid blank or gear character",
	LexInfo:            "Lexical information",
	LexNumberOverflow:  "Number does not fit into 64 bits",
	ScanInfo:           "Scan information",
	ScanGearArity:      "Gear without exactly two adjacent numbers",
	ScanIsolatedNumber: "Number without adjacent symbol",
	ScanSumOverflow:    "Aggregate sum overflow",
	IOInfo:             "I/O information",
	IOLoadFileError:    "Failed to load file",
}

// ID returns the stable identifier, e.g. "GRD1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GRD%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
