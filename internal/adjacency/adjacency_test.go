package adjacency

import (
	"errors"
	"testing"

	"schematic/internal/grid"
	"schematic/internal/lexer"
	"schematic/internal/token"
)

var sample = []string{
	"467..114..",
	"...*......",
	"..35..633.",
	"......#...",
	"617*......",
	".....+.58.",
	"..592.....",
	"......755.",
	"...$.*....",
	".664.598..",
}

func buildIndex(g *grid.Grid) Index {
	ix := make(Index, g.Height())
	for row := range ix {
		ix[row] = lexer.Tokenize(g, row, lexer.Options{})
	}
	return ix
}

func TestWindowClipping(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "12.", "...", "..3")

	tests := []struct {
		name            string
		row, start, end int
		want            Rect
	}{
		{name: "top left", row: 0, start: 0, end: 2, want: Rect{Top: 0, Bottom: 2, Left: 0, Right: 3}},
		{name: "bottom right", row: 2, start: 2, end: 3, want: Rect{Top: 1, Bottom: 3, Left: 1, Right: 3}},
		{name: "middle", row: 1, start: 1, end: 2, want: Rect{Top: 0, Bottom: 3, Left: 0, Right: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Window(g, tt.row, tt.start, tt.end); got != tt.want {
				t.Errorf("Window = %+v, want %+v", got, tt.want)
			}
		})
	}
	if (Rect{Top: 1, Bottom: 1, Left: 0, Right: 3}).Empty() != true {
		t.Error("zero-height rect must be empty")
	}
}

func TestIsPartNumberSample(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), sample...)
	ix := buildIndex(g)

	excluded := map[uint64]bool{114: true, 58: true}
	for _, row := range ix {
		for _, tok := range row {
			want := !excluded[tok.Value]
			if got := IsPartNumber(g, tok); got != want {
				t.Errorf("IsPartNumber(%d at %d:%d) = %v, want %v", tok.Value, tok.Row, tok.Start, got, want)
			}
		}
	}
}

func TestIsPartNumberEveryNeighbourCell(t *testing.T) {
	// токен "12" в центре 3x4, символ по очереди в каждой из 10 соседних клеток
	base := []string{"....", ".12.", "...."}
	positions := [][2]int{
		{0, 0}, {0, 1}, {0, 2}, {0, 3},
		{1, 0}, {1, 3},
		{2, 0}, {2, 1}, {2, 2}, {2, 3},
	}
	for _, pos := range positions {
		rows := append([]string(nil), base...)
		line := []rune(rows[pos[0]])
		line[pos[1]] = '#'
		rows[pos[0]] = string(line)

		g := grid.MustNew(grid.DefaultOptions(), rows...)
		tok := lexer.Tokenize(g, 1, lexer.Options{})[0]
		if !IsPartNumber(g, tok) {
			t.Errorf("symbol at %v must make 12 a part number", pos)
		}
	}

	// символ на расстоянии 2 не считается
	g := grid.MustNew(grid.DefaultOptions(), ".....", "..12.", "#....")
	tok := lexer.Tokenize(g, 1, lexer.Options{})[0]
	if IsPartNumber(g, tok) {
		t.Error("symbol two columns away must not count")
	}
}

func TestIsPartNumberBoundaries(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		row  int
		want bool
	}{
		{name: "first row first col", rows: []string{"12.", "..$"}, row: 0, want: true},
		{name: "first row no symbol", rows: []string{"12.", "...", "$.."}, row: 0, want: false},
		{name: "last row last col", rows: []string{"#..", ".34"}, row: 1, want: true},
		{name: "single row", rows: []string{"7*"}, row: 0, want: true},
		{name: "single cell", rows: []string{"7"}, row: 0, want: false},
		{name: "full width", rows: []string{"...", "123", "..."}, row: 1, want: false},
		{name: "digit is not symbol", rows: []string{"1.", "2."}, row: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.MustNew(grid.DefaultOptions(), tt.rows...)
			tok := lexer.Tokenize(g, tt.row, lexer.Options{})[0]
			if got := IsPartNumber(g, tok); got != tt.want {
				t.Errorf("IsPartNumber = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTouches(t *testing.T) {
	tok := token.Token{Kind: token.Number, Row: 5, Start: 4, End: 7} // колонки 4..6
	tests := []struct {
		row, col int
		want     bool
	}{
		{5, 3, true}, {5, 7, true}, {4, 2, false}, {6, 8, false},
		{4, 3, true}, {6, 7, true}, {5, 2, false}, {5, 8, false},
		{3, 5, false}, {7, 5, false}, {4, 5, true},
	}
	for _, tt := range tests {
		if got := Touches(tok, tt.row, tt.col); got != tt.want {
			t.Errorf("Touches(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestNeighboursAndRatioSample(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), sample...)
	ix := buildIndex(g)

	want := map[[2]int][]uint64{
		{1, 3}: {467, 35},
		{4, 3}: {617},
		{8, 5}: {755, 598},
	}
	var sum uint64
	for row := 0; row < g.Height(); row++ {
		for _, sym := range lexer.Symbols(g, row) {
			if !sym.IsGear() {
				continue
			}
			neigh := Neighbours(ix, sym)
			exp := want[[2]int{sym.Row, sym.Col}]
			if len(neigh) != len(exp) {
				t.Fatalf("gear %d:%d: got %d neighbours, want %d", sym.Row, sym.Col, len(neigh), len(exp))
			}
			for i := range exp {
				if neigh[i].Value != exp[i] {
					t.Errorf("gear %d:%d neighbour %d = %d, want %d", sym.Row, sym.Col, i, neigh[i].Value, exp[i])
				}
			}
			ratio, _, err := GearRatio(neigh)
			if err != nil {
				t.Fatalf("GearRatio: %v", err)
			}
			sum += ratio
		}
	}
	if sum != 467835 {
		t.Fatalf("gear ratio sum = %d, want 467835", sum)
	}
}

func TestNeighboursKeepsDuplicateValues(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "5.5", ".*.", "...")
	sym := lexer.Symbols(g, 1)[0]
	neigh := Neighbours(buildIndex(g), sym)
	if len(neigh) != 2 {
		t.Fatalf("expected two occurrences of 5, got %d", len(neigh))
	}
	ratio, defined, err := GearRatio(neigh)
	if err != nil || !defined || ratio != 25 {
		t.Fatalf("GearRatio = %d,%v,%v want 25", ratio, defined, err)
	}
}

func TestNeighboursArity(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		count   int
		defined bool
	}{
		{name: "none", rows: []string{"...", ".*.", "..."}, count: 0},
		{name: "one", rows: []string{"1..", ".*.", "..."}, count: 1},
		{name: "three", rows: []string{"1.2", ".*.", "..3"}, count: 3},
		{name: "far token ignored", rows: []string{"1...", ".*.2", "...."}, count: 1},
		{name: "long token above", rows: []string{"12345", "...*.", "....."}, count: 1},
		{name: "gear on edge", rows: []string{"*1", "2."}, count: 2, defined: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.MustNew(grid.DefaultOptions(), tt.rows...)
			var gear token.Symbol
			for row := 0; row < g.Height(); row++ {
				for _, s := range lexer.Symbols(g, row) {
					if s.IsGear() {
						gear = s
					}
				}
			}
			neigh := Neighbours(buildIndex(g), gear)
			if len(neigh) != tt.count {
				t.Fatalf("got %d neighbours, want %d", len(neigh), tt.count)
			}
			ratio, defined, _ := GearRatio(neigh)
			if defined != tt.defined || (!defined && ratio != 0) {
				t.Fatalf("ratio=%d defined=%v", ratio, defined)
			}
		})
	}
}

func TestGearRatioOverflow(t *testing.T) {
	big := token.Token{Kind: token.Number, Value: 1 << 40}
	_, defined, err := GearRatio([]token.Token{big, big})
	if !defined || !errors.Is(err, ErrRatioOverflow) {
		t.Fatalf("expected ErrRatioOverflow, got %v", err)
	}
}
