package testkit

import (
	"testing"

	"schematic/internal/grid"
	"schematic/internal/lexer"
	"schematic/internal/token"
)

func TestInvariantsHoldForLexerOutput(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "467..114..", "...*..#...", "007.$.12.3")
	for row := range g.Height() {
		if err := CheckTokenInvariants(g, lexer.Tokenize(g, row, lexer.Options{})); err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
		if err := CheckSymbolInvariants(g, lexer.Symbols(g, row)); err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
	}
}

func TestTokenInvariantViolations(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "123..45")
	tests := []struct {
		name string
		tok  token.Token
	}{
		{"not maximal", token.Token{Kind: token.Number, Value: 23, Start: 1, End: 3, Text: "23"}},
		{"past width", token.Token{Kind: token.Number, Value: 45, Start: 5, End: 8, Text: "45"}},
		{"wrong value", token.Token{Kind: token.Number, Value: 44, Start: 5, End: 7, Text: "45"}},
		{"blank cell", token.Token{Kind: token.Number, Value: 3, Start: 2, End: 4, Text: "3."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckTokenInvariants(g, []token.Token{tt.tok}); err == nil {
				t.Fatal("expected violation")
			}
		})
	}
}

func TestSymbolInvariantViolations(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "1*#.")
	bad := []token.Symbol{
		{Kind: token.Gear, Char: '#', Row: 0, Col: 2},
		{Kind: token.Other, Char: '.', Row: 0, Col: 3},
		{Kind: token.Other, Char: '*', Row: 0, Col: 1},
	}
	for i, sym := range bad {
		if err := CheckSymbolInvariants(g, []token.Symbol{sym}); err == nil {
			t.Fatalf("case %d: expected violation", i)
		}
	}
}
