package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"schematic/internal/grid"
	"schematic/internal/lexer"
	"schematic/internal/source"
)

func TestFormatTokens(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), "467..*", "..#.35")
	toks := append(lexer.Tokenize(g, 0, lexer.Options{}), lexer.Tokenize(g, 1, lexer.Options{})...)
	syms := append(lexer.Symbols(g, 0), lexer.Symbols(g, 1)...)

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, syms, source.NewFileSet()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"467"`, "row 0 cols 0..3", `"35"`, "row 1 cols 4..6", "Gear", `"#"`, "row 1 col 2"} {
		if !strings.Contains(pretty.String(), want) {
			t.Errorf("missing %q in:\n%s", want, pretty.String())
		}
	}

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, syms); err != nil {
		t.Fatal(err)
	}
	var out TokensOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Numbers) != 2 || out.Numbers[1].Value != 35 {
		t.Errorf("unexpected numbers %+v", out.Numbers)
	}
	if len(out.Symbols) != 2 || out.Symbols[0].Kind != "Gear" || out.Symbols[1].Char != "#" {
		t.Errorf("unexpected symbols %+v", out.Symbols)
	}
}
