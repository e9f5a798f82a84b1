package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"schematic/internal/source"
	"schematic/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Value uint64      `json:"value"`
	Text  string      `json:"text"`
	Row   int         `json:"row"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Span  source.Span `json:"span"`
}

type SymbolOutput struct {
	Kind string      `json:"kind"`
	Char string      `json:"char"`
	Row  int         `json:"row"`
	Col  int         `json:"col"`
	Span source.Span `json:"span"`
}

// TokensOutput is the root of `schematic tokens --format=json`.
type TokensOutput struct {
	Numbers []TokenOutput  `json:"numbers"`
	Symbols []SymbolOutput `json:"symbols"`
}

// FormatTokensPretty выводит числа и символы в человекочитаемом формате.
// Позиции печатаются как row:col сетки (0-based), а при наличии файла ещё и line:col.
func FormatTokensPretty(w io.Writer, tokens []token.Token, symbols []token.Symbol, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-8s %-22q row %d cols %d..%d%s\n",
			i+1, tok.Kind.String(), tok.Text, tok.Row, tok.Start, tok.End, position(fs, tok.Span)); err != nil {
			return err
		}
	}
	for i, sym := range symbols {
		if _, err := fmt.Fprintf(w, "%3d: %-8s %-22q row %d col %d%s\n",
			i+1, sym.Kind.String(), string(sym.Char), sym.Row, sym.Col, position(fs, sym.Span)); err != nil {
			return err
		}
	}
	return nil
}

func position(fs *source.FileSet, span source.Span) string {
	if span.Empty() {
		return ""
	}
	if _, ok := lookup(fs, span); !ok {
		return ""
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// FormatTokensJSON выводит числа и символы в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, symbols []token.Symbol) error {
	out := TokensOutput{
		Numbers: make([]TokenOutput, 0, len(tokens)),
		Symbols: make([]SymbolOutput, 0, len(symbols)),
	}
	for _, tok := range tokens {
		out.Numbers = append(out.Numbers, TokenOutput{
			Kind:  tok.Kind.String(),
			Value: tok.Value,
			Text:  tok.Text,
			Row:   tok.Row,
			Start: tok.Start,
			End:   tok.End,
			Span:  tok.Span,
		})
	}
	for _, sym := range symbols {
		out.Symbols = append(out.Symbols, SymbolOutput{
			Kind: sym.Kind.String(),
			Char: string(sym.Char),
			Row:  sym.Row,
			Col:  sym.Col,
			Span: sym.Span,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
