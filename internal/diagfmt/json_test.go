package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := overflowBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX2001" {
		t.Errorf("unexpected severity/code %s %s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "a.txt" || loc.StartLine != 2 || loc.StartCol != 1 || loc.EndCol != 21 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := overflowBag(t)
	bag.Add(bag.Items()[0])

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("expected 1 shown and 1 dropped, got %d/%d", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatal("positions must be omitted unless requested")
	}
}
