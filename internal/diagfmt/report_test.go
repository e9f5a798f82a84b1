package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"schematic/internal/scan"
)

var both = ReportOpts{Parts: true, Gears: true}

func TestReportPrettySingle(t *testing.T) {
	entries := []ReportEntry{{Path: "a.txt", Result: &scan.Result{PartSum: 4361, GearSum: 467835}}}
	var buf bytes.Buffer
	if err := FormatReportPretty(&buf, entries, both); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "part numbers: 4361\ngear ratios: 467835\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	if err := FormatReportPretty(&buf, entries, ReportOpts{Gears: true}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "gear ratios: 467835\n" {
		t.Fatalf("gears only: got %q", got)
	}
}

func TestReportPrettyTable(t *testing.T) {
	entries := []ReportEntry{
		{Path: "a.txt", Result: &scan.Result{PartSum: 10, GearSum: 6}},
		{Path: "схема.txt", Result: &scan.Result{PartSum: 5}, Cached: true},
		{Path: "bad.txt", Err: errors.New("malformed grid")},
	}
	var buf bytes.Buffer
	if err := FormatReportPretty(&buf, entries, both); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"(cached)", "bad.txt    error: malformed grid", "part numbers: 15\n", "gear ratios: 6\n", "1 of 3 file(s) failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestReportJSONTotalsOverflow(t *testing.T) {
	entries := []ReportEntry{
		{Path: "a", Result: &scan.Result{PartSum: ^uint64(0)}},
		{Path: "b", Result: &scan.Result{PartSum: 1}},
	}
	var buf bytes.Buffer
	if err := FormatReportJSON(&buf, entries, both); err != nil {
		t.Fatal(err)
	}
	var out ReportOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Total.Overflow || out.Total.Files != 2 {
		t.Fatalf("unexpected totals %+v", out.Total)
	}
	if out.Files[0].PartSum == nil || *out.Files[0].PartSum != ^uint64(0) {
		t.Fatalf("unexpected file entry %+v", out.Files[0])
	}
}
