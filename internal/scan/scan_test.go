package scan_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schematic/internal/adjacency"
	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/scan"
	"schematic/internal/testkit"
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

func run(t *testing.T, rows []string, opts scan.Options) (*scan.Result, *diag.Bag, error) {
	t.Helper()
	g := grid.MustNew(grid.DefaultOptions(), rows...)
	bag := diag.NewBag(0)
	res, err := scan.Run(context.Background(), g, opts, diag.BagReporter{Bag: bag})
	return res, bag, err
}

func TestSampleSums(t *testing.T) {
	res, bag, err := run(t, sample, scan.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PartSum != 4361 {
		t.Errorf("PartSum = %d, want 4361", res.PartSum)
	}
	if res.GearSum != 467835 {
		t.Errorf("GearSum = %d, want 467835", res.GearSum)
	}
	if res.Tokens != 10 || len(res.Parts) != 8 {
		t.Errorf("tokens/parts = %d/%d, want 10/8", res.Tokens, len(res.Parts))
	}
	if len(res.Gears) != 3 || res.DefinedGears() != 2 {
		t.Errorf("gears = %d (defined %d), want 3 (2)", len(res.Gears), res.DefinedGears())
	}
	if bag.Len() != 0 {
		t.Errorf("expected no diagnostics without explain, got %d", bag.Len())
	}
	for _, p := range res.Parts {
		if p.Text == "114" || p.Text == "58" {
			t.Errorf("%s must not be a part number", p.Text)
		}
	}
	if err := testkit.CheckTokenInvariants(grid.MustNew(grid.DefaultOptions(), sample...), res.Parts); err != nil {
		t.Fatal(err)
	}
}

func TestHelpersRunIndependentPasses(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), sample...)
	parts, err := scan.PartNumberSum(g)
	if err != nil || parts != 4361 {
		t.Fatalf("PartNumberSum = %d, %v", parts, err)
	}
	gears, err := scan.GearRatioSum(g)
	if err != nil || gears != 467835 {
		t.Fatalf("GearRatioSum = %d, %v", gears, err)
	}
}

func TestModeSelectsSums(t *testing.T) {
	res, _, err := run(t, sample, scan.Options{Mode: scan.ModeParts})
	if err != nil {
		t.Fatal(err)
	}
	if res.PartSum != 4361 || res.GearSum != 0 || len(res.Gears) != 0 {
		t.Fatalf("parts mode: %+v", res)
	}
	res, _, err = run(t, sample, scan.Options{Mode: scan.ModeGears})
	if err != nil {
		t.Fatal(err)
	}
	if res.PartSum != 0 || res.GearSum != 467835 || len(res.Parts) != 0 {
		t.Fatalf("gears mode: %+v", res)
	}
}

func TestShardCountDoesNotChangeResult(t *testing.T) {
	want, _, err := run(t, sample, scan.Options{Jobs: 1, Explain: true})
	if err != nil {
		t.Fatal(err)
	}
	_, wantBag, _ := run(t, sample, scan.Options{Jobs: 1, Explain: true})
	for jobs := 2; jobs <= 12; jobs++ {
		got, bag, err := run(t, sample, scan.Options{Jobs: jobs, Explain: true})
		if err != nil {
			t.Fatalf("jobs=%d: %v", jobs, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("jobs=%d result mismatch (-want +got):\n%s", jobs, diff)
		}
		if diff := cmp.Diff(wantBag.Items(), bag.Items()); diff != "" {
			t.Fatalf("jobs=%d diagnostics mismatch (-want +got):\n%s", jobs, diff)
		}
	}
}

func TestIdempotent(t *testing.T) {
	g := grid.MustNew(grid.DefaultOptions(), sample...)
	first, err := scan.Run(context.Background(), g, scan.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := scan.Run(context.Background(), g, scan.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second run differs:\n%s", diff)
	}
}

func TestGearSwapKeepsPartsDropsGears(t *testing.T) {
	swapped := make([]string, len(sample))
	for i, row := range sample {
		swapped[i] = strings.ReplaceAll(row, "*", "#")
	}
	res, _, err := run(t, swapped, scan.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.PartSum != 4361 {
		t.Errorf("PartSum = %d, want 4361", res.PartSum)
	}
	if res.GearSum != 0 || len(res.Gears) != 0 {
		t.Errorf("GearSum = %d with %d gears, want 0", res.GearSum, len(res.Gears))
	}
}

func TestNoSymbols(t *testing.T) {
	res, _, err := run(t, []string{"12..3", ".....", "45.67"}, scan.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.PartSum != 0 || res.GearSum != 0 || res.Symbols != 0 {
		t.Fatalf("expected zero sums, got %+v", res)
	}
}

func TestPartsAreSubsetOfTokens(t *testing.T) {
	res, _, err := run(t, sample, scan.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var sum uint64
	for _, p := range res.Parts {
		sum += p.Value
	}
	if sum != res.PartSum {
		t.Fatalf("sum of Parts = %d, PartSum = %d", sum, res.PartSum)
	}
	for _, gr := range res.Gears {
		if !gr.Defined {
			if gr.Ratio != 0 {
				t.Errorf("undefined gear at %d:%d has ratio %d", gr.Symbol.Row, gr.Symbol.Col, gr.Ratio)
			}
			continue
		}
		if len(gr.Neighbours) != 2 || gr.Ratio != gr.Neighbours[0].Value*gr.Neighbours[1].Value {
			t.Errorf("gear at %d:%d: ratio %d from %v", gr.Symbol.Row, gr.Symbol.Col, gr.Ratio, gr.Neighbours)
		}
	}
}

func TestExplainDiagnostics(t *testing.T) {
	_, bag, err := run(t, sample, scan.Options{Explain: true})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, d := range bag.Items() {
		if d.Severity != diag.SevInfo {
			t.Errorf("explain diagnostic %s must be info", d.Code.ID())
		}
		got = append(got, d.Code.ID())
	}
	// 114 (row 0), gear near 617 (row 4), 58 (row 5)
	want := []string{"SCN3002", "SCN3001", "SCN3002"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("explain codes mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericOverflowRejectsGrid(t *testing.T) {
	res, bag, err := run(t, []string{"99999999999999999999*1"}, scan.Options{})
	if !errors.Is(err, scan.ErrNumericOverflow) {
		t.Fatalf("expected ErrNumericOverflow, got %v", err)
	}
	if res != nil {
		t.Fatal("no partial result on overflow")
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexNumberOverflow {
		t.Fatalf("expected LEX2001, got %+v", bag.Items())
	}
}

func TestGearRatioOverflow(t *testing.T) {
	_, bag, err := run(t, []string{"4294967296*4294967296"}, scan.Options{})
	if !errors.Is(err, adjacency.ErrRatioOverflow) {
		t.Fatalf("expected ErrRatioOverflow, got %v", err)
	}
	if !bag.HasErrors() {
		t.Fatal("overflow must be reported")
	}
}

func TestSumOverflow(t *testing.T) {
	t.Run("within shard", func(t *testing.T) {
		_, bag, err := run(t, []string{"18446744073709551615#1"}, scan.Options{Jobs: 1})
		if !errors.Is(err, scan.ErrSumOverflow) {
			t.Fatalf("expected ErrSumOverflow, got %v", err)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.ScanSumOverflow {
			t.Fatalf("expected one SCN3003, got %+v", bag.Items())
		}
	})
	t.Run("across shards", func(t *testing.T) {
		rows := []string{
			"18446744073709551615#",
			"#1...................",
		}
		_, bag, err := run(t, rows, scan.Options{Jobs: 2})
		if !errors.Is(err, scan.ErrSumOverflow) {
			t.Fatalf("expected ErrSumOverflow, got %v", err)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.ScanSumOverflow {
			t.Fatalf("expected one SCN3003, got %+v", bag.Items())
		}
	})
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := grid.MustNew(grid.DefaultOptions(), sample...)
	if _, err := scan.Run(ctx, g, scan.Options{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]scan.Mode{"": scan.ModeBoth, "parts": scan.ModeParts, "GEARS": scan.ModeGears} {
		got, err := scan.ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := scan.ParseMode("all"); err == nil {
		t.Error("expected error")
	}
}
