package diag

import (
	"testing"

	"schematic/internal/source"
)

func TestBagLimitKeepsErrorFlag(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(New(SevInfo, ScanGearArity, source.Span{}, "gear")) {
		t.Fatal("first add must succeed")
	}
	if bag.Add(NewError(LexNumberOverflow, source.Span{}, "too big")) {
		t.Fatal("second add must be rejected by limit")
	}
	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatal("dropped error must still be visible through HasErrors")
	}
}

func TestBagSortDedupMerge(t *testing.T) {
	a := NewBag(0)
	b := NewBag(0)
	a.Add(New(SevWarning, GridRowPadded, source.Span{Start: 10, End: 12}, "padded"))
	b.Add(NewError(GridRaggedRow, source.Span{Start: 2, End: 4}, "ragged"))
	b.Add(NewError(GridRaggedRow, source.Span{Start: 2, End: 4}, "ragged"))
	b.Add(New(SevInfo, GridInfo, source.Span{Start: 2, End: 4}, "info"))

	a.Merge(b)
	a.Dedup()
	a.Sort()

	items := a.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", len(items))
	}
	wantCodes := []Code{GridRaggedRow, GridInfo, GridRowPadded}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Errorf("items[%d].Code = %s, want %s", i, items[i].Code, want)
		}
	}
	if !a.HasErrors() || !a.HasWarnings() {
		t.Error("expected errors and warnings")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		GridEmpty:          "GRD1001",
		LexNumberOverflow:  "LEX2001",
		ScanIsolatedNumber: "SCN3002",
		IOLoadFileError:    "IO4001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if GridRaggedRow.Title() == UnknownCode.Title() {
		t.Error("GridRaggedRow must have its own title")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	b := ReportInfo(rep, ScanGearArity, source.Span{Start: 1, End: 2}, "gear has 1 neighbour").
		WithNote(source.Span{Start: 5, End: 6}, "neighbour")
	b.Emit()
	b.Emit()
	ReportInfo(rep, ScanGearArity, source.Span{Start: 1, End: 2}, "gear has 1 neighbour").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected a single diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be kept")
	}
}
