package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("grid.txt", []byte("467..\n...*."), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("grid.txt", []byte("..35."), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("grid.txt")
	if !ok || latest != id2 {
		t.Fatalf("Expected latest ID %d, got %d (ok=%v)", id2, latest, ok)
	}

	// старая версия по-прежнему доступна
	if got := string(fs.Get(id1).Content); got != "467..\n...*." {
		t.Errorf("unexpected first content %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("virtual.txt", []byte("ab\ncd\nef"))
	f := fs.Get(id)

	want := []uint32{2, 5}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("Expected LineIdx %v, got %v", want, f.LineIdx)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], want[i])
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{name: "plain", in: "1.*\n.2.", want: "1.*\n.2.", flags: 0},
		{name: "crlf", in: "1.*\r\n.2.", want: "1.*\n.2.", flags: FileNormalizedCRLF},
		{name: "lone cr kept", in: "1\r2", want: "1\r2", flags: 0},
		{name: "bom", in: "\xEF\xBB\xBF12", want: "12", flags: FileHadBOM},
		{name: "nfc", in: "e\u0301.1", want: "\u00e9.1", flags: FileNormalizedNFC},
		{name: "all", in: "\xEF\xBB\xBFe\u0301\r\n1", want: "\u00e9\n1", flags: FileHadBOM | FileNormalizedCRLF | FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize([]byte(tt.in))
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("grid.txt", []byte("467..\n...*.\n..35."))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{4, LineCol{Line: 1, Col: 5}},
		{5, LineCol{Line: 1, Col: 6}}, // сам '\n' принадлежит первой строке
		{6, LineCol{Line: 2, Col: 1}},
		{9, LineCol{Line: 2, Col: 4}},
		{14, LineCol{Line: 3, Col: 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("grid.txt", []byte("467..\n...*.\n")))

	cases := map[uint32]string{
		0: "",
		1: "467..",
		2: "...*.",
		3: "",
		9: "",
	}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.txt")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF1.*\r\n.2."), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "1.*\n.2." {
		t.Errorf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
