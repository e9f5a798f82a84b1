package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schematic/internal/grid"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	gridFile := filepath.Join(nested, "grid.txt")
	if err := os.WriteFile(gridFile, []byte("1*1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{nested, gridFile} {
		path, ok, err := Find(start)
		if err != nil || !ok {
			t.Fatalf("Find(%s) = %v, %v", start, ok, err)
		}
		if path != filepath.Join(root, ManifestName) {
			t.Fatalf("Find(%s) = %s", start, path)
		}
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if ok {
		t.Skipf("a %s exists above the temp dir", ManifestName)
	}
	if err != nil || m != nil {
		t.Fatalf("Load = %v, %v", m, err)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[grid]\ngear = \"#\"\n\n[scan]\njobs = 3\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Grid.Gear = "#"
	want.Scan.Jobs = 3
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	opts, err := cfg.GridOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Alphabet != (grid.Alphabet{Blank: '.', Gear: '#'}) || opts.Ragged != grid.RaggedReject {
		t.Fatalf("unexpected grid options %+v", opts)
	}
	if so := cfg.ScanOptions(); so.Jobs != 3 || so.Explain {
		t.Fatalf("unexpected scan options %+v", so)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{"syntax", "[grid\n", "failed to parse TOML"},
		{"unknown key", "[grid]\ncolour = \"red\"\n", "grid.colour"},
		{"long blank", "[grid]\nblank = \"..\"\n", "[grid].blank"},
		{"empty gear", "[grid]\ngear = \"\"\n", "[grid].gear"},
		{"digit gear", "[grid]\ngear = \"7\"\n", "[grid]"},
		{"same chars", "[grid]\nblank = \"*\"\n", "[grid]"},
		{"ragged", "[grid]\nragged = \"trim\"\n", "[grid].ragged"},
		{"jobs", "[scan]\njobs = -1\n", "[scan].jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Fatalf("error %q does not name %q", err, tt.wantKey)
			}
		})
	}
}

func TestInitWritesLoadableManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	path, err := Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("default manifest does not load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("default manifest differs from DefaultConfig (-want +got):\n%s", diff)
	}
	if _, err := Init(dir); err == nil {
		t.Fatal("second Init must refuse to overwrite")
	}
}
