package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"schematic/internal/grid"
	"schematic/internal/scan"
)

// ManifestName is the file looked up by Find.
const ManifestName = "schematic.toml"

// Manifest is a loaded schematic.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Grid GridConfig `toml:"grid"`
	Scan ScanConfig `toml:"scan"`
}

type GridConfig struct {
	Blank  string `toml:"blank"`
	Gear   string `toml:"gear"`
	Ragged string `toml:"ragged"`
}

type ScanConfig struct {
	Jobs    int  `toml:"jobs"` // 0 = GOMAXPROCS
	Cache   bool `toml:"cache"`
	Explain bool `toml:"explain"`
}

// DefaultConfig is what an absent manifest means.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Blank:  string(grid.DefaultAlphabet.Blank),
			Gear:   string(grid.DefaultAlphabet.Gear),
			Ragged: grid.RaggedReject.String(),
		},
		Scan: ScanConfig{Cache: true},
	}
}

// Find walks up from startDir looking for schematic.toml.
// startDir may also be a file; the search then starts in its directory.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest governing startDir.
// Without a manifest it returns (nil, false, nil).
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadFile decodes path on top of DefaultConfig. Keys that are absent keep
// their defaults; unknown keys and invalid values are errors naming the key.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("grid", "blank") {
		if _, err := grid.ParseRune(cfg.Grid.Blank); err != nil {
			return Config{}, fmt.Errorf("%s: [grid].blank: %w", path, err)
		}
	}
	if meta.IsDefined("grid", "gear") {
		if _, err := grid.ParseRune(cfg.Grid.Gear); err != nil {
			return Config{}, fmt.Errorf("%s: [grid].gear: %w", path, err)
		}
	}
	if meta.IsDefined("grid", "ragged") {
		if _, err := grid.ParseRaggedPolicy(cfg.Grid.Ragged); err != nil {
			return Config{}, fmt.Errorf("%s: [grid].ragged: %w", path, err)
		}
	}
	if meta.IsDefined("scan", "jobs") && cfg.Scan.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [scan].jobs must be >= 0, got %d", path, cfg.Scan.Jobs)
	}
	if _, err := cfg.GridOptions(); err != nil {
		return Config{}, fmt.Errorf("%s: [grid]: %w", path, err)
	}
	return cfg, nil
}

// GridOptions converts the [grid] table.
func (c Config) GridOptions() (grid.Options, error) {
	blank, err := grid.ParseRune(c.Grid.Blank)
	if err != nil {
		return grid.Options{}, fmt.Errorf("blank: %w", err)
	}
	gear, err := grid.ParseRune(c.Grid.Gear)
	if err != nil {
		return grid.Options{}, fmt.Errorf("gear: %w", err)
	}
	ragged, err := grid.ParseRaggedPolicy(c.Grid.Ragged)
	if err != nil {
		return grid.Options{}, err
	}
	opts := grid.Options{Alphabet: grid.Alphabet{Blank: blank, Gear: gear}, Ragged: ragged}
	if err := opts.Alphabet.Validate(); err != nil {
		return grid.Options{}, err
	}
	return opts, nil
}

// ScanOptions converts the [scan] table.
func (c Config) ScanOptions() scan.Options {
	return scan.Options{Jobs: c.Scan.Jobs, Explain: c.Scan.Explain}
}
