package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultManifest = `# schematic scanner settings

[grid]
blank = "."        # empty cell
gear = "*"         # gear symbol
ragged = "reject"  # reject | pad

[scan]
jobs = 0           # 0 = all CPUs
cache = true
explain = false
`

// DefaultManifest returns the content written by Init.
func DefaultManifest() string { return defaultManifest }

// Init writes a default schematic.toml into dir, creating dir if needed.
// An existing manifest is never overwritten.
func Init(dir string) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return "", fmt.Errorf("already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	return manifestPath, nil
}
