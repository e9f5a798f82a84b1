package driver

import (
	"schematic/internal/grid"
	"schematic/internal/observ"
	"schematic/internal/scan"
)

// Config holds everything a file scan needs.
type Config struct {
	Grid           grid.Options
	Scan           scan.Options
	MaxDiagnostics int
	Cache          *DiskCache    // nil disables caching
	Timer          *observ.Timer // nil disables timings
}

// DefaultConfig returns the configuration used without a manifest.
func DefaultConfig() Config {
	return Config{Grid: grid.DefaultOptions(), MaxDiagnostics: 100}
}
