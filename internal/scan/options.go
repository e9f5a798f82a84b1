package scan

import (
	"fmt"
	"runtime"
	"strings"
)

// Mode selects which sums are computed.
type Mode uint8

const (
	ModeBoth Mode = iota
	ModeParts
	ModeGears
)

func (m Mode) String() string {
	switch m {
	case ModeParts:
		return "parts"
	case ModeGears:
		return "gears"
	default:
		return "both"
	}
}

// ParseMode accepts "", "both", "parts" and "gears".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return ModeBoth, nil
	case "parts":
		return ModeParts, nil
	case "gears":
		return ModeGears, nil
	default:
		return ModeBoth, fmt.Errorf("invalid scan mode: %q (expected: parts|gears)", s)
	}
}

func (m Mode) parts() bool { return m != ModeGears }
func (m Mode) gears() bool { return m != ModeParts }

// Options configure Run.
type Options struct {
	Jobs    int  // 0 = GOMAXPROCS
	Explain bool // info diagnostics for isolated numbers and non-gears
	Mode    Mode
}

// shards splits height rows into at most jobs contiguous ranges.
func (o Options) shards(height int) [][2]int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	n := min(jobs, height)
	if n <= 0 {
		return nil
	}
	out := make([][2]int, n)
	for i := range n {
		out[i] = [2]int{i * height / n, (i + 1) * height / n}
	}
	return out
}
