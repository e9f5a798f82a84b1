package diagfmt

import "schematic/internal/source"

// formatPath renders the file path for the given mode.
func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// lookup returns the file a span points into; grids built in memory
// produce spans that are not backed by any file.
func lookup(fs *source.FileSet, span source.Span) (*source.File, bool) {
	if fs == nil || int(span.File) >= fs.Len() {
		return nil, false
	}
	return fs.Get(span.File), true
}
