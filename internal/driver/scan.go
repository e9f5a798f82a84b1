package driver

import (
	"context"
	"fmt"

	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/scan"
	"schematic/internal/source"
	"schematic/internal/trace"
)

// FileResult is the outcome of scanning one file.
// Err is set when the grid was rejected or the scan failed; the reasons
// are in Bag. Grid is nil for cache hits.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Grid    *grid.Grid
	Result  *scan.Result
	Bag     *diag.Bag
	Cached  bool
	Err     error
}

// ScanFile loads path and scans it. The returned error is reserved for I/O
// problems; grid and overflow errors are reported through FileResult.Err.
func ScanFile(ctx context.Context, path string, cfg Config) (*FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "scan-file")
	defer span.End("")

	fs := source.NewFileSet()
	idx := cfg.Timer.Begin("load")
	fileID, err := fs.Load(path)
	cfg.Timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	res := scanLoaded(ctx, fs, fileID, cfg)
	res.Path = path
	if res.Err != nil {
		span.WithExtra("error", res.Err.Error())
	}
	return res, nil
}

// scanLoaded scans a file already present in fs. It only reads fs, so
// several files of one FileSet may be scanned concurrently.
func scanLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, cfg Config) *FileResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(cfg.MaxDiagnostics)
	out := &FileResult{Path: file.Path, FileSet: fs, FileID: fileID, Bag: bag}

	key := CacheKey(file.Hash, cfg.Grid, cfg.Scan)
	if cfg.Cache != nil {
		var payload DiskPayload
		// битый кэш не ошибка, просто пересчитываем
		if ok, err := cfg.Cache.Get(key, &payload); err == nil && ok {
			payload.rebind(fileID)
			for _, d := range payload.Diagnostics {
				bag.Add(d)
			}
			out.Result = &payload.Result
			out.Cached = true
			return out
		}
	}

	// собираем всё во внутренний мешок без лимита, чтобы кэшировать полный набор
	full := diag.NewBag(0)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: full})

	var g *grid.Grid
	err := cfg.Timer.Track("grid", func() (err error) {
		g, err = grid.FromFile(file, cfg.Grid, reporter)
		return err
	})
	if err != nil {
		out.Err = err
		copyInto(bag, full)
		return out
	}
	out.Grid = g

	idx := cfg.Timer.Begin("scan")
	res, err := scan.Run(ctx, g, cfg.Scan, reporter)
	cfg.Timer.End(idx, fmt.Sprintf("%dx%d", g.Width(), g.Height()))
	copyInto(bag, full)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result = res

	if cfg.Cache != nil {
		payload := &DiskPayload{Path: file.Path, Result: *res, Diagnostics: full.Items()}
		// ошибка записи кэша не влияет на результат
		_ = cfg.Cache.Put(key, payload) //nolint:errcheck
	}
	return out
}

func copyInto(dst, src *diag.Bag) {
	for _, d := range src.Items() {
		dst.Add(d)
	}
}
