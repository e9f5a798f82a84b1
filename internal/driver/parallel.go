package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"schematic/internal/diag"
	"schematic/internal/source"
	"schematic/internal/trace"
)

// GridExtensions are the file suffixes picked up by ScanDir.
var GridExtensions = []string{".txt", ".schematic"}

// ListGridFiles возвращает отсортированный список файлов сеток в директории
func ListGridFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range GridExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ScanDir сканирует все файлы сеток директории параллельно.
// Results are in path order regardless of completion order. A file that
// fails to load gets an IO4001 diagnostic and does not stop the others.
func ScanDir(ctx context.Context, dir string, cfg Config, jobs int, sink ProgressSink) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "scan-dir")
	defer span.End("")

	files, err := ListGridFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	rels := make([]string, len(files))
	for i, path := range files {
		rels[i] = displayPath(path, dir)
		emit(sink, Event{File: rels[i], Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	idx := cfg.Timer.Begin("load")
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			fileIDs[i] = fileSet.AddVirtual(path, nil)
		}
	}
	cfg.Timer.End(idx, fmt.Sprintf("%d file(s)", len(files)))

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fileCfg := cfg
	fileCfg.Timer = nil
	if len(files) > 1 {
		fileCfg.Scan.Jobs = 1 // параллелим по файлам, а не по строкам
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	idx = cfg.Timer.Begin("scan")
	for i := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			rel := rels[i]

			if loadErrors[i] != nil {
				bag := diag.NewBag(cfg.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError,
					source.Span{File: fileIDs[i]}, loadErrors[i].Error()).Emit()
				results[i] = FileResult{Path: rel, FileSet: fileSet, FileID: fileIDs[i], Bag: bag, Err: loadErrors[i]}
				emit(sink, Event{File: rel, Stage: StageLoad, Status: StatusError, Err: loadErrors[i], Elapsed: time.Since(started)})
				return nil
			}

			emit(sink, Event{File: rel, Stage: StageScan, Status: StatusWorking})
			fctx, fspan := trace.Start(gctx, trace.ScopeFile, "file:"+rel)
			res := scanLoaded(fctx, fileSet, fileIDs[i], fileCfg)
			fspan.End("")
			res.Path = rel
			results[i] = *res

			status := StatusDone
			switch {
			case res.Err != nil:
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(sink, Event{File: rel, Stage: StageScan, Status: status, Err: res.Err, Elapsed: time.Since(started)})
			return nil
		})
	}
	err = g.Wait()
	cfg.Timer.End(idx, fmt.Sprintf("%d job(s)", jobs))
	if err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func displayPath(path, dir string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
