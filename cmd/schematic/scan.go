package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"schematic/internal/diag"
	"schematic/internal/diagfmt"
	"schematic/internal/driver"
	"schematic/internal/observ"
	"schematic/internal/scan"
	"schematic/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <file.txt|directory>",
	Short: "Sum part numbers and gear ratios of a schematic",
	Long: `Scan a schematic grid (or every .txt/.schematic file of a directory) and print
the sum of all part numbers and the sum of all gear ratios.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	scanCmd.Flags().Bool("explain", false, "report why each number and gear was counted")
	scanCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	scanCmd.Flags().String("only", "both", "what to compute (both|parts|gears)")
	scanCmd.Flags().Bool("details", false, "list gears of each file")
	scanCmd.Flags().String("ui", "auto", "directory progress UI (auto|on|off)")
	scanCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	addGridFlags(scanCmd)
}

// scanJSON is the single document printed by --format=json.
type scanJSON struct {
	Report      diagfmt.ReportOutput      `json:"report"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
	Timings     *observ.Report            `json:"timings,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	details, err := cmd.Flags().GetBool("details")
	if err != nil {
		return fmt.Errorf("failed to get details flag: %w", err)
	}
	uiModeValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiModeValue)
	if err != nil {
		return err
	}
	pathModeValue, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	cfg, err := buildDriverConfig(cmd, target)
	if err != nil {
		return err
	}
	if showTimings {
		cfg.Timer = observ.NewTimer()
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		fs, results, err = scanDirectory(cmd, target, cfg, mode)
		if err != nil {
			return err
		}
	} else {
		res, err := driver.ScanFile(cmd.Context(), target, cfg)
		if err != nil {
			return err
		}
		fs = res.FileSet
		results = []driver.FileResult{*res}
	}

	// Собираем диагностику всех файлов в один мешок
	bag := diag.NewBag(cfg.MaxDiagnostics)
	entries := make([]diagfmt.ReportEntry, len(results))
	failed := false
	for i := range results {
		r := &results[i]
		entries[i] = diagfmt.ReportEntry{Path: r.Path, Cached: r.Cached, Err: r.Err}
		if r.Err == nil {
			entries[i].Result = r.Result
		} else {
			failed = true
		}
		collect(bag, r.Bag, quiet)
	}
	bag.Sort()
	bag.Dedup()

	reportOpts := diagfmt.ReportOpts{
		Color:    useColor(cmd, os.Stdout),
		PathMode: pathMode,
		Parts:    cfg.Scan.Mode != scan.ModeGears,
		Gears:    cfg.Scan.Mode != scan.ModeParts,
		Details:  details,
	}

	switch format {
	case "json":
		out := scanJSON{
			Report: diagfmt.BuildReportOutput(entries, reportOpts),
			Diagnostics: diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     true,
			}),
		}
		if showTimings {
			report := cfg.Timer.Report()
			out.Timings = &report
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	default:
		if bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				Context:   1,
				PathMode:  pathMode,
				ShowNotes: true,
			})
		}
		if err := diagfmt.FormatReportPretty(cmd.OutOrStdout(), entries, reportOpts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if showTimings {
			fmt.Fprint(os.Stderr, cfg.Timer.Summary())
		}
	}

	if failed {
		dumpTraceRing(cmd)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errReported
	}
	return nil
}

// collect copies src into dst; quiet keeps errors only.
func collect(dst, src *diag.Bag, quiet bool) {
	if src == nil {
		return
	}
	for _, d := range src.Items() {
		if quiet && d.Severity < diag.SevError {
			continue
		}
		dst.Add(d)
	}
}

func scanDirectory(cmd *cobra.Command, dir string, cfg driver.Config, mode uiMode) (*source.FileSet, []driver.FileResult, error) {
	jobs := cfg.Scan.Jobs
	if !shouldUseTUI(mode) {
		return driver.ScanDir(cmd.Context(), dir, cfg, jobs, nil)
	}
	files, err := driver.ListGridFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	display := make([]string, len(files))
	for i, path := range files {
		if rel, err := filepath.Rel(dir, path); err == nil {
			display[i] = filepath.ToSlash(rel)
		} else {
			display[i] = filepath.ToSlash(path)
		}
	}
	return runScanDirWithUI(cmd.Context(), "scan "+dir, display, dir, cfg, jobs)
}
