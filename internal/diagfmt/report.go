package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math/bits"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"schematic/internal/scan"
)

// ReportEntry is the outcome of scanning one file.
type ReportEntry struct {
	Path   string
	Result *scan.Result // nil if the scan failed
	Err    error
	Cached bool
}

type FileReportJSON struct {
	Path         string  `json:"path"`
	PartSum      *uint64 `json:"part_sum,omitempty"`
	GearSum      *uint64 `json:"gear_sum,omitempty"`
	Parts        int     `json:"parts"`
	Gears        int     `json:"gears"`
	DefinedGears int     `json:"defined_gears"`
	Cached       bool    `json:"cached,omitempty"`
	Error        string  `json:"error,omitempty"`
}

type TotalsJSON struct {
	PartSum  uint64 `json:"part_sum"`
	GearSum  uint64 `json:"gear_sum"`
	Files    int    `json:"files"`
	Failed   int    `json:"failed"`
	Overflow bool   `json:"overflow,omitempty"`
}

// ReportOutput представляет корневую структуру JSON отчёта
type ReportOutput struct {
	Files []FileReportJSON `json:"files"`
	Total TotalsJSON       `json:"total"`
}

// BuildReportOutput собирает отчёт; итоги считаются с проверкой переполнения.
func BuildReportOutput(entries []ReportEntry, opts ReportOpts) ReportOutput {
	out := ReportOutput{Files: make([]FileReportJSON, 0, len(entries))}
	for _, e := range entries {
		fr := FileReportJSON{Path: e.Path, Cached: e.Cached}
		out.Total.Files++
		if e.Result == nil {
			out.Total.Failed++
			if e.Err != nil {
				fr.Error = e.Err.Error()
			}
			out.Files = append(out.Files, fr)
			continue
		}
		res := e.Result
		if opts.Parts {
			v := res.PartSum
			fr.PartSum = &v
		}
		if opts.Gears {
			v := res.GearSum
			fr.GearSum = &v
		}
		fr.Parts = len(res.Parts)
		fr.Gears = len(res.Gears)
		fr.DefinedGears = res.DefinedGears()
		out.Files = append(out.Files, fr)

		var c1, c2 uint64
		out.Total.PartSum, c1 = bits.Add64(out.Total.PartSum, res.PartSum, 0)
		out.Total.GearSum, c2 = bits.Add64(out.Total.GearSum, res.GearSum, 0)
		if c1|c2 != 0 {
			out.Total.Overflow = true
		}
	}
	return out
}

// FormatReportJSON печатает отчёт в JSON.
func FormatReportJSON(w io.Writer, entries []ReportEntry, opts ReportOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReportOutput(entries, opts))
}

// FormatReportPretty печатает суммы. Для одного файла:
//
//	part numbers: 4361
//	gear ratios: 467835
//
// Для нескольких файлов сначала идёт таблица по файлам, затем итог.
func FormatReportPretty(w io.Writer, entries []ReportEntry, opts ReportOpts) error {
	label := color.New(color.Bold)
	failed := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{label, failed, dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	report := BuildReportOutput(entries, opts)
	if len(entries) == 1 && entries[0].Result != nil {
		writeSums(w, label, report.Total.PartSum, report.Total.GearSum, opts)
		if opts.Details {
			writeDetails(w, dim, entries[0].Result)
		}
		return nil
	}

	pathWidth := runewidth.StringWidth("file")
	for _, fr := range report.Files {
		pathWidth = max(pathWidth, runewidth.StringWidth(fr.Path))
	}
	header := runewidth.FillRight("file", pathWidth)
	if opts.Parts {
		header += fmt.Sprintf("  %20s", "part numbers")
	}
	if opts.Gears {
		header += fmt.Sprintf("  %20s", "gear ratios")
	}
	fmt.Fprintln(w, label.Sprint(header))

	for i, fr := range report.Files {
		line := runewidth.FillRight(fr.Path, pathWidth)
		if fr.Error != "" {
			fmt.Fprintf(w, "%s  %s %s\n", line, failed.Sprint("error:"), fr.Error)
			continue
		}
		if fr.PartSum != nil {
			line += fmt.Sprintf("  %20d", *fr.PartSum)
		}
		if fr.GearSum != nil {
			line += fmt.Sprintf("  %20d", *fr.GearSum)
		}
		if fr.Cached {
			line += dim.Sprint("  (cached)")
		}
		fmt.Fprintln(w, line)
		if opts.Details {
			writeDetails(w, dim, entries[i].Result)
		}
	}

	fmt.Fprintln(w)
	if report.Total.Overflow {
		fmt.Fprintf(w, "%s totals overflow uint64\n", failed.Sprint("error:"))
	} else {
		writeSums(w, label, report.Total.PartSum, report.Total.GearSum, opts)
	}
	if report.Total.Failed > 0 {
		fmt.Fprintf(w, "%s %d of %d file(s) failed\n", failed.Sprint("error:"), report.Total.Failed, report.Total.Files)
	}
	return nil
}

func writeSums(w io.Writer, label *color.Color, parts, gears uint64, opts ReportOpts) {
	if opts.Parts {
		fmt.Fprintf(w, "%s %d\n", label.Sprint("part numbers:"), parts)
	}
	if opts.Gears {
		fmt.Fprintf(w, "%s %d\n", label.Sprint("gear ratios:"), gears)
	}
}

func writeDetails(w io.Writer, dim *color.Color, res *scan.Result) {
	for _, p := range res.Parts {
		fmt.Fprintf(w, "  part %s at %d:%d\n", p.Text, p.Row, p.Start)
	}
	for _, g := range res.Gears {
		if !g.Defined {
			fmt.Fprintln(w, dim.Sprintf("  gear at %d:%d has %d neighbour(s)", g.Symbol.Row, g.Symbol.Col, len(g.Neighbours)))
			continue
		}
		fmt.Fprintf(w, "  gear at %d:%d = %s × %s = %s\n", g.Symbol.Row, g.Symbol.Col,
			g.Neighbours[0].Text, g.Neighbours[1].Text, strconv.FormatUint(g.Ratio, 10))
	}
}
