package scan

import (
	"context"
	"fmt"
	"math/bits"
	"strconv"

	"golang.org/x/sync/errgroup"

	"schematic/internal/adjacency"
	"schematic/internal/diag"
	"schematic/internal/grid"
	"schematic/internal/lexer"
	"schematic/internal/token"
	"schematic/internal/trace"
)

// shard is the per-goroutine state; shards never share memory.
type shard struct {
	from, to int
	bag      *diag.Bag

	partSum uint64
	gearSum uint64
	parts   []token.Token
	gears   []Gear
	err     error
}

// Run scans g. Diagnostics go to r (may be nil) in row order.
// Any overflowing number aborts the scan with ErrNumericOverflow
// before sums are computed.
func Run(ctx context.Context, g *grid.Grid, opts Options, r diag.Reporter) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "scan")
	defer span.End("")

	ranges := opts.shards(g.Height())
	shards := make([]*shard, len(ranges))
	for i, rg := range ranges {
		shards[i] = &shard{from: rg[0], to: rg[1], bag: diag.NewBag(0)}
	}

	// 1. токенизация: каждая строка пишет только в свой индекс
	index := make(adjacency.Index, g.Height())
	symbols := make([][]token.Symbol, g.Height())
	err := forShards(ctx, "tokenize", shards, func(sh *shard) {
		lopts := lexer.Options{Reporter: diag.BagReporter{Bag: sh.bag}}
		for row := sh.from; row < sh.to; row++ {
			index[row] = lexer.Tokenize(g, row, lopts)
			symbols[row] = lexer.Symbols(g, row)
		}
	})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	invalid := 0
	for row := range index {
		for _, tok := range index[row] {
			if tok.Kind == token.Invalid {
				invalid++
			}
		}
		res.Tokens += len(index[row])
		res.Symbols += len(symbols[row])
	}
	span.WithExtra("tokens", strconv.Itoa(res.Tokens))
	if invalid > 0 {
		forward(shards, r)
		return nil, fmt.Errorf("%w: %d number(s) rejected", ErrNumericOverflow, invalid)
	}

	// 2. смежность
	err = forShards(ctx, "adjacency", shards, func(sh *shard) {
		sh.err = sh.evaluate(g, index, symbols, opts)
	})
	if err != nil {
		return nil, err
	}

	// 3. редукция в порядке строк
	forward(shards, r)
	for _, sh := range shards {
		if sh.err != nil {
			return nil, sh.err
		}
	}
	var carry uint64
	for _, sh := range shards {
		res.PartSum, carry = bits.Add64(res.PartSum, sh.partSum, 0)
		if carry != 0 {
			return nil, reduceOverflow(g, r, "part numbers")
		}
		res.GearSum, carry = bits.Add64(res.GearSum, sh.gearSum, 0)
		if carry != 0 {
			return nil, reduceOverflow(g, r, "gear ratios")
		}
		res.Parts = append(res.Parts, sh.parts...)
		res.Gears = append(res.Gears, sh.gears...)
	}
	span.WithExtra("parts", strconv.Itoa(len(res.Parts))).WithExtra("gears", strconv.Itoa(len(res.Gears)))
	return res, nil
}

func reduceOverflow(g *grid.Grid, r diag.Reporter, what string) error {
	err := fmt.Errorf("%w: %s", ErrSumOverflow, what)
	if r != nil {
		diag.ReportError(r, diag.ScanSumOverflow, g.Span(0, 0, g.Width()), err.Error()).Emit()
	}
	return err
}

// forShards runs fn for every shard on an errgroup.
func forShards(ctx context.Context, name string, shards []*shard, fn func(*shard)) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, name)
	defer span.End("")

	eg, gctx := errgroup.WithContext(ctx)
	for _, sh := range shards {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, rs := trace.Start(gctx, trace.ScopeRow, name+"-shard")
			rs.Rows(sh.from, sh.to)
			fn(sh)
			rs.End("")
			return nil
		})
	}
	return eg.Wait()
}

// evaluate computes the shard's part numbers and gears.
func (sh *shard) evaluate(g *grid.Grid, index adjacency.Index, symbols [][]token.Symbol, opts Options) error {
	rep := diag.BagReporter{Bag: sh.bag}
	var carry uint64
	for row := sh.from; row < sh.to; row++ {
		if opts.Mode.parts() || opts.Explain {
			for _, tok := range index[row] {
				if !adjacency.IsPartNumber(g, tok) {
					if opts.Explain {
						diag.ReportInfo(rep, diag.ScanIsolatedNumber, tok.Span,
							fmt.Sprintf("number %s has no adjacent symbol", tok.Text)).Emit()
					}
					continue
				}
				if !opts.Mode.parts() {
					continue
				}
				sh.parts = append(sh.parts, tok)
				sh.partSum, carry = bits.Add64(sh.partSum, tok.Value, 0)
				if carry != 0 {
					err := fmt.Errorf("%w: part numbers", ErrSumOverflow)
					diag.ReportError(rep, diag.ScanSumOverflow, tok.Span, err.Error()).Emit()
					return err
				}
			}
		}
		if !opts.Mode.gears() {
			continue
		}
		for _, sym := range symbols[row] {
			if !sym.IsGear() {
				continue
			}
			gr := Gear{Symbol: sym, Neighbours: adjacency.Neighbours(index, sym)}
			ratio, defined, err := adjacency.GearRatio(gr.Neighbours)
			if err != nil {
				diag.ReportError(rep, diag.ScanSumOverflow, sym.Span, err.Error()).Emit()
				return err
			}
			gr.Ratio, gr.Defined = ratio, defined
			sh.gears = append(sh.gears, gr)
			if !defined {
				if opts.Explain {
					diag.ReportInfo(rep, diag.ScanGearArity, sym.Span,
						fmt.Sprintf("gear has %d adjacent number(s), ratio undefined", len(gr.Neighbours))).Emit()
				}
				continue
			}
			sh.gearSum, carry = bits.Add64(sh.gearSum, ratio, 0)
			if carry != 0 {
				err := fmt.Errorf("%w: gear ratios", ErrSumOverflow)
				diag.ReportError(rep, diag.ScanSumOverflow, sym.Span, err.Error()).Emit()
				return err
			}
		}
	}
	return nil
}

// forward sends the shard diagnostics to r in row order.
func forward(shards []*shard, r diag.Reporter) {
	if r == nil {
		return
	}
	for _, sh := range shards {
		for _, d := range sh.bag.Items() {
			r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
}
