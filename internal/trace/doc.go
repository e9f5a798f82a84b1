// Package trace provides the tracing subsystem of the schematic scanner.
//
// It is the only logging facility of the tool: scan phases, per-file work in
// directory scans and (at debug level) per-row shards emit begin/end events
// that can be streamed to stderr/a file or kept in a ring buffer.
//
// # Usage
//
//	schematic scan --trace=- --trace-level=phase grid.txt
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only ring dumps on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including row shards
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", parentID)
//	defer span.End("")
package trace
